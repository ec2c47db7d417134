package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leofalp/sitefinder"
	"github.com/leofalp/sitefinder/internal/review"
)

// DefaultReviewK is the number of candidate slots in a review workbook.
const DefaultReviewK = 3

func reviewCmd() *cobra.Command {
	var (
		input, output string
		k             int
	)
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Write the top candidates of each company to a review workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if k <= 0 {
				return fmt.Errorf("--top-k must be positive, got %d", k)
			}
			table, err := readTable(input)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(svc *sitefinder.Service) error {
				rows := make([]review.Row, len(table.Queries))
				g, ctx := errgroup.WithContext(cmd.Context())
				g.SetLimit(svc.Config().Resolve.Concurrency)
				for i, q := range table.Queries {
					g.Go(func() error {
						cands, err := svc.TopKCandidates(ctx, q, k)
						if err != nil {
							return fmt.Errorf("%s: %w", q.Name, err)
						}
						rows[i] = review.NewRow(q, cands)
						return nil
					})
				}
				if err := g.Wait(); err != nil {
					return err
				}
				review.Sort(rows)
				if err := writeWorkbook(output, rows, k); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d companies written to %s\n", len(rows), output)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "input CSV (name, sector, address)")
	cmd.Flags().StringVar(&output, "output", "review.xlsx", "review workbook")
	cmd.Flags().IntVar(&k, "top-k", DefaultReviewK, "candidates per company")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func writeWorkbook(path string, rows []review.Row, k int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating workbook: %w", err)
	}
	if err := review.WriteWorkbook(f, rows, k); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
