package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leofalp/sitefinder"
	"github.com/leofalp/sitefinder/internal/review"
	"github.com/leofalp/sitefinder/internal/utils"
)

func runCmd() *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Resolve every company of a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := readTable(input)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(svc *sitefinder.Service) error {
				results := svc.ResolveBatch(cmd.Context(), table.Queries)
				links := make([]string, len(results))
				found := 0
				for i, r := range results {
					if r.Err != nil {
						links[i] = "error: " + r.Err.Error()
						continue
					}
					links[i] = r.Outcome.String()
					if r.Outcome.URL != "" {
						found++
					}
				}
				if err := writeResults(output, table, links); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d/%d companies resolved, written to %s\n", found, len(links), output)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "input CSV (name, sector, address)")
	cmd.Flags().StringVar(&output, "output", "results.csv", "output CSV")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func readTable(path string) (*review.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening input: %w", err)
	}
	defer utils.CloseWithLog(f)
	return review.ReadCSV(f)
}

func writeResults(path string, t *review.Table, links []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output: %w", err)
	}
	if err := review.WriteResults(f, t, links); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
