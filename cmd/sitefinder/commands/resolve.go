package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leofalp/sitefinder"
	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/internal/utils"
)

func resolveCmd() *cobra.Command {
	var (
		q          company.Query
		deepVerify bool
		threshold  float64
		modelPath  string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve one company to its website or social profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("deep-verify") {
				cfg.Resolve.DeepVerify = deepVerify
			}
			if cmd.Flags().Changed("prob-threshold") {
				cfg.Resolve.ProbabilityThreshold = threshold
			}
			if modelPath != "" {
				cfg.Resolve.ModelPath = modelPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return withService(cmd.Context(), func(svc *sitefinder.Service) error {
				out, err := svc.Resolve(cmd.Context(), q)
				if err != nil {
					return err
				}
				if asJSON {
					fmt.Fprintln(cmd.OutOrStdout(), utils.JSONToString(out, true))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), out.String())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&q.Name, "name", "", "company name")
	cmd.Flags().StringVar(&q.Sector, "sector", "", "declared sector")
	cmd.Flags().StringVar(&q.Address, "address", "", "postal address")
	cmd.Flags().BoolVar(&deepVerify, "deep-verify", false, "crawl contact pages of weak candidates")
	cmd.Flags().Float64Var(&threshold, "prob-threshold", 0, "minimum calibrated probability (0 disables)")
	cmd.Flags().StringVar(&modelPath, "model", "", "calibration model file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full outcome with candidates as JSON")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
