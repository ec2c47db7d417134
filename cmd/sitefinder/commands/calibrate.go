package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leofalp/sitefinder"
	"github.com/leofalp/sitefinder/core/calibration"
	"github.com/leofalp/sitefinder/core/resolver"
	"github.com/leofalp/sitefinder/internal/review"
	"github.com/leofalp/sitefinder/internal/utils"
)

func calibrateCmd() *cobra.Command {
	var from, modelPath, method string
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Train a calibration model from a labelled review workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := calibration.ParseMethod(method)
			if err != nil {
				return err
			}
			rows, err := readLabels(from)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(svc *sitefinder.Service) error {
				model, n, err := svc.TrainFromReview(cmd.Context(), rows, m)
				if err != nil {
					return fmt.Errorf("training on %d samples: %w", n, err)
				}
				if err := sitefinder.SaveModel(modelPath, model); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s model trained on %d samples, written to %s\n", model.Kind, n, modelPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "review.xlsx", "labelled review workbook")
	cmd.Flags().StringVar(&modelPath, "model", "model.json", "output model file")
	cmd.Flags().StringVar(&method, "method", string(calibration.MethodLogistic), "logistic or correlation")
	return cmd
}

func readLabels(path string) ([]resolver.ReviewRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer utils.CloseWithLog(f)
	return review.ReadLabels(f)
}
