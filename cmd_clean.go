package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rahulvramesh/cleanmac/internal/utils"
)

// cleanCmd creates the clean command
func cleanCmd() *cobra.Command {
	var (
		categories []string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Move junk to the Trash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, nil)
			if err != nil {
				return err
			}
			defer e.close()

			junk := e.junkSession()
			found, err := junk.Scan(cmd.Context())
			junk.ApplyScan(filterCategories(found, categories), err)
			if err != nil {
				return err
			}

			paths := junk.SelectedPaths()
			if len(paths) == 0 {
				return e.out.Junk(nil)
			}
			question := fmt.Sprintf("Move %d items (%s) to Trash?", len(paths), utils.FormatFileSize(junk.TotalSelectedSize()))
			if !yes && !e.confirm(question) {
				return fmt.Errorf("aborted")
			}

			outcome := junk.Clean(cmd.Context(), paths)
			junk.ApplyClean(outcome)
			if outcome.ScanErr != nil {
				e.logger.Warn("Rescan failed", zap.Error(outcome.ScanErr))
			}
			if err := e.out.Deletion(outcome.Result); err != nil {
				return err
			}
			return outcome.Err
		},
	}

	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Only clean these categories (by name)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
