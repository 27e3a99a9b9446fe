package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rahulvramesh/cleanmac/internal/types"
)

// junkCmd creates the junk command
func junkCmd() *cobra.Command {
	var categories []string

	cmd := &cobra.Command{
		Use:   "junk",
		Short: "Show reclaimable space in well-known junk locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, nil)
			if err != nil {
				return err
			}
			defer e.close()

			found, err := e.scanner.ScanJunk(cmd.Context())
			if err != nil {
				return err
			}
			return e.out.Junk(filterCategories(found, categories))
		},
	}

	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Only show these categories (by name)")
	return cmd
}

// filterCategories keeps categories whose name matches one of names, ignoring case
func filterCategories(categories []types.JunkCategory, names []string) []types.JunkCategory {
	if len(names) == 0 {
		return categories
	}
	var kept []types.JunkCategory
	for _, c := range categories {
		for _, name := range names {
			if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
				kept = append(kept, c)
				break
			}
		}
	}
	return kept
}
