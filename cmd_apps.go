package main

import (
	"github.com/spf13/cobra"

	"github.com/rahulvramesh/cleanmac/internal/scanner"
	"github.com/rahulvramesh/cleanmac/internal/types"
)

// appsCmd creates the apps command
func appsCmd() *cobra.Command {
	var (
		sortBy string
		filter string
	)

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List installed applications with their related files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, nil)
			if err != nil {
				return err
			}
			defer e.close()

			if sortBy == "" {
				sortBy = e.cfg.Sort
			}

			apps, err := e.scanner.ScanApplications(cmd.Context())
			if err != nil {
				return err
			}
			apps = scanner.FilterApps(apps, filter)
			scanner.SortApps(apps, scanner.ParseSortOption(sortBy))
			return e.out.Apps(apps)
		},
	}

	cmd.Flags().StringVarP(&sortBy, "sort", "s", "", "Sort by: name, size, total")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only show apps whose name contains this text")

	cmd.AddCommand(relatedCmd())
	return cmd
}

// relatedCmd creates the apps related command
func relatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "related <bundle-id> <name>",
		Short: "Find files an application left in ~/Library",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, nil)
			if err != nil {
				return err
			}
			defer e.close()

			return e.out.App(types.InstalledApp{
				Name:             args[1],
				BundleIdentifier: args[0],
				RelatedFiles:     e.scanner.FindRelatedFiles(args[0], args[1]),
			})
		},
	}
}
