package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rahulvramesh/cleanmac/internal/scanner"
	"github.com/rahulvramesh/cleanmac/internal/session"
	"github.com/rahulvramesh/cleanmac/internal/types"
	"github.com/rahulvramesh/cleanmac/internal/utils"
)

// uninstallCmd creates the uninstall command
func uninstallCmd() *cobra.Command {
	var (
		force    bool
		yes      bool
		keepType []string
	)

	cmd := &cobra.Command{
		Use:   "uninstall <app path or name>",
		Short: "Move an application and its related files to the Trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, nil)
			if err != nil {
				return err
			}
			defer e.close()

			app, err := resolveApp(cmd.Context(), e.scanner, args[0])
			if err != nil {
				return err
			}
			keepFileTypes(&app, keepType)

			if err := e.out.App(app); err != nil {
				return err
			}
			paths := session.PathsToDelete(app)
			question := fmt.Sprintf("Move %s and %d related items to Trash?", app.Name, len(paths)-1)
			if !yes && !e.confirm(question) {
				return fmt.Errorf("aborted")
			}

			apps := e.appSession()
			outcome := apps.Delete(cmd.Context(), app, force)
			if outcome.Running {
				return fmt.Errorf("%s is running; quit it first or pass --force", app.Name)
			}
			if err := e.out.Deletion(outcome.Result); err != nil {
				return err
			}
			return outcome.Err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Quit the application first if it is running")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().StringSliceVar(&keepType, "keep", nil, "Related file types to keep, e.g. Preferences")
	return cmd
}

// resolveApp accepts a bundle path or an application name
func resolveApp(ctx context.Context, s *scanner.Scanner, arg string) (types.InstalledApp, error) {
	if strings.HasSuffix(arg, ".app") {
		path := utils.ExpandHome(arg, s.HomeDir)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if _, err := os.Stat(path); err == nil {
			return s.ReadApplication(path)
		}
	}

	apps, err := s.ScanApplications(ctx)
	if err != nil {
		return types.InstalledApp{}, err
	}
	name := strings.TrimSuffix(arg, ".app")
	for _, app := range apps {
		if strings.EqualFold(app.Name, name) || strings.EqualFold(app.BundleIdentifier, name) {
			return app, nil
		}
	}
	return types.InstalledApp{}, fmt.Errorf("application %q not found", arg)
}

// keepFileTypes deselects related files of the named types
func keepFileTypes(app *types.InstalledApp, keep []string) {
	if len(keep) == 0 {
		return
	}
	for i, f := range app.RelatedFiles {
		for _, k := range keep {
			if strings.EqualFold(string(f.Type), strings.TrimSpace(k)) {
				app.RelatedFiles[i].Selected = false
			}
		}
	}
}
