package main

import (
	"github.com/spf13/cobra"

	"github.com/rahulvramesh/cleanmac/internal/access"
)

// probeCmd creates the probe command
func probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check whether this process has Full Disk Access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, nil)
			if err != nil {
				return err
			}
			defer e.close()

			return e.out.Access(access.NewFileProbe(e.cfg.Home).HasElevatedAccess())
		},
	}
}
