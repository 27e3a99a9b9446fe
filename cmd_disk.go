package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rahulvramesh/cleanmac/internal/system"
)

// diskCmd creates the disk command
func diskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disk",
		Short: "Show disk usage of mounted volumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, nil)
			if err != nil {
				return err
			}
			defer e.close()

			volumes, err := system.ListVolumes(cmd.Context())
			if err != nil {
				e.logger.Warn("df failed, falling back to statfs", zap.Error(err))
				usage, statErr := system.DiskUsage(e.cfg.Home)
				if statErr != nil {
					return statErr
				}
				volumes = []system.Usage{usage}
			}
			return e.out.Disk(volumes)
		},
	}
}
