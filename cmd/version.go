package cmd

import (
	"runtime"

	"github.com/bnema/halo-bridge/internal/version"
	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the halo bridge build version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versionInfo{Version: version.Version, GoVersion: runtime.Version()}
			return writeOutput(cmd, info, asJSON, func(v versionInfo) (string, error) {
				return v.Version, nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version and Go toolchain as JSON")
	return cmd
}
