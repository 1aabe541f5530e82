package commands

import (
	"github.com/spf13/cobra"

	"github.com/alicepisa/mobileserver/cmd/mobileserver/internal/format"
	"github.com/alicepisa/mobileserver/pkg/appctx"
	srv "github.com/alicepisa/mobileserver/pkg/server"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the config file,
MOBILESERVER_* environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatter := format.FromCommand(cmd)

			output, _ := cmd.Flags().GetString("output")
			if err := format.ValidateMode(output); err != nil {
				return formatter.Fail("print configuration", err)
			}

			cfgMgr, ok := appctx.Config(cmd.Context())
			if !ok {
				return formatter.Fail("print configuration", srv.ErrConfigUnavailable)
			}

			return formatter.PrintData(cfgMgr.Get())
		},
	}

	cmd.Flags().StringP("output", "o", string(format.ModeYAML), "Output format: yaml | json")

	return cmd
}
