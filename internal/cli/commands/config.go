package commands

import (
	"fmt"

	"github.com/prithivirajmurugan/rs-compiler/internal/cli/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file, RSC_* environment
variables and flags have been applied, as YAML.

The output is a valid rsc.yaml and can be used as a starting point.`,
		Example: `  rsc config
  RSC_INDENT_WIDTH=4 rsc config
  rsc config > rsc.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetConfig(cmd.Context())

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			if cfg.File != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", cfg.File)
			}
			_, _ = cmd.OutOrStdout().Write(out)
			return nil
		},
	}
}
