package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/greenshed/sunmap/internal/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. This is
// typically called by the main package with values injected via ldflags at
// build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the sunmap CLI and returns an error if any command fails.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI under the given context, so main can wire
// signal handling into every command.
//
// The function sets up the root command with all subcommands (build, search,
// serve), loads the optional TOML config file, and configures logging based
// on the --verbose flag. The logger is attached to the context and
// accessible to all commands via loggerFromContext.
func ExecuteContext(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
		cfg        config.Config
	)

	root := &cobra.Command{
		Use:          "sunmap",
		Short:        "Sunmap turns garden photo stacks into sun exposure maps",
		Long:         `Sunmap aggregates day-long stacks of aligned garden photographs into sun exposure heat maps and searches them for the sunniest spot to place a raised bed.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))

			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("sunmap %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	root.AddCommand(newBuildCmd(&cfg))
	root.AddCommand(newSearchCmd(&cfg))
	root.AddCommand(newServeCmd(&cfg))

	return root.ExecuteContext(ctx)
}
