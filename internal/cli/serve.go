package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/greenshed/sunmap/internal/config"
	"github.com/greenshed/sunmap/internal/server"
)

// newServeCmd creates the serve command, speaking MCP over stdin/stdout.
// Only protocol frames go to stdout; all logging stays on stderr.
func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the sunmap tools over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			logger.Info("Serving MCP on stdio")

			srv := server.New(*cfg)
			return srv.Run(cmd.Context(), os.Stdin, os.Stdout)
		},
	}
}
