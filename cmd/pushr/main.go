// Command pushr runs the Pushr session router as an HTTP service or as an
// in-process terminal client.
//
// @title                       Pushr Session Router API
// @version                     1.0
// @description                 Session and role-state router of the Pushr delivery marketplace.
// @BasePath                    /
// @securityDefinitions.apikey  SessionToken
// @in                          header
// @name                        Authorization
// @description                 Bearer token returned by POST /v1/sessions
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pushr/marketplace/internal/infrastructure/config"
)

// cli holds what every subcommand needs after PersistentPreRunE ran.
type cli struct {
	ctx context.Context
	cfg *config.Config
	log zerolog.Logger
}

func main() {
	app := &cli{ctx: context.Background()}

	rootCmd := &cobra.Command{
		Use:           "pushr",
		Short:         "Pushr session and role-state router",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			app.cfg = cfg
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd(app))
	rootCmd.AddCommand(tuiCmd(app))

	if err := rootCmd.ExecuteContext(app.ctx); err != nil {
		fmt.Fprintln(os.Stderr, "pushr:", err)
		os.Exit(1)
	}
}
