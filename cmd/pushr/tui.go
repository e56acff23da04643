package main

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pushr/marketplace/internal/tui"
	"github.com/pushr/marketplace/pkg/logger"
)

// bellHaptics is the terminal's stand-in for a vibration motor.
type bellHaptics struct {
	w io.Writer
}

func (h bellHaptics) Impact(context.Context) error {
	_, err := io.WriteString(h.w, "\a")
	return err
}

func tuiCmd(app *cli) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal client in-process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			app.log = logger.Init(logger.Options{
				Level:   app.cfg.LogLevel,
				Output:  out,
				Service: "pushr-tui",
			})

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			c, err := buildCore(ctx, app.cfg, bellHaptics{w: os.Stderr}, app.log)
			if err != nil {
				return err
			}
			defer func() {
				if err := c.Close(); err != nil {
					app.log.Error().Err(err).Msg("shutdown")
				}
			}()

			m := tui.New(ctx, tui.Services{Sessions: c.sessions, Auth: c.auth, Roles: c.roles})
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file instead of discarding them")
	return cmd
}
