package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"videoplayer-service/internal/command"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run the interactive command shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		return runShell(cmd.Context(), command.NewShell(p, os.Stdin, os.Stdout))
	},
}

// runShell runs the shell until it exits. An interrupt ends the session
// cleanly.
func runShell(ctx context.Context, s *command.Shell) error {
	err := s.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
