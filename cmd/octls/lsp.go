package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"octls/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the Octave language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func runLSP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProjectConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "octls: %v\n", err)
	}
	maxDiagnostics, _ := cmd.Flags().GetInt("max-diagnostics")
	if maxDiagnostics <= 0 {
		maxDiagnostics = cfg.Server.MaxDiagnostics
	}

	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		MaxDiagnostics: maxDiagnostics,
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
