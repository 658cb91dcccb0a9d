package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"fastalen/internal/lengths"
	"fastalen/internal/logging"

	"github.com/spf13/cobra"
)

// version can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.2.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "fastalen fasta_filepath",
	Short: "Get lengths of entries in a FASTA file",
	Long: `Print the identifier and sequence length of every entry in a FASTA file,
tab separated, one entry per line, in file order.

Use - as fasta_filepath to read standard input.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New(cmd.ErrOrStderr(), verbose)
		name := filepath.Base(os.Args[0])

		logger.Debug("running", "program", name)
		logger.Debug("version", "version", version)
		logger.Debug("settings", "fasta_filepath", args[0], "verbose", verbose)

		opts := lengths.Options{
			Path:  args[0],
			Stdin: cmd.InOrStdin(),
		}
		if _, err := lengths.Run(cmd.Context(), opts, cmd.OutOrStdout(), logger); err != nil {
			return err
		}

		logger.Debug("done", "program", name)
		return nil
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
