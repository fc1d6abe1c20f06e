package cmd

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zostay/go-email-premailer/internal/logger"
)

var (
	logLevel string

	rootCmd = &cobra.Command{
		Use:          "premailer",
		Short:        "Inline CSS and add text alternatives to email messages",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level written to stderr")
}

// Execute runs the command named on the command line.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger(cmd *cobra.Command) zerolog.Logger {
	return logger.NewConsole(logLevel, cmd.ErrOrStderr())
}

// openInput opens the named message file, or stdin when there is no name or
// the name is "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(args[0])
}
