// Command kibank creates, extracts and inspects Kilohearts bank files.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/softdevca/kibank/pkg/logging"
)

const version = "1.0.0"

var (
	verbosity int
	logger    hclog.Logger
)

// verbosityLevel maps repeated --verbose flags onto a log level. The default
// comes from KIBANK_LOG_LEVEL (or "warn"); each -v steps toward trace.
func verbosityLevel() string {
	levels := []string{"info", "debug", "trace"}
	if verbosity <= 0 {
		return logging.GetLogLevel()
	}
	if verbosity > len(levels) {
		verbosity = len(levels)
	}
	return levels[verbosity-1]
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kibank",
		Short:         "Work with Kilohearts bank files",
		Long:          `Create, extract and inspect Kilohearts bank files.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger("kibank", verbosityLevel(), os.Stderr)
		},
	}
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase logging detail (repeatable)")

	root.AddCommand(newCreateCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newListCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
