package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/softdevca/kibank/pkg/bank"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list BANK_FILE",
		Aliases: []string{"l"},
		Short:   "Display the contents of a bank",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0])
		},
	}
}

func runList(cmd *cobra.Command, bankPath string) error {
	r, err := bank.OpenWithLogger(bankPath, logger)
	if err != nil {
		return fmt.Errorf("cannot open bank %s: %w", bankPath, err)
	}
	defer r.Close()

	out := cmd.OutOrStdout()
	for _, item := range r.Items() {
		if item.IsDirectory() {
			// Directories get the trailing separator found inside banks,
			// not the one used by the operating system.
			fmt.Fprintf(out, "%s%c\n", item, bank.PathSeparator)
		} else {
			fmt.Fprintln(out, item)
		}
	}
	return nil
}
