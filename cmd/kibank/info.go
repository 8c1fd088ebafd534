package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/softdevca/kibank/pkg/bank"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "info BANK_FILE",
		Aliases: []string{"i"},
		Short:   "Display the details of a bank",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, bankPath string) error {
	r, err := bank.OpenWithLogger(bankPath, logger)
	if err != nil {
		return fmt.Errorf("cannot open bank %s: %w", bankPath, err)
	}
	defer r.Close()

	metadata := &bank.Metadata{}
	for _, item := range r.Items() {
		if item.IsMetadataFile() {
			if metadata, err = r.ReadMetadata(item); err != nil {
				return fmt.Errorf("cannot read the metadata for bank %s: %w", bankPath, err)
			}
			break
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID: %s\n", metadata.ID)
	fmt.Fprintf(out, "Name: %s\n", metadata.Name)
	fmt.Fprintf(out, "Author: %s\n", metadata.Author)
	fmt.Fprintf(out, "Description: %s\n", metadata.Description)
	var versionNum uint32
	if metadata.Version != nil {
		versionNum = *metadata.Version
	}
	fmt.Fprintf(out, "Version: %d\n", versionNum)
	var hash string
	if metadata.Hash != nil {
		hash = *metadata.Hash
	}
	fmt.Fprintf(out, "Hash: %s\n", hash)
	for key, value := range metadata.Extra {
		fmt.Fprintf(out, "Extra: %s: %v\n", key, value)
	}
	return nil
}
