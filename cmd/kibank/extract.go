package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/softdevca/kibank/pkg/bank"
)

func newExtractCmd() *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:     "extract BANK_FILE",
		Aliases: []string{"x"},
		Short:   "Extract the contents of a bank",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0], dest)
		},
	}
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Destination directory")
	return cmd
}

// runExtract writes every item of the bank under destDir. Existing files
// are overwritten.
func runExtract(bankPath, destDir string) error {
	if destDir == "" {
		var err error
		if destDir, err = os.Getwd(); err != nil {
			return err
		}
	}
	logger.Info("extracting bank", "bank", bankPath, "dest", destDir)

	r, err := bank.OpenWithLogger(bankPath, logger)
	if err != nil {
		return fmt.Errorf("cannot open bank %s: %w", bankPath, err)
	}
	defer r.Close()

	for _, item := range r.Items() {
		hostPath, err := extractPath(item.Path())
		if err != nil {
			return err
		}
		destPath := filepath.Join(destDir, hostPath)

		if item.IsDirectory() {
			logger.Info("creating directory", "path", destPath)
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				return fmt.Errorf("cannot create directory %s: %w", destPath, err)
			}
			continue
		}

		logger.Info("extracting", "item", item.String(), "path", destPath)
		if parent := filepath.Dir(destPath); parent != "" {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return fmt.Errorf("cannot create parent directory %s: %w", parent, err)
			}
		}

		out, err := os.Create(destPath)
		if err != nil {
			return err
		}
		if err := r.Copy(item, out); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
	}
	return nil
}

// extractPath converts a bank path to a host path: the bank's fixed
// separator becomes the platform separator, and paths that resolve as
// absolute on the host are rejected so a bank can never write outside the
// destination directory.
func extractPath(pathBytes []byte) (string, error) {
	hostPath := strings.ReplaceAll(string(pathBytes), string(bank.PathSeparator), string(filepath.Separator))
	if filepath.IsAbs(hostPath) {
		return "", fmt.Errorf("file %s is absolute and cannot be extracted", hostPath)
	}
	return hostPath, nil
}
