// Command fenc encrypts, decrypts, and searches files in place with a
// password, driving the cryptographic engine in package envelope.
// Argument parsing, password prompting, and result formatting here are
// thin collaborators around that engine — see spec.md §1.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haugstad/fenc/cliutil"
	"github.com/haugstad/fenc/envelope"
)

var jsonOutput bool

func main() {
	root := &cobra.Command{
		Use:           "fenc",
		Short:         "Encrypt, decrypt, and search files in place with a password.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit derived key material as JSON to stdout")

	root.AddCommand(encryptCmd(), decryptCmd(), searchCmd())

	if err := root.Execute(); err != nil {
		cliutil.ReportError(err)
		os.Exit(1)
	}
}

func encryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <path>...",
		Short: "Encrypt one or more files in place, building a search index over their words.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := cliutil.ResolvePassword(os.Stdin)
			if err != nil {
				return err
			}

			results, err := envelope.EncryptFiles(args, password)
			if err != nil {
				return err
			}

			if jsonOutput {
				return cliutil.DumpEncrypt(os.Stdout, results)
			}
			for _, r := range results {
				fmt.Printf("%s encrypted\n", r.Filename)
			}
			return nil
		},
	}
}

func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <path>...",
		Short: "Decrypt one or more files in place and remove their sidecars.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := cliutil.ResolvePassword(os.Stdin)
			if err != nil {
				return err
			}

			results, err := envelope.DecryptFiles(args, password)
			if err != nil {
				return err
			}

			cliutil.ReportTampered(os.Stdout, results)

			if jsonOutput {
				return cliutil.DumpDecrypt(os.Stdout, results)
			}
			for _, r := range results {
				if !r.Tampered {
					fmt.Printf("%s decrypted\n", r.Filename)
				}
			}
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>...",
		Short: "Search every encrypted file in the current directory for the given terms.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := cliutil.ResolvePassword(os.Stdin)
			if err != nil {
				return err
			}

			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("fenc: failed to determine the current directory: %w", err)
			}

			result, err := envelope.Search(dir, args, password)
			if err != nil {
				return err
			}

			logger := cliutil.NewLogger(os.Stderr)
			cliutil.ReportSkipped(logger, result.Skipped)

			if jsonOutput {
				return cliutil.DumpSearch(os.Stdout, result.MasterKeys)
			}
			for _, h := range result.Hits {
				fmt.Printf("%s: %s\n", h.Filename, h.Query)
			}
			return nil
		},
	}
}
