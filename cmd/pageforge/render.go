// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render saved model response text to HTML",
	Long: `Render runs extraction, normalization, and HTML rendering on response
text that was saved earlier, read from the given file or from stdin.
No network access is performed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("output", "", "HTML output path (default: stdout)")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error

	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading response text %s: %w", args[0], err)
		}
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	html, _, err := process(string(raw))
	if err != nil {
		return err
	}
	return writeHTML(cmd, html)
}
