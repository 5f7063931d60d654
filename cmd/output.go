package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// writeOutput prints value as JSON, or the text produced by render.
func writeOutput[T any](cmd *cobra.Command, value T, asJSON bool, render func(T) (string, error)) error {
	if asJSON {
		return writeJSON(cmd, value)
	}

	rendered, err := render(value)
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
