package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/zodforge/compiler"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the Zod source fragment for a schema document",
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := loadDocument(cmd.Context())
		if err != nil {
			logger.Error("load document", "err", err)
			return err
		}
		src := compiler.Render(fields) + "\n"

		out, _ := cmd.Flags().GetString("output")
		if out == "" || out == "-" {
			_, err = cmd.OutOrStdout().Write([]byte(src))
			return err
		}
		if err := os.WriteFile(out, []byte(src), 0o644); err != nil {
			logger.Error("write output", "path", out, "err", err)
			return err
		}
		logger.Info("wrote Zod source", "path", out, "fields", len(fields))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "output path (default stdout)")
}
