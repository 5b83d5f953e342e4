package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	zodforge "github.com/reoring/zodforge"
	"github.com/reoring/zodforge/compiler"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a JSON payload against a schema document",
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := loadDocument(cmd.Context())
		if err != nil {
			logger.Error("load document", "err", err)
			return err
		}

		path, _ := cmd.Flags().GetString("input")
		if path == "" {
			return errors.New("no payload: pass --input")
		}
		var data []byte
		if path == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			logger.Error("read payload", "path", path, "err", err)
			return err
		}
		var payload any
		if err := json.Unmarshal(data, &payload); err != nil {
			logger.Error("decode payload", "path", path, "err", err)
			return err
		}

		v := compiler.Compile(fields)
		if err := v.Validate(cmd.Context(), payload); err != nil {
			if iss, ok := zodforge.AsIssues(err); ok {
				for _, it := range iss {
					logger.Error("issue", "path", it.Path, "code", it.Code, "message", it.Message)
				}
				return fmt.Errorf("%d validation issue(s)", len(iss))
			}
			return err
		}
		logger.Info("payload valid", "fields", len(fields))
		return nil
	},
}

func init() {
	checkCmd.Flags().String("input", "", "JSON payload path (- for stdin)")
}
