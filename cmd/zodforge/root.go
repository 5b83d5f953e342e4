package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reoring/zodforge/fetch"
	"github.com/reoring/zodforge/schema"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "zodforge",
})

var rootCmd = &cobra.Command{
	Use:           "zodforge",
	Short:         "Compile validation schema documents into Zod source and runtime validators",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if lvl, err := log.ParseLevel(viper.GetString("log-level")); err == nil {
			logger.SetLevel(lvl)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "", "schema document path (.json, .yaml, or - for stdin)")
	rootCmd.PersistentFlags().String("url", "", "schema document endpoint")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	viper.SetEnvPrefix("ZODFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("file", rootCmd.PersistentFlags().Lookup("file"))
	_ = viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(generateCmd, checkCmd)
}

// loadDocument reads the schema document from the flag-selected source:
// --url wins over --file; "-" reads stdin.
func loadDocument(ctx context.Context) ([]schema.Field, error) {
	if url := viper.GetString("url"); url != "" {
		logger.Debug("fetching document", "url", url)
		return fetch.New().Fetch(ctx, url)
	}
	path := viper.GetString("file")
	if path == "" {
		return nil, errors.New("no document source: pass -f or --url")
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded document", "path", path, "bytes", len(data))

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return schema.DecodeYAML(data)
	}
	return schema.DecodeJSON(data)
}
