package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sharpi-AI/target-sharpi/sync"
)

var (
	configPath     string
	logLevel       string
	logFormat      string
	recordRequests bool
)

var rootCmd = &cobra.Command{
	Use:           "target-sharpi",
	Short:         "Singer target that syncs products, prices and customers to the Sharpi API",
	Long:          "target-sharpi reads newline-delimited Singer messages from stdin and upserts each record to the Sharpi partner API. STATE messages are echoed to stdout; logs go to stderr.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := sync.LoadConfigFromFile(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			config.Log.Level = logLevel
		}
		if logFormat != "" {
			config.Log.Format = logFormat
		}

		logger := sync.NewLogger(config.Log, os.Stderr)
		sctx := sync.NewSyncContext(config, logger, recordRequests)
		target := sync.NewTarget(sctx)
		return target.Run(os.Stdin, os.Stdout, cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "override log format (text, json)")
	rootCmd.Flags().BoolVar(&recordRequests, "record-requests", false, "record API requests to testdata for replay")
	_ = rootCmd.MarkFlagRequired("config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
