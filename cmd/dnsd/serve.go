package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Skazzi00/dns-server/internal/config"
	"github.com/Skazzi00/dns-server/internal/logging"
	"github.com/Skazzi00/dns-server/internal/server"
	"github.com/Skazzi00/dns-server/internal/zone"
)

var (
	flagConfig   string
	flagHost     string
	flagPort     int
	flagDebug    bool
	flagJSONLogs bool
)

var serveCmd = &cobra.Command{
	Use:   "serve <records-file>",
	Short: "Answer DNS queries over UDP from a record file",
	Long: `Loads the record file (one "name class type value" record per line)
and answers A and CNAME queries over UDP. Records with a name and type
appearing more than once are served round-robin at random.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if flagHost != "" {
			cfg.Server.Host = flagHost
		}
		if flagPort != 0 {
			cfg.Server.Port = flagPort
		}
		if flagJSONLogs {
			cfg.Logging.JSON = true
		}
		if flagDebug {
			cfg.Logging.Level = "DEBUG"
		}

		logger := logging.Configure(logging.Config{
			Level:      cfg.Logging.Level,
			JSON:       cfg.Logging.JSON,
			IncludePID: cfg.Logging.IncludePID,
		})

		store, err := zone.LoadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load records from %s: %v\n", args[0], err)
			os.Exit(1)
		}
		logger.Info("records loaded", "path", args[0], "count", store.Len())

		return server.NewRunner(logger).Run(cfg, store)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML configuration file")
	serveCmd.Flags().StringVar(&flagHost, "host", "", "Override bind host")
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "Override bind port")
	serveCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().BoolVar(&flagJSONLogs, "json-logs", false, "Enable JSON structured logging")
}
