package cli

import (
	"fmt"

	"resumelens/internal/common"
	"resumelens/internal/formatters"
	"resumelens/internal/store"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent analyses from the history store",
	Long: `Show the most recent analyses recorded in the history store.

Requires storage to be enabled in the configuration (storage.enabled).`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if historyConfig.OutputFormat == "" {
			historyConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(historyConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runHistory,
}

var (
	historyConfig common.CommandConfig
	historyLimit  int
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of analyses to show")
	historyCmd.Flags().StringVarP(&historyConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	historyCmd.Flags().StringVar(&historyConfig.OutputFormat, "format", "", "Output format: json or text")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	if !cfg.Storage.Enabled {
		return fmt.Errorf("history requires storage to be enabled (set storage.enabled)")
	}

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("Failed to close history store", "error", err)
		}
	}()

	records, err := st.ListRecent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	outputHandler := common.NewOutputHandler(logger, cfg.App.MaxFileSize)
	return outputHandler.HandleOutput(formatters.HistoryList{Records: records}, historyConfig)
}
