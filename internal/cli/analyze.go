package cli

import (
	"fmt"

	"resumelens/internal/analysis"
	"resumelens/internal/catalog"
	"resumelens/internal/common"
	"resumelens/internal/store"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Analyze a resume against a role profile",
	Long: `Analyze a plain-text resume against a role profile from the catalog.

The analysis reports:
- An overall ATS score (0-100)
- Keyword coverage against the role's required skills
- Detected resume sections and their quality
- Formatting hygiene (bullets, quantified statements, length)
- Concrete, categorized improvement suggestions

Documents that do not look like a resume are rejected before scoring.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var (
	analyzeConfig   common.CommandConfig
	analyzeCategory string
	analyzeRole     string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeCategory, "category", "c", "", "Role category from the catalog (required)")
	analyzeCmd.Flags().StringVarP(&analyzeRole, "role", "r", "", "Role name from the catalog (required)")
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	_ = analyzeCmd.MarkFlagRequired("category")
	_ = analyzeCmd.MarkFlagRequired("role")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})

	// Complete categories from the configured catalog
	_ = analyzeCmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		provider, err := catalog.NewProvider(cfg.Catalog.Path, getLoggerFromContext(cmd.Context()))
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return provider.Current().Categories(), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	provider, err := catalog.NewProvider(cfg.Catalog.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to load role catalog: %w", err)
	}
	profile, err := provider.Current().Resolve(analyzeCategory, analyzeRole)
	if err != nil {
		return err
	}

	fileProcessor := common.NewFileProcessor(logger, cfg.App.MaxFileSize)
	text, err := fileProcessor.ReadResumeFile(args[0])
	if err != nil {
		return err
	}

	logger.Info("Starting resume analysis",
		"file", args[0],
		"category", profile.Category,
		"role", profile.Name,
		"output_format", analyzeConfig.OutputFormat)

	engine := analysis.NewEngine(cfg.Analysis)
	result, err := engine.Analyze(text, profile)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	if cfg.Storage.Enabled {
		// History is best effort from the CLI; the analysis itself succeeded.
		if st, err := store.Open(cfg.Storage.Path); err != nil {
			logger.LogError(err, "Failed to open history store")
		} else {
			if _, err := st.SaveAnalysis(cmd.Context(), result); err != nil {
				logger.LogError(err, "Failed to record analysis in history")
			}
			if err := st.Close(); err != nil {
				logger.Warn("Failed to close history store", "error", err)
			}
		}
	}

	outputHandler := common.NewOutputHandler(logger, cfg.App.MaxFileSize)
	if err := outputHandler.HandleOutput(result, analyzeConfig); err != nil {
		return err
	}

	logger.Info("Resume analysis completed successfully",
		"ats_score", result.ATSScore,
		"missing_skills", len(result.KeywordMatch.MissingSkills))
	return nil
}
