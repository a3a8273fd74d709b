package cli

import (
	"fmt"

	"resumelens/internal/catalog"
	"resumelens/internal/common"
	"resumelens/internal/formatters"

	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles [category]",
	Short: "List role profiles from the catalog",
	Long: `List the role categories and role profiles the analyzer knows about.

Without arguments, all categories and their roles are listed. With a
category argument, only that category's roles are shown.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if rolesConfig.OutputFormat == "" {
			rolesConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(rolesConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runRoles,
}

var rolesConfig common.CommandConfig

func init() {
	rolesCmd.Flags().StringVarP(&rolesConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	rolesCmd.Flags().StringVar(&rolesConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
}

func runRoles(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	provider, err := catalog.NewProvider(cfg.Catalog.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to load role catalog: %w", err)
	}
	cat := provider.Current()

	categories := cat.Categories()
	if len(args) == 1 {
		categories = []string{args[0]}
	} else if rolesConfig.OutputFile != "" {
		return fmt.Errorf("writing to a file requires a category argument")
	}

	outputHandler := common.NewOutputHandler(logger, cfg.App.MaxFileSize)
	for _, category := range categories {
		roles, err := cat.Roles(category)
		if err != nil {
			return err
		}
		list := formatters.RoleList{Category: category, Roles: roles}
		if err := outputHandler.HandleOutput(list, rolesConfig); err != nil {
			return err
		}
	}
	return nil
}
