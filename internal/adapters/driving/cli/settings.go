package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure where province data is read from.

Settings are stored in ~/.sanumbers/config.toml. Use subcommands to change
a single key or run the interactive wizard.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting.

Keys:
  source.kind                 file | http
  source.root                 data directory for the file source
  source.base_url             data root URL for the http source
  source.requests_per_second  http request limit (0 = unlimited)
  watch.enabled               reload the selected province when its file changes`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the data source step by step.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s, err := services()
	if err != nil {
		return err
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Source]")
	cmd.Printf("  Kind: %s\n", settings.Source.Kind.Description())
	switch settings.Source.Kind {
	case domain.SourceKindHTTP:
		cmd.Printf("  Base URL: %s\n", valueOrUnset(settings.Source.BaseURL))
		rps := "unlimited"
		if settings.Source.RequestsPerSecond > 0 {
			rps = strconv.Itoa(settings.Source.RequestsPerSecond)
		}
		cmd.Printf("  Requests/sec: %s\n", rps)
	default:
		root := settings.Source.Root
		if root == "" {
			root = "~/.sanumbers/data (default)"
		}
		cmd.Printf("  Root: %s\n", root)
	}
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.Watch))

	if s.DataLocation != "" {
		cmd.Println()
		cmd.Printf("Active data location: %s\n", s.DataLocation)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	s, err := services()
	if err != nil {
		return err
	}

	if err := s.Settings.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	s, err := services()
	if err != nil {
		return err
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("sanumbers Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Source kind
	cmd.Println("Step 1: Select Data Source")
	cmd.Println("--------------------------")
	kinds := []domain.SourceKind{domain.SourceKindFile, domain.SourceKindHTTP}
	current := 1
	for i, k := range kinds {
		cmd.Printf("  %d. %s\n", i+1, k.Description())
		if k == settings.Source.Kind {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.Source.Kind = kinds[parseChoice(readLine(reader), len(kinds), current)-1]
	cmd.Println()

	// Step 2: Location
	cmd.Println("Step 2: Data Location")
	cmd.Println("---------------------")
	if settings.Source.Kind == domain.SourceKindHTTP {
		cmd.Printf("Base URL [%s]: ", settings.Source.BaseURL)
		if v := readLine(reader); v != "" {
			settings.Source.BaseURL = v
		}
		cmd.Printf("Requests per second, 0 = unlimited [%d]: ", settings.Source.RequestsPerSecond)
		if v := readLine(reader); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("%w: requests per second must be a non-negative integer", domain.ErrInvalidInput)
			}
			settings.Source.RequestsPerSecond = n
		}
	} else {
		cmd.Printf("Data directory [%s]: ", valueOrDefault(settings.Source.Root, "~/.sanumbers/data"))
		if v := readLine(reader); v != "" {
			settings.Source.Root = v
		}
	}
	cmd.Println()

	// Step 3: Watch
	cmd.Println("Step 3: Reload On Change")
	cmd.Println("------------------------")
	cmd.Printf("Reload the selected province when its file changes? [%s]: ", yesNo(settings.Watch))
	if v := strings.ToLower(readLine(reader)); v != "" {
		settings.Watch = v == "y" || v == "yes"
	}
	cmd.Println()

	if err := s.Settings.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("Run 'sanumbers provinces check' to verify the data source.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func valueOrUnset(s string) string {
	return valueOrDefault(s, "(not set)")
}

func valueOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
