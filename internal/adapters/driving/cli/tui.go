package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui"
)

var tuiProvince string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Pick a province, type a town, and browse its emergency services as contact
cards. Numbers can be dialled or copied straight from the list.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Actions
  Tab      - Switch between search and results
  c / y    - Call / Copy the selected number
  Ctrl+P   - Choose province
  Esc      - Back
  ?        - Help
  Ctrl+C   - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiProvince, "province", "p", "", "province to open on start")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	s, err := services()
	if err != nil {
		return err
	}

	province := ""
	if tuiProvince != "" {
		province, err = provinceArg(tuiProvince)
		if err != nil {
			return err
		}
	}

	ports := tui.NewPorts(s.Selection, s.Actions)
	ports.Settings = s.Settings
	ports.Watcher = s.Watcher

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).WithProvince(province)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
