package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

var (
	lookupJSON bool
	checkJSON  bool
)

var provincesCmd = &cobra.Command{
	Use:   "provinces",
	Short: "List the nine provinces",
	Long: `List the provinces in selector order with the resource key each one
is loaded from (<data root>/<key>.json).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, p := range domain.Provinces() {
			cmd.Printf("  %-15s %s\n", p, domain.ResolveKey(p))
		}
	},
}

var provincesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every province loads",
	Long: `Load all nine provinces and report town and record counts.
Use this after editing data files or changing the data source.`,
	Args: cobra.NoArgs,
	RunE: runProvincesCheck,
}

var townsCmd = &cobra.Command{
	Use:   "towns <province>",
	Short: "List the towns of a province",
	Args:  cobra.ExactArgs(1),
	RunE:  runTowns,
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <province> <town>",
	Short: "Find emergency services for a town",
	Long: `Find emergency services for a town in a province.

The town is matched case-insensitively: the first town, in data file
order, whose name contains the text is used. Words after the province are
joined, so quoting is optional.

Examples:
  sanumbers lookup "Western Cape" "Cape Town"
  sanumbers lookup western-cape cape town
  sanumbers lookup limpopo polo --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runLookup,
}

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Show national emergency numbers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Print(renderTips())
	},
}

func init() {
	provincesCheckCmd.Flags().BoolVar(&checkJSON, "json", false, "output statuses as JSON")
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output results as JSON")
	provincesCmd.AddCommand(provincesCheckCmd)
	rootCmd.AddCommand(provincesCmd)
	rootCmd.AddCommand(townsCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(tipsCmd)
}

// provinceArg resolves a user-typed province to its canonical name.
func provinceArg(arg string) (string, error) {
	p, ok := domain.LookupProvince(arg)
	if !ok {
		return "", fmt.Errorf("%w: %q (run 'sanumbers provinces' for the list)", domain.ErrUnknownProvince, arg)
	}
	return p, nil
}

func runProvincesCheck(cmd *cobra.Command, _ []string) error {
	s, err := services()
	if err != nil {
		return err
	}

	statuses := s.Check.CheckAll(cmd.Context())

	if checkJSON {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal statuses: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	styled := isTerminal(cmd.OutOrStdout())
	if s.DataLocation != "" {
		cmd.Printf("Data: %s\n\n", s.DataLocation)
	}
	ok := 0
	for _, st := range statuses {
		if st.OK() {
			ok++
			cmd.Printf("  %s %-15s %3d towns %4d services\n", renderStatus(true, styled), st.Province, st.Towns, st.Records)
			continue
		}
		cmd.Printf("  %s %-15s %s\n", renderStatus(false, styled), st.Province, st.Error)
	}
	cmd.Printf("\n%d/%d provinces loaded\n", ok, len(statuses))
	return nil
}

func runTowns(cmd *cobra.Command, args []string) error {
	province, err := provinceArg(args[0])
	if err != nil {
		return err
	}
	s, err := services()
	if err != nil {
		return err
	}

	dataset, err := s.Loader.Load(cmd.Context(), province)
	if err != nil {
		return fmt.Errorf("%s: %w", domain.LoadFailureMessage, err)
	}

	cmd.Printf("%s (%d towns)\n", province, dataset.Len())
	for _, name := range dataset.TownNames() {
		cmd.Printf("  %s\n", name)
	}
	return nil
}

// lookupOutput is the --json form of a lookup.
type lookupOutput struct {
	Province string                 `json:"province"`
	Search   string                 `json:"search"`
	Town     string                 `json:"town,omitempty"`
	Services []domain.ServiceRecord `json:"services"`
	Advice   string                 `json:"advice,omitempty"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	state, err := lookup(cmd, args)
	if err != nil {
		return err
	}

	if lookupJSON {
		out := lookupOutput{
			Province: state.SelectedProvince,
			Search:   state.SearchText,
			Town:     state.MatchedTown,
			Services: state.FilteredResults,
		}
		if state.NoMatch() {
			out.Advice = domain.NoMatchAdvice(state.SearchText)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	styled := isTerminal(cmd.OutOrStdout())
	if state.NoMatch() {
		cmd.Println(renderAdvice(state.SearchText, styled))
		return nil
	}

	cmd.Printf("Emergency Services in %s, %s\n\n", state.MatchedTown, state.SelectedProvince)
	for i, rec := range state.FilteredResults {
		cmd.Print(renderCard(i+1, rec, styled))
	}
	cmd.Printf("\n%s\n", domain.Disclaimer)
	return nil
}

// lookup selects the province, applies the town search and returns the state.
func lookup(cmd *cobra.Command, args []string) (domain.SelectionState, error) {
	province, err := provinceArg(args[0])
	if err != nil {
		return domain.SelectionState{}, err
	}
	town := strings.Join(args[1:], " ")
	if strings.TrimSpace(town) == "" {
		return domain.SelectionState{}, fmt.Errorf("%w: town is empty", domain.ErrInvalidInput)
	}

	s, err := services()
	if err != nil {
		return domain.SelectionState{}, err
	}

	if err := s.Selection.Select(cmd.Context(), province); err != nil {
		return domain.SelectionState{}, fmt.Errorf("%s: %w", domain.LoadFailureMessage, err)
	}
	s.Selection.SetSearchText(town)
	return s.Selection.Snapshot(), nil
}
