package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

var actionIndex int

var callCmd = &cobra.Command{
	Use:   "call <province> <town>",
	Short: "Call a service for a town",
	Long: `Look up a town and dial one of its services.

The number is handed to the system tel: handler. Use --index to pick a
service other than the first, as numbered by 'sanumbers lookup'.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCall,
}

var copyCmd = &cobra.Command{
	Use:   "copy <province> <town>",
	Short: "Copy a service's phone number",
	Long: `Look up a town and copy one of its phone numbers to the clipboard.

Use --index to pick a service other than the first, as numbered by
'sanumbers lookup'.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCopy,
}

func init() {
	for _, c := range []*cobra.Command{callCmd, copyCmd} {
		c.Flags().IntVarP(&actionIndex, "index", "i", 1, "service number from lookup output")
		rootCmd.AddCommand(c)
	}
}

// pickRecord runs the lookup and returns the indexed record.
func pickRecord(cmd *cobra.Command, args []string) (*Services, *domain.ServiceRecord, error) {
	state, err := lookup(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	if state.NoMatch() {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrNotFound, domain.NoMatchAdvice(state.SearchText))
	}
	if actionIndex < 1 || actionIndex > len(state.FilteredResults) {
		return nil, nil, fmt.Errorf("%w: index %d out of range 1-%d",
			domain.ErrInvalidInput, actionIndex, len(state.FilteredResults))
	}
	s, err := services()
	if err != nil {
		return nil, nil, err
	}
	rec := state.FilteredResults[actionIndex-1]
	return s, &rec, nil
}

func runCall(cmd *cobra.Command, args []string) error {
	s, rec, err := pickRecord(cmd, args)
	if err != nil {
		return err
	}
	if err := s.Actions.Call(cmd.Context(), rec); err != nil {
		return fmt.Errorf("call failed: %w", err)
	}
	cmd.Printf("Calling %s (%s)\n", rec.Phone, rec.Name)
	return nil
}

func runCopy(cmd *cobra.Command, args []string) error {
	s, rec, err := pickRecord(cmd, args)
	if err != nil {
		return err
	}
	if err := s.Actions.Copy(cmd.Context(), rec); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	cmd.Printf("Copied %s (%s)\n", rec.Phone, rec.Name)
	return nil
}
