package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/picker/internal/catalog"
	"github.com/muurk/picker/internal/logging"
	"github.com/muurk/picker/internal/picker"
	"github.com/muurk/picker/internal/tui"
	"github.com/muurk/picker/internal/ui"
)

// Pick and list flags
var (
	searchText  string
	selectNames []string
	namesOnly   bool
)

func init() {
	rootCmd.Flags().StringVar(&searchText, "search", "", "Initial search text")
	pickCmd.Flags().StringVar(&searchText, "search", "", "Initial search text")

	listCmd.Flags().StringVar(&searchText, "search", "", "Only show items whose name contains this text")
	listCmd.Flags().StringSliceVar(&selectNames, "select", nil, "Mark these items as selected (repeatable)")
	listCmd.Flags().BoolVar(&namesOnly, "names", false, "Print visible names only, one per line")

	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(listCmd)
}

func describeDetails(d catalog.Details) string {
	return d.Description
}

// pickCmd launches the interactive picker
var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Launch the interactive picker",
	Long: `Open the full-screen picker on the catalog.

Typing filters the list, tab moves focus between the search field and the
list, space toggles the highlighted item and ctrl+s confirms. The selected
names are printed to stdout, one per line, so the picker can be used in
pipelines.`,
	Example: `  # Pick from the built-in demo list
  picker
  # Or explicitly:
  picker pick

  # Pick from a catalog, starting with a search
  picker pick --catalog tools.yaml --search sh

  # Use the selection in a script
  picker --catalog packages.yaml | xargs brew install`,
	RunE: runPick,
}

func runPick(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal(os.Stderr) {
		return errors.New("the interactive picker needs a terminal; use 'picker list' instead")
	}

	prefs := preferences()
	cat, err := loadCatalog(prefs)
	if err != nil {
		return err
	}

	initial := searchText
	if initial == "" {
		initial = prefs.InitialSearch
	}

	session := picker.Initialize[catalog.Details]()
	defer session.Close()
	session.SetSourceList(cat.Items())

	result, err := tui.Run(session, tui.Options[catalog.Details]{
		Title:         cat.Source,
		InitialSearch: initial,
		Describe:      describeDetails,
	})
	if err != nil {
		return err
	}

	logging.Info("Picker finished",
		zap.Bool("confirmed", result.Confirmed),
		zap.Int("selected", len(result.Selected)),
	)
	if !result.Confirmed {
		return nil
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintNames(result.Selected)
	return nil
}

// listCmd renders the filtered list once
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the filtered item list",
	Long: `Apply a search and optional selections to the catalog and print the
visible items once, without the interactive UI.`,
	Example: `  # Everything in the demo list
  picker list

  # Items containing "sh", with zsh selected
  picker list --search sh --select zsh

  # Plain names for scripting
  picker list --catalog tools.yaml --search rg --names`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(preferences())
	if err != nil {
		return err
	}

	return picker.WithSession(cat.Items(), func(s *picker.Session[catalog.Details]) error {
		s.OnSearchTextChanged(searchText)
		for _, name := range selectNames {
			s.ToggleSelected(name, false)
		}

		p := ui.NewPrinter(cmd.OutOrStdout())
		if namesOnly {
			names := make([]string, 0)
			for it := range s.VisibleItems() {
				names = append(names, it.Name)
			}
			p.PrintNames(names)
			return nil
		}

		params := []ui.Param{{Key: "Catalog", Value: cat.Source}}
		if searchText != "" {
			params = append(params, ui.Param{Key: "Search", Value: fmt.Sprintf("%q", searchText)})
		}
		p.PrintHeader("Items", "picker list", params...)
		p.Newline()
		p.PrintRows(ui.Rows(s.VisibleItems(), describeDetails), s.Stats().Items)
		return nil
	})
}
