package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/screenforge/pkg/catalog"
	"github.com/matzehuels/screenforge/pkg/compose"
)

// catalogRow is one descriptor with the composer that will draw it.
type catalogRow struct {
	catalog.Descriptor
	Composer bool `json:"composer"`
}

// catalogCommand creates the "catalog" command listing every screen.
func (c *CLI) catalogCommand() *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the screens of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.settings(cmd)
			if err != nil {
				return err
			}
			rows := catalogRows(s.opts.Catalog, s.opts.Registry, catalog.Category(category))
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			fmt.Println(renderCatalogTable(rows))
			printCatalogSummary(rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list screens of this category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	_ = cmd.RegisterFlagCompletionFunc("category", fixedCompletion(categoryNames()...))
	return cmd
}

// catalogRows lists the descriptors in output order, filtered by category
// when one is given.
func catalogRows(cat *catalog.Catalog, reg *compose.Registry, category catalog.Category) []catalogRow {
	var rows []catalogRow
	for _, d := range cat.All() {
		if category != "" && d.Category != category {
			continue
		}
		rows = append(rows, catalogRow{Descriptor: d, Composer: reg.Has(d.Design)})
	}
	return rows
}

func renderCatalogTable(rows []catalogRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		composer := iconSuccess
		if !r.Composer {
			composer = "placeholder"
		}
		theme := "light"
		if r.Dark {
			theme = "dark"
		}
		data[i] = []string{strconv.Itoa(i + 1), r.Name, string(r.Category), r.Design, theme, composer}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Screen", "Category", "Design", "Theme", "Composer").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(rows) {
				return base
			}
			switch {
			case col == 0:
				return base.Foreground(colorDim)
			case col == 5 && rows[row].Composer:
				return base.Foreground(colorGreen)
			case col == 5:
				return base.Foreground(colorYellow)
			case rows[row].Dark:
				return base.Foreground(colorGray)
			}
			return base.Foreground(colorWhite)
		})

	return t.Render()
}

func printCatalogSummary(rows []catalogRow) {
	placeholders, dark := 0, 0
	for _, r := range rows {
		if !r.Composer {
			placeholders++
		}
		if r.Dark {
			dark++
		}
	}
	printDetail("%d screens · %d dark variants · %d placeholders", len(rows)-dark, dark, placeholders)
}
