// Package styled holds the console styles shared by the userstore CLI.
package styled

import (
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// NewTableWriter returns a table.Writer with a cyan bold header and
// footer. Headers are printed as given, not upper-cased.
func NewTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
	tw.Style().Color.Footer = text.Colors{text.FgCyan, text.Bold}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "id", Align: text.AlignRight},
		{Name: "age", Align: text.AlignRight},
	})

	return tw
}

// DimmedColor returns the grey used for secondary lines such as the
// database path under a table.
func DimmedColor() *color.Color {
	return color.RGB(128, 128, 128)
}
