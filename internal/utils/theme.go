package utils

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Theme - exported theme colors for consistent console output
var Theme = struct {
	Success text.Colors
	Info    text.Colors
	Warning text.Colors
	Error   text.Colors
	Heading text.Colors
	Subtle  text.Colors
	Accent  text.Colors

	Title       text.Colors
	Divider     text.Colors
	TableHeader text.Colors
	TableBorder text.Colors
	TableRow    text.Colors
}{
	Success: text.Colors{text.FgGreen},
	Info:    text.Colors{text.FgBlue},
	Warning: text.Colors{text.FgYellow},
	Error:   text.Colors{text.FgRed},
	Heading: text.Colors{text.FgHiCyan, text.Bold},
	Subtle:  text.Colors{text.FgHiBlack},
	Accent:  text.Colors{text.FgCyan},

	Title:       text.Colors{text.FgHiCyan, text.Bold},
	Divider:     text.Colors{text.FgHiBlack},
	TableHeader: text.Colors{text.FgHiBlue, text.Bold},
	TableBorder: text.Colors{text.FgBlue},
	TableRow:    text.Colors{text.FgWhite},
}

// PrintHeading prints a formatted heading
func PrintHeading(title string) {
	fmt.Println(Theme.Heading.Sprint(title))
}

// PrintSubHeading prints a formatted sub-heading
func PrintSubHeading(title string) {
	fmt.Println(Theme.Info.Sprint(title))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(Theme.Success.Sprint("✓ ") + message)
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Println(Theme.Info.Sprint("ℹ ") + message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println(Theme.Warning.Sprint("⚠ ") + message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(Theme.Error.Sprint("✗ ") + message)
}

// PrintKeyValue prints a key-value pair
func PrintKeyValue(key, value string) {
	fmt.Printf("%s: %s\n", text.Colors{text.Bold}.Sprint(key), value)
}

// PrintDivider prints a horizontal divider
func PrintDivider() {
	fmt.Println(Theme.Divider.Sprint("───────────────────────────────────────────────────"))
}

// TableOptions defines options for table creation
type TableOptions struct {
	Title string
}

// CreateTable creates a new table with default styling
func CreateTable(options ...TableOptions) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	if len(options) > 0 && options[0].Title != "" {
		t.SetTitle(options[0].Title)
	}

	style := table.StyleLight
	style.Color.Header = Theme.TableHeader
	style.Color.Border = Theme.TableBorder
	style.Color.Row = Theme.TableRow
	style.Title.Colors = Theme.Title
	style.Box.PaddingLeft = " "
	style.Box.PaddingRight = " "

	t.SetStyle(style)

	return t
}

// PrintTable prints a table with headers and rows
func PrintTable(headers []string, rows [][]string, options ...TableOptions) {
	t := CreateTable(options...)

	headerRow := table.Row{}
	for _, header := range headers {
		headerRow = append(headerRow, header)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tableRow := table.Row{}
		for _, cell := range row {
			tableRow = append(tableRow, cell)
		}
		t.AppendRow(tableRow)
	}

	configs := []table.ColumnConfig{}
	for i := range headers {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignCenter,
		})
	}
	t.SetColumnConfigs(configs)

	t.Render()
}
