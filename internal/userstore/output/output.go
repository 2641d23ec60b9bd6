// Package output renders stored users for the console.
package output

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/userstore/internal/db"
	"github.com/nsqlite/userstore/internal/userstore/styled"
	"github.com/nsqlite/userstore/internal/util/numutil"
	"github.com/orsinium-labs/enum"
)

// Format selects how users are printed.
type Format enum.Member[string]

var (
	// FormatTuple prints one "(id, 'name', age)" line per user.
	FormatTuple = Format{Value: "tuple"}
	// FormatTable prints a single table with a row count footer.
	FormatTable = Format{Value: "table"}

	Formats = enum.New(FormatTuple, FormatTable)
)

// ParseFormat returns the Format matching name.
func ParseFormat(name string) (Format, error) {
	format := Formats.Parse(name)
	if format == nil {
		return Format{}, fmt.Errorf(
			"invalid output format, valid values are: %s",
			strings.Join(Formats.Values(), ", "),
		)
	}
	return *format, nil
}

// Write prints users to w using the given format. source names the
// database the users were read from and is only shown by FormatTable.
func Write(w io.Writer, format Format, users []db.User, source string) error {
	switch format {
	case FormatTuple:
		return writeTuples(w, users)
	case FormatTable:
		return writeTable(w, users, source)
	}
	return fmt.Errorf("unknown output format: %s", format.Value)
}

func writeTuples(w io.Writer, users []db.User) error {
	for _, u := range users {
		if _, err := fmt.Fprintln(w, Tuple(u)); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, users []db.User, source string) error {
	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"id", "name", "age"})
	for _, u := range users {
		tw.AppendRow(table.Row{u.ID, u.Name, u.Age})
	}
	tw.AppendFooter(table.Row{"Total", numutil.IntWithCommas(len(users)), ""})

	if _, err := fmt.Fprintln(w, tw.Render()); err != nil {
		return err
	}
	_, err := styled.DimmedColor().Fprintf(w, "Read from %s\n", source)
	return err
}

// Tuple formats a user as "(id, 'name', age)".
func Tuple(u db.User) string {
	return fmt.Sprintf("(%d, %s, %d)", u.ID, quoteText(u.Name), u.Age)
}

// quoteText quotes s with single quotes, switching to double quotes when
// s holds a single quote but no double quote. Backslashes, the active
// quote and non-printable runes are escaped.
func quoteText(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	b := strings.Builder{}
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteRune('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case !unicode.IsPrint(r):
			b.WriteString(escapeRune(r))
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(quote)

	return b.String()
}

// escapeRune returns the shortest hex escape for a non-printable rune.
func escapeRune(r rune) string {
	switch {
	case r < 0x100:
		return fmt.Sprintf(`\x%02x`, r)
	case r < 0x10000:
		return fmt.Sprintf(`\u%04x`, r)
	}
	return fmt.Sprintf(`\U%08x`, r)
}
