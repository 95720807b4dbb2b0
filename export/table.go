package export

import (
	"fmt"
	"strconv"
)

// Row is one record's flattened cells keyed by column name. A column absent
// from the map is a null cell.
type Row map[string]any

// Table is a flattened record batch: an ordered column list plus one Row per
// record. Column order is first-seen order across the whole batch, so records
// with differing optional fields still share one schema.
type Table struct {
	Columns []string
	Rows    []Row

	seen map[string]bool
}

// NewTable creates an empty Table
func NewTable() *Table {
	return &Table{seen: make(map[string]bool)}
}

// AddColumn registers a column, keeping first-seen order
func (t *Table) AddColumn(name string) {
	if t.seen[name] {
		return
	}
	t.seen[name] = true
	t.Columns = append(t.Columns, name)
}

// Append adds a record's row
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// CellString renders the cell at (row, column) as text, reporting whether the
// cell is present
func (t *Table) CellString(row Row, column string) (string, bool) {
	value, ok := row[column]
	if !ok {
		return "", false
	}
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}
