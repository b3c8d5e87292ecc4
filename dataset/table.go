/*
Package dataset models the tabular input both indicator pipelines consume
and validates it before processing.

PURPOSE:
  The engines assume an external loader already produced named-field rows
  (spreadsheet import, API payloads, manual entry). This package is the
  seam: a loosely-typed Table, column-name normalization with alias
  resolution, numeric coercion, and the per-pipeline schema checks that
  gate processing.

KEY CONCEPTS IN THIS FILE (table.go):
  - Row: one record as map of field name to raw cell value
  - Table: ordered columns plus rows, with snapshot copies on Clone
  - CoerceFloat: the single cell-to-number policy (non-numeric reads as 0)

SEE ALSO:
  - validator.go: Schema checks, alias dictionaries, issue reporting
  - detect.go: Reactive/proactive signature detection
*/
package dataset

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TABLE - Ordered named-field records
// =============================================================================

// Row holds one record's cells keyed by column name. Values are whatever
// the loader produced: numbers, strings, booleans or nil.
type Row map[string]any

// Table is an ordered collection of named-field rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// New builds a table from an explicit column order and rows.
func New(columns []string, rows []Row) Table {
	return Table{Columns: columns, Rows: rows}
}

// FromRows builds a table from bare rows, inferring the column set as the
// sorted union of row keys. Sorting keeps the inferred order deterministic
// regardless of map iteration.
func FromRows(rows []Row) Table {
	seen := map[string]bool{}
	for _, r := range rows {
		for k := range r {
			seen[k] = true
		}
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return Table{Columns: columns, Rows: rows}
}

// IsEmpty reports whether the table has no rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// HasColumn reports whether the column is present.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Handing out clones keeps stored or returned
// tables immune to caller mutation.
func (t Table) Clone() Table {
	cols := append([]string(nil), t.Columns...)
	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		rows[i] = nr
	}
	return Table{Columns: cols, Rows: rows}
}

// Float reads a cell as a number through CoerceFloat.
func (t Table) Float(row int, col string) (float64, bool) {
	if row < 0 || row >= len(t.Rows) {
		return 0, false
	}
	return CoerceFloat(t.Rows[row][col])
}

// Text reads a cell as a trimmed string. Non-string cells read as empty.
func (t Table) Text(row int, col string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if s, ok := t.Rows[row][col].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// DisplayColumn pairs a report field key with the caption presentation
// layers print for it.
type DisplayColumn struct {
	Key   string
	Label string
}

// =============================================================================
// COLUMN NAME NORMALIZATION
// =============================================================================

// NormalizeName canonicalizes a column name: lowercase, trimmed, inner
// spaces replaced by underscores.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// WithNormalizedColumns returns a copy whose column names and row keys have
// been canonicalized through NormalizeName. When two raw names collapse to
// the same canonical name the first column wins.
func (t Table) WithNormalizedColumns() Table {
	out := Table{Columns: make([]string, 0, len(t.Columns)), Rows: make([]Row, len(t.Rows))}
	rename := make(map[string]string, len(t.Columns))
	seen := map[string]bool{}
	for _, c := range t.Columns {
		norm := NormalizeName(c)
		if seen[norm] {
			continue
		}
		seen[norm] = true
		rename[c] = norm
		out.Columns = append(out.Columns, norm)
	}
	for i, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nk, ok := rename[k]
			if !ok {
				nk = NormalizeName(k)
			}
			if _, dup := nr[nk]; !dup {
				nr[nk] = v
			}
		}
		out.Rows[i] = nr
	}
	return out
}

// =============================================================================
// CELL COERCION
// =============================================================================

// CoerceFloat turns a raw cell value into a float64. The second return
// reports whether the cell was genuinely numeric; absent, empty and
// unparseable cells come back as (0, false) so callers can both count the
// coercions and keep computing.
func CoerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return 0, false
		}
		f, _ := d.Float64()
		return f, true
	default:
		return 0, false
	}
}
