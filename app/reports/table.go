package reports

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"

	"github.com/samber/lo"
)

// Table is a materialized result set: column names plus one []any per row,
// holding whatever values the driver produced.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Tabulate runs statement on db and reads every row into a Table.
func Tabulate(ctx context.Context, db *sql.DB, statement string) (*Table, error) {
	rows, err := db.QueryContext(ctx, statement)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	table := &Table{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := lo.Map(values, func(_ any, i int) any { return &values[i] })
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(table.Rows)+1, err)
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return table, nil
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) columnIndex(name string) (int, error) {
	idx := slices.Index(t.Columns, name)
	if idx < 0 {
		return 0, fmt.Errorf("unknown column %q", name)
	}
	return idx, nil
}

// Int64Column returns the named column as integers.
func (t *Table) Int64Column(name string) ([]int64, error) {
	idx, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(t.Rows))
	for i, row := range t.Rows {
		v, err := toInt64(row[idx])
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// StringColumn returns the named column as strings.
func (t *Table) StringColumn(name string) ([]string, error) {
	idx, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(t.Rows))
	for i, row := range t.Rows {
		switch v := row[idx].(type) {
		case string:
			out = append(out, v)
		case []byte:
			out = append(out, string(v))
		case nil:
			out = append(out, "")
		default:
			return nil, fmt.Errorf("column %q row %d: unexpected %T", name, i+1, v)
		}
	}
	return out, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case []byte:
		return parseInt(string(n))
	case string:
		return parseInt(n)
	default:
		return 0, fmt.Errorf("unexpected %T", v)
	}
}

// parseInt accepts integral numerics such as "12" or "12.0" (postgres NUMERIC).
func parseInt(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
