package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

// Column is a column a seeder writes. Type, when set, is the Postgres
// udt_name the column must have; text[] columns report "_text".
type Column struct {
	Name string
	Type string
}

func col(name string) Column       { return Column{Name: name} }
func uuidCol(name string) Column   { return Column{Name: name, Type: "uuid"} }
func textCol(name string) Column   { return Column{Name: name, Type: "text"} }
func textArray(name string) Column { return Column{Name: name, Type: "_text"} }

// Table lists the columns one seeder depends on.
type Table struct {
	Name    string
	Columns []Column
}

// CheckSchema fails when a table is missing one of the columns or a typed
// column has a different type.
func CheckSchema(ctx context.Context, db database.DB, tables []Table) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, t := range tables {
		if t.Name == "" {
			return fmt.Errorf("empty table")
		}
		existing, err := columnTypes(ctx, db, t.Name)
		if err != nil {
			return err
		}
		if err := compareColumns(t, existing); err != nil {
			return err
		}
	}
	return nil
}

func columnTypes(ctx context.Context, db database.DB, table string) (map[string]string, error) {
	rows, err := db.Query(
		ctx,
		`SELECT column_name, udt_name FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var name, udt string
		if err := rows.Scan(&name, &udt); err != nil {
			return nil, err
		}
		out[name] = udt
	}
	return out, rows.Err()
}

func compareColumns(t Table, existing map[string]string) error {
	for _, c := range t.Columns {
		if c.Name == "" {
			return fmt.Errorf("empty column in %s", t.Name)
		}
		got, ok := existing[c.Name]
		if !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", t.Name, c.Name)
		}
		if c.Type != "" && got != c.Type {
			return fmt.Errorf("schema mismatch: %s.%s is %s, want %s", t.Name, c.Name, got, c.Type)
		}
	}
	return nil
}
