package jsonsql

import (
	"strings"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/jsonsql/internal/render"
)

// schemaIndex answers table and column lookups for a DBML project.
type schemaIndex struct {
	tables map[string]map[string]bool // table -> column -> present
}

func newSchemaIndex(project *dbml.Project) *schemaIndex {
	idx := &schemaIndex{tables: make(map[string]map[string]bool)}
	for _, table := range project.Tables {
		cols := make(map[string]bool, len(table.Columns))
		for _, col := range table.Columns {
			cols[col.Name] = true
		}
		idx.tables[table.Name] = cols
	}
	return idx
}

func (s *schemaIndex) CheckTable(name string) error {
	if _, ok := s.tables[name]; !ok {
		return render.NewNotInSchemaError("table", name)
	}
	return nil
}

func (s *schemaIndex) CheckColumn(table, column string) error {
	cols, ok := s.tables[table]
	if !ok {
		return render.NewNotInSchemaError("table", table)
	}
	// JSON path access is checked on its column
	if i := strings.Index(column, "->"); i >= 0 {
		column = column[:i]
	}
	if column == "*" || cols[column] {
		return nil
	}
	return render.NewNotInSchemaError("column", table+"."+column)
}
