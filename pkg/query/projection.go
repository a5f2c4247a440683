// Package query builds parameterized SELECT statements over a projection
// of view names onto qualified columns.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view property names to qualified column references
// (alias.column) for a base table and any joined tables.
type ProjectionMap struct {
	schema     string
	table      string
	alias      string
	joins      []string
	columns    map[string]string
	columnList []string
}

func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project maps a column of the base table to viewName.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	return p.ProjectFrom(p.alias, column, viewName)
}

// ProjectFrom maps a column of a joined table, addressed by its alias.
func (p *ProjectionMap) ProjectFrom(alias, column, viewName string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", alias, column)
	p.columns[viewName] = qualified
	p.columnList = append(p.columnList, qualified)
	return p
}

// LeftJoin adds a LEFT JOIN of schema.table under alias using the on clause.
func (p *ProjectionMap) LeftJoin(table, alias, on string) *ProjectionMap {
	p.joins = append(p.joins, fmt.Sprintf("LEFT JOIN %s.%s %s ON %s", p.schema, table, alias, on))
	return p
}

func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the base table reference with alias (schema.table alias).
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// From returns the base table followed by its joins.
func (p *ProjectionMap) From() string {
	if len(p.joins) == 0 {
		return p.Table()
	}
	return p.Table() + " " + strings.Join(p.joins, " ")
}

// Column returns the qualified column for viewName, or viewName itself
// when unmapped.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columnList, ", ")
}
