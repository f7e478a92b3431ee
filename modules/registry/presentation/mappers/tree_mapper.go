package mappers

import (
	"strings"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/hierarchy"
	"github.com/alphaholdings/entity-registry/modules/registry/presentation/viewmodels"
)

// Connector glyphs for the rendered hierarchy. Roots sit at the margin;
// every level below contributes one four-column cell.
const (
	glyphTee   = "├── "
	glyphElbow = "└── "
	glyphPipe  = "│   "
	glyphBlank = "    "
)

// TreePrefix derives the connector prefix for one row from its Last trail.
// The root level never draws a connector. Levels between the root and the
// row emit a continuation pipe while their subtree is still open and blank
// space once it is closed; the row's own level emits the tee or, for the
// last sibling, the elbow.
func TreePrefix(last []bool) string {
	if len(last) <= 1 {
		return ""
	}
	var b strings.Builder
	for _, closed := range last[1 : len(last)-1] {
		if closed {
			b.WriteString(glyphBlank)
		} else {
			b.WriteString(glyphPipe)
		}
	}
	if last[len(last)-1] {
		b.WriteString(glyphElbow)
	} else {
		b.WriteString(glyphTee)
	}
	return b.String()
}

func TreeRowToViewModel(row hierarchy.Row) viewmodels.TreeRow {
	prefix := TreePrefix(row.Last)
	return viewmodels.TreeRow{
		ABN:    row.Entity.ABN(),
		Name:   row.Entity.Name(),
		Kind:   string(row.Entity.Kind()),
		Status: string(row.Entity.Status()),
		Depth:  row.Depth,
		Prefix: prefix,
		Label:  prefix + row.Entity.Name(),
	}
}

func TreeRowsToViewModels(rows []hierarchy.Row) []viewmodels.TreeRow {
	out := make([]viewmodels.TreeRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, TreeRowToViewModel(row))
	}
	return out
}
