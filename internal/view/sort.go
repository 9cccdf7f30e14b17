// Package view implements the table interaction state shared by the fund,
// holdings, and trending views: sortable column cycling and batched
// infinite-scroll pagination.
package view

// Direction is a column sort direction.
type Direction int

const (
	// DirNone means no sort applied (original row order).
	DirNone Direction = iota
	// DirDesc sorts descending, the default for every column.
	DirDesc
	// DirAsc sorts ascending.
	DirAsc
)

// String returns the query-parameter form of the direction.
func (d Direction) String() string {
	switch d {
	case DirDesc:
		return "desc"
	case DirAsc:
		return "asc"
	default:
		return ""
	}
}

// ParseDirection maps a query-parameter value to a Direction.
func ParseDirection(s string) Direction {
	switch s {
	case "desc":
		return DirDesc
	case "asc":
		return DirAsc
	default:
		return DirNone
	}
}

// SortState tracks the active sort column and direction for one table.
// Toggling the active column cycles desc -> asc (-> none when AllowNone);
// toggling a different column resets to descending.
type SortState struct {
	Column    string
	Dir       Direction
	AllowNone bool
}

// Toggle applies a header click for the given column and reports whether the
// sort changed (a change on a remote-keyed column triggers a page-0 refetch).
func (s *SortState) Toggle(column string) bool {
	if column != s.Column {
		s.Column = column
		s.Dir = DirDesc
		return true
	}

	switch s.Dir {
	case DirDesc:
		s.Dir = DirAsc
	case DirAsc:
		if s.AllowNone {
			s.Dir = DirNone
			s.Column = ""
		} else {
			s.Dir = DirDesc
		}
	default:
		s.Dir = DirDesc
	}
	return true
}

// Active reports whether any sort is applied.
func (s *SortState) Active() bool {
	return s.Column != "" && s.Dir != DirNone
}
