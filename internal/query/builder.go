package query

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Builder accumulates filters, ordering, and range pagination for a table read.
// Filters compose with AND semantics, matching the backend's query grammar.
type Builder struct {
	client     *Client
	table      string
	selectCols string
	filters    []filter
	orders     []string
	rangeFrom  int
	rangeTo    int
	hasRange   bool
}

type filter struct {
	column string
	op     string
	value  string
}

// Select restricts the returned columns. Defaults to "*".
func (b *Builder) Select(cols string) *Builder {
	b.selectCols = cols
	return b
}

// ILike adds a case-insensitive substring match on the column.
func (b *Builder) ILike(column, pattern string) *Builder {
	b.filters = append(b.filters, filter{column, "ilike", "*" + pattern + "*"})
	return b
}

// Eq adds an equality filter on the column.
func (b *Builder) Eq(column, value string) *Builder {
	b.filters = append(b.filters, filter{column, "eq", value})
	return b
}

// In adds a set-membership filter on the column.
func (b *Builder) In(column string, values ...string) *Builder {
	b.filters = append(b.filters, filter{column, "in", "(" + strings.Join(values, ",") + ")"})
	return b
}

// Order adds an order clause. Multiple calls compose left to right.
func (b *Builder) Order(column string, ascending bool) *Builder {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	b.orders = append(b.orders, column+"."+dir)
	return b
}

// Range requests rows [from, to] inclusive, the backend's pagination unit.
func (b *Builder) Range(from, to int) *Builder {
	b.rangeFrom = from
	b.rangeTo = to
	b.hasRange = true
	return b
}

// URL returns the request URL this builder would execute.
func (b *Builder) URL() string {
	params := url.Values{}
	params.Set("select", b.selectCols)
	for _, f := range b.filters {
		params.Add(f.column, f.op+"."+f.value)
	}
	if len(b.orders) > 0 {
		params.Set("order", strings.Join(b.orders, ","))
	}
	return b.client.baseURL + "/rest/v1/" + b.table + "?" + params.Encode()
}

// Into executes the read and decodes the JSON array response into dest.
func (b *Builder) Into(ctx context.Context, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.URL(), nil)
	if err != nil {
		return err
	}
	b.client.setAuthHeaders(req)
	if b.hasRange {
		req.Header.Set("Range-Unit", "items")
		req.Header.Set("Range", fmt.Sprintf("%d-%d", b.rangeFrom, b.rangeTo))
	}

	return b.client.do(req, dest)
}
