// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows in a paged list.
const PageSize = 50

// MaxPageSize caps a client-supplied limit.
const MaxPageSize = 200

// Page is a parsed offset window.
type Page struct {
	Start int // 1-based index of the first row
	Size  int
}

// Parse reads ?start= (1-based) and ?limit= from r, falling back to 1 and
// PageSize, and clamping limit to MaxPageSize.
func Parse(r *http.Request) Page {
	p := Page{Start: 1, Size: PageSize}
	if n, err := strconv.Atoi(query.Get(r, "start")); err == nil && n > 0 {
		p.Start = n
	}
	if n, err := strconv.Atoi(query.Get(r, "limit")); err == nil && n > 0 {
		p.Size = n
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset is the number of rows to skip.
func (p Page) Offset() int64 { return int64(p.Start - 1) }

// LimitPlusOne fetches one extra row to detect a following page.
func (p Page) LimitPlusOne() int64 { return int64(p.Size + 1) }

// Trim drops the look-ahead row and reports whether a next page exists.
func Trim[T any](rows *[]T, p Page) (hasNext bool) {
	if len(*rows) > p.Size {
		*rows = (*rows)[:p.Size]
		return true
	}
	return false
}
