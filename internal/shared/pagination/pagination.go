// Package pagination provides the page request and page result types used by list queries.
package pagination

import (
	"strings"
)

const (
	// DefaultSize is the page size used when none is requested.
	DefaultSize = 20
	// MaxSize caps the page size a client may request.
	MaxSize = 100
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Request describes which slice of a result set to return and how to order it.
// Page is zero-based. An empty Sort leaves ordering to the store.
type Request struct {
	Page      int
	Size      int
	Sort      string
	Direction Direction
}

// NewRequest builds a normalized Request. sort has the form "field" or
// "field,asc|desc".
func NewRequest(page, size int, sort string) Request {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	r := Request{Page: page, Size: size, Direction: Asc}
	field, dir, _ := strings.Cut(strings.TrimSpace(sort), ",")
	r.Sort = strings.TrimSpace(field)
	if strings.EqualFold(strings.TrimSpace(dir), "desc") {
		r.Direction = Desc
	}
	return r
}

// Offset returns the number of records to skip.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage assembles a Page from the content fetched for req and the total record count.
func NewPage[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// Map converts the content of p with fn, keeping the paging metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, v := range p.Content {
		out = append(out, fn(v))
	}
	return Page[U]{
		Content:       out,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}
