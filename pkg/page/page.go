// Package page provides zero-based page requests and paged results.
package page

import "math"

// Request describes a zero-based page of Size items.
type Request struct {
	Page int `form:"page" json:"page"`
	Size int `form:"size" json:"size"`
}

// NewRequest builds a page request.
func NewRequest(page, size int) Request {
	return Request{Page: page, Size: size}
}

// Normalize clamps the request: negative pages become 0, a non-positive size
// becomes defaultSize and sizes above maxSize are capped.
func (r Request) Normalize(defaultSize, maxSize int) Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = defaultSize
	}
	if maxSize > 0 && r.Size > maxSize {
		r.Size = maxSize
	}
	return r
}

// Offset returns the number of rows to skip.
func (r Request) Offset() int {
	if r.Page < 0 || r.Size <= 0 {
		return 0
	}
	return r.Page * r.Size
}

// Limit returns the maximum number of rows to fetch.
func (r Request) Limit() int {
	return r.Size
}

// Page holds one page of content plus totals.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// New builds a page from its content and a known total.
func New[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages(total, req.Size),
	}
}

// Lazy builds a page and calls count only when the content cannot prove the total:
// a first page shorter than Size, or a non-empty later page shorter than Size,
// already determines it.
func Lazy[T any](content []T, req Request, count func() (int64, error)) (Page[T], error) {
	offset := int64(req.Offset())
	n := int64(len(content))

	if offset == 0 {
		if int64(req.Size) > n {
			return New(content, req, n), nil
		}
	} else if n != 0 && int64(req.Size) > n {
		return New(content, req, offset+n), nil
	}

	total, err := count()
	if err != nil {
		return Page[T]{}, err
	}
	return New(content, req, total), nil
}

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool {
	return p.Page+1 < p.TotalPages
}

// IsLast reports whether this is the last page.
func (p Page[T]) IsLast() bool {
	return !p.HasNext()
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(size)))
}
