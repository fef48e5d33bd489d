package models

// Page mirrors the backend's paginated envelope (zero-based page index).
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 0 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.Number+1 < p.TotalPages }
