package model

const (
	DefaultPageFrom = 0
	DefaultPageSize = 10
)

// Page is an offset window: skip From documents, return at most Size.
type Page struct {
	From int64
	Size int64
}

func DefaultPage() Page {
	return Page{From: DefaultPageFrom, Size: DefaultPageSize}
}
