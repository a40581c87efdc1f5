package table

// View is the state of one table view: active filter, sort, page and page size.
// It is a value; every With method returns a new View.
//
// Changing the filter, the sort or the page size sends the view back to the
// first page, so a narrowed result set never shows a stale page number.
type View struct {
	Filter   FilterSpec `json:"filter"`
	Sort     SortSpec   `json:"sort"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// NewView returns a view on page 1 with the given page size.
func NewView(pageSize int) View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return View{Page: 1, PageSize: pageSize}
}

// WithFilter replaces the filter and resets to page 1.
func (v View) WithFilter(f FilterSpec) View {
	v.Filter = f
	v.Page = 1
	return v
}

// WithSearch replaces only the search text and resets to page 1.
func (v View) WithSearch(search string) View {
	f := v.Filter
	f.Search = search
	return v.WithFilter(f)
}

// WithSort replaces the sort and resets to page 1.
func (v View) WithSort(s SortSpec) View {
	v.Sort = s
	v.Page = 1
	return v
}

// ToggleSort sorts by field ascending, or flips the direction when field is
// already the sort field. Resets to page 1.
func (v View) ToggleSort(field string) View {
	s := SortSpec{Field: field}
	if v.Sort.Field == field {
		s.Desc = !v.Sort.Desc
	}
	return v.WithSort(s)
}

// WithPageSize changes the page size and resets to page 1.
func (v View) WithPageSize(size int) View {
	v.PageSize = size
	v.Page = 1
	return v
}

// WithPage moves to page n without touching filter or sort.
func (v View) WithPage(n int) View {
	v.Page = n
	return v
}

// Query returns the table query the view represents.
func (v View) Query() Query {
	return Query{
		Filter: v.Filter,
		Sort:   v.Sort,
		Page:   PageSpec{Page: v.Page, Size: v.PageSize},
	}
}

// Apply runs the view against records.
func Apply[T any](v View, t *Table[T], records []T) Page[T] {
	return t.Query(records, v.Query())
}
