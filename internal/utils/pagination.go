package utils

// Page describes one page of an ordered listing.
type Page struct {
	Number   int
	PerPage  int
	Total    int64
	NumPages int
}

// Paginate resolves rawPage against total items. A missing or non-numeric page
// yields the first page, a page past the end yields the last one.
func Paginate(total int64, perPage int, rawPage string) Page {
	if perPage <= 0 {
		perPage = 10
	}
	if total < 0 {
		total = 0
	}
	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}

	n := StringToInt(rawPage)
	switch {
	case n < 1:
		n = 1
	case n > numPages:
		n = numPages
	}
	return Page{Number: n, PerPage: perPage, Total: total, NumPages: numPages}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) Limit() int {
	return p.PerPage
}

// Len is the number of items on this page.
func (p Page) Len() int {
	if p.Total == 0 {
		return 0
	}
	remaining := int(p.Total) - p.Offset()
	if remaining > p.PerPage {
		return p.PerPage
	}
	return remaining
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.NumPages }
func (p Page) PrevNumber() int {
	if p.HasPrev() {
		return p.Number - 1
	}
	return 1
}
func (p Page) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.NumPages
}

// PageRange returns up to window page numbers centered on the current page.
func (p Page) PageRange(window int) []int {
	if window < 1 {
		window = 1
	}
	start := p.Number - window/2
	if start < 1 {
		start = 1
	}
	end := start + window - 1
	if end > p.NumPages {
		end = p.NumPages
		start = end - window + 1
		if start < 1 {
			start = 1
		}
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
