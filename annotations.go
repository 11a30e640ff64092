package pdfannotate

import "fmt"

// Annotations maps 1-based page indices to stored rasters.
type Annotations struct {
	pages []Raster
}

// NewAnnotations returns an empty mapping for a document of n pages.
func NewAnnotations(n int) *Annotations {
	if n < 0 {
		n = 0
	}
	return &Annotations{pages: make([]Raster, n)}
}

// Len returns the page count the mapping was sized for.
func (a *Annotations) Len() int { return len(a.pages) }

// Get returns the raster stored for page, if any.
func (a *Annotations) Get(page int) (Raster, bool) {
	if page < 1 || page > len(a.pages) || a.pages[page-1] == nil {
		return nil, false
	}
	return a.pages[page-1], true
}

// Put stores r for page, replacing any previous raster.
func (a *Annotations) Put(page int, r Raster) error {
	if page < 1 || page > len(a.pages) {
		return fmt.Errorf("%w: %d (have %d pages)", ErrPageRange, page, len(a.pages))
	}
	a.pages[page-1] = r
	return nil
}

// Pages returns the indices that have a stored raster, ascending.
func (a *Annotations) Pages() []int {
	var out []int
	for i, r := range a.pages {
		if r != nil {
			out = append(out, i+1)
		}
	}
	return out
}
