package catalog

import (
	"net/url"
	"strings"

	"ostocare-be/internal/product"
)

// FilterState is the set of active predicates. Zero value matches everything.
type FilterState struct {
	SearchText string              `json:"searchText"`
	Category   *product.Category   `json:"category,omitempty"`
	OstomyType *product.OstomyType `json:"ostomyType,omitempty"`
}

// FilterPatch is a partial update. Nil fields are left untouched; the Clear
// flags unset the corresponding optional filter.
type FilterPatch struct {
	SearchText      *string
	Category        *product.Category
	OstomyType      *product.OstomyType
	ClearCategory   bool
	ClearOstomyType bool
}

// Merge returns s with p applied.
func (s FilterState) Merge(p FilterPatch) FilterState {
	if p.SearchText != nil {
		s.SearchText = *p.SearchText
	}
	if p.ClearCategory {
		s.Category = nil
	} else if p.Category != nil {
		c := *p.Category
		s.Category = &c
	}
	if p.ClearOstomyType {
		s.OstomyType = nil
	} else if p.OstomyType != nil {
		o := *p.OstomyType
		s.OstomyType = &o
	}
	return s
}

// Active reports whether any predicate is set.
func (s FilterState) Active() bool {
	return s.SearchText != "" || s.Category != nil || s.OstomyType != nil
}

// Matches applies the predicates conjunctively: search text against name or
// description, exact category, and ostomy type where universal products
// always pass.
func Matches(p product.Product, s FilterState) bool {
	if s.SearchText != "" {
		needle := strings.ToLower(s.SearchText)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}

	if s.Category != nil && p.Category != *s.Category {
		return false
	}

	if s.OstomyType != nil &&
		p.OstomyType != *s.OstomyType &&
		p.OstomyType != product.OstomyUniversal {
		return false
	}

	return true
}

// Filter returns the products satisfying s, preserving input order. It never
// mutates products and always returns a non-nil slice.
func Filter(products []product.Product, s FilterState) []product.Product {
	visible := make([]product.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, s) {
			visible = append(visible, p)
		}
	}
	return visible
}

// ParseFilters builds a patch from query parameters "search", "category" and
// "ostomyType". Unknown enum values are reported as errors.
func ParseFilters(q url.Values) (FilterPatch, error) {
	var patch FilterPatch

	if _, ok := q["search"]; ok {
		search := q.Get("search")
		patch.SearchText = &search
	}

	if raw := strings.TrimSpace(q.Get("category")); raw != "" {
		c := product.Category(raw)
		if !c.Valid() {
			return FilterPatch{}, &InvalidFilterError{Field: "category", Value: raw}
		}
		patch.Category = &c
	}

	if raw := strings.TrimSpace(q.Get("ostomyType")); raw != "" {
		o := product.OstomyType(raw)
		if !o.Valid() {
			return FilterPatch{}, &InvalidFilterError{Field: "ostomyType", Value: raw}
		}
		patch.OstomyType = &o
	}

	return patch, nil
}

type InvalidFilterError struct {
	Field string
	Value string
}

func (e *InvalidFilterError) Error() string {
	return "invalid " + e.Field + " filter: " + e.Value
}
