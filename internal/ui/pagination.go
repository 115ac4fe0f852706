package ui

import (
	"fmt"
	"strings"

	"github.com/veepiac/quip/internal/paginate"
)

// RenderPagination renders a numbered pager bar like "« 3 4 [5] 6 7 »".
// Arrows only appear when the corresponding direction has pages.
func RenderPagination(current, total int) string {
	if total <= 1 {
		return ""
	}

	var parts []string

	if paginate.HasPrev(current) {
		parts = append(parts, PageArrowStyle.Render("«"))
	}

	for _, p := range paginate.VisiblePages(current, total) {
		label := fmt.Sprintf("%d", p)
		if p == current {
			parts = append(parts, PageCurrentStyle.Render(label))
		} else {
			parts = append(parts, PageNumberStyle.Render(label))
		}
	}

	if paginate.HasNext(current, total) {
		parts = append(parts, PageArrowStyle.Render("»"))
	}

	return strings.Join(parts, " ")
}

// RenderPageSummary renders the "N results · page X of Y" line shown under
// listings.
func RenderPageSummary(totalResults, current, total int) string {
	if totalResults == 0 {
		return ""
	}
	noun := "results"
	if totalResults == 1 {
		noun = "result"
	}
	return ListMetaStyle.Render(fmt.Sprintf("%d %s · page %d of %d", totalResults, noun, current, total))
}
