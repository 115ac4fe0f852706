package paginate

import (
	"reflect"
	"testing"
)

func TestVisiblePages(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"first page of ten", 1, 10, []int{1, 2, 3, 4, 5}},
		{"second page of ten", 2, 10, []int{1, 2, 3, 4, 5}},
		{"middle page of ten", 5, 10, []int{3, 4, 5, 6, 7}},
		{"penultimate page of ten", 9, 10, []int{6, 7, 8, 9, 10}},
		{"last page of ten", 10, 10, []int{6, 7, 8, 9, 10}},
		{"single page", 1, 1, []int{1}},
		{"three pages", 2, 3, []int{1, 2, 3}},
		{"exactly window size", 3, 5, []int{1, 2, 3, 4, 5}},
		{"no pages", 1, 0, nil},
		{"current above total clamps down", 50, 10, []int{6, 7, 8, 9, 10}},
		{"current below one clamps up", 0, 10, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisiblePages(tt.current, tt.total)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VisiblePages(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
			}
		})
	}
}

func TestVisiblePages_Properties(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for current := 1; current <= total; current++ {
			pages := VisiblePages(current, total)

			if len(pages) == 0 {
				t.Fatalf("VisiblePages(%d, %d) returned no pages", current, total)
			}
			if len(pages) > WindowSize {
				t.Errorf("VisiblePages(%d, %d) returned %d pages, max is %d", current, total, len(pages), WindowSize)
			}

			containsCurrent := false
			for i, p := range pages {
				if p < 1 || p > total {
					t.Errorf("VisiblePages(%d, %d) contains out-of-range page %d", current, total, p)
				}
				if i > 0 && pages[i-1] >= p {
					t.Errorf("VisiblePages(%d, %d) = %v is not strictly increasing", current, total, pages)
				}
				if p == current {
					containsCurrent = true
				}
			}
			if !containsCurrent {
				t.Errorf("VisiblePages(%d, %d) = %v does not contain current page", current, total, pages)
			}

			// Away from the boundaries the window is always full.
			if current >= 3 && current <= total-2 && total > WindowSize && len(pages) != WindowSize {
				t.Errorf("VisiblePages(%d, %d) = %v, expected full window", current, total, pages)
			}
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		page, total, want int
	}{
		{5, 10, 5},
		{11, 10, 10},
		{0, 10, 1},
		{-3, 10, 1},
		{1, 0, 1},
		{7, 0, 7}, // unknown total leaves the page alone
	}
	for _, tt := range tests {
		if got := Clamp(tt.page, tt.total); got != tt.want {
			t.Errorf("Clamp(%d, %d) = %d, want %d", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestPrevNext(t *testing.T) {
	if HasPrev(1) {
		t.Error("HasPrev(1) should be false")
	}
	if !HasPrev(2) {
		t.Error("HasPrev(2) should be true")
	}
	if HasNext(10, 10) {
		t.Error("HasNext(10, 10) should be false")
	}
	if !HasNext(9, 10) {
		t.Error("HasNext(9, 10) should be true")
	}
}
