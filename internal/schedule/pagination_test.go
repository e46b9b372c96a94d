package schedule

import "testing"

func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	page := Paginate(items, 1, 20)
	if len(page.Items) != 20 || page.HasPrev || !page.HasNext || page.Total != 45 {
		t.Fatalf("page 1 = %d items, prev %v, next %v, total %d", len(page.Items), page.HasPrev, page.HasNext, page.Total)
	}

	page = Paginate(items, 3, 20)
	if len(page.Items) != 5 || !page.HasPrev || page.HasNext {
		t.Fatalf("page 3 = %d items, prev %v, next %v", len(page.Items), page.HasPrev, page.HasNext)
	}
	if page.Items[0] != 40 {
		t.Fatalf("page 3 starts at %d, want 40", page.Items[0])
	}

	// Past the end: empty but well-formed.
	page = Paginate(items, 9, 20)
	if len(page.Items) != 0 || page.HasNext {
		t.Fatalf("page 9 = %d items, next %v", len(page.Items), page.HasNext)
	}

	// Invalid inputs fall back to defaults.
	page = Paginate(items, 0, 0)
	if page.Page != 1 || page.PageSize != 20 {
		t.Fatalf("defaults = page %d size %d", page.Page, page.PageSize)
	}
}
