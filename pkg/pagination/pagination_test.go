package pagination

import "testing"

func TestValidate_ClampsOutOfRangeValues(t *testing.T) {
	cases := []struct {
		name        string
		page, per   int
		wantPage    int
		wantPerPage int
	}{
		{"zero page", 0, 10, 1, 10},
		{"negative page", -3, 10, 1, 10},
		{"zero per page", 2, 0, 2, 15},
		{"over cap", 1, 500, 1, 100},
		{"valid", 3, 25, 3, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := PaginationParams{Page: tc.page, PerPage: tc.per}
			p.Validate()
			if p.Page != tc.wantPage || p.PerPage != tc.wantPerPage {
				t.Errorf("got %d/%d, want %d/%d", p.Page, p.PerPage, tc.wantPage, tc.wantPerPage)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := PaginationParams{Page: 3, PerPage: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 35)
	if pag.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4", pag.TotalPages)
	}
	if !pag.HasNext || !pag.HasPrev {
		t.Errorf("HasNext/HasPrev = %v/%v, want true/true on a middle page", pag.HasNext, pag.HasPrev)
	}

	last := NewPagination(4, 10, 35)
	if last.HasNext {
		t.Error("last page should not have a next page")
	}
}
