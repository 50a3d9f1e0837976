package handler

import "testing"

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		page      int
		limit     int
		wantPages int64
	}{
		{"exact fit", 40, 1, 10, 4},
		{"partial last page", 41, 2, 10, 5},
		{"empty", 0, 1, 20, 0},
		{"single page", 7, 1, 50, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginate(tt.total, tt.page, tt.limit)
			if p.TotalPages != tt.wantPages {
				t.Errorf("paginate(%d, _, %d).TotalPages = %d, want %d", tt.total, tt.limit, p.TotalPages, tt.wantPages)
			}
			if p.Total != tt.total || p.Page != tt.page || p.Limit != tt.limit {
				t.Errorf("paginate() echoed %+v", p)
			}
		})
	}
}
