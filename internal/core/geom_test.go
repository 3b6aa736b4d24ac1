package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false}, // right edge is exclusive
		{5, 5, false}, // bottom edge is exclusive
		{1, 3, false},
		{2, 2, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
	if r.Right() != 6 || r.Bottom() != 5 {
		t.Errorf("Right/Bottom = %d/%d, want 6/5", r.Right(), r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	got := NewRect(0, 0, 22, 12).Inset(1)
	if want := NewRect(1, 1, 20, 10); got != want {
		t.Errorf("Inset(1) = %+v, want %+v", got, want)
	}
	if got := NewRect(0, 0, 1, 1).Inset(2); got.W != 0 || got.H != 0 {
		t.Errorf("Inset past zero = %+v", got)
	}
}

func TestRectCenterIn(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)

	tests := []struct {
		name  string
		inner Rect
		want  Rect
	}{
		{"fits", NewRect(0, 0, 40, 22), NewRect(20, 1, 40, 22)},
		{"odd slack rounds down", NewRect(5, 5, 41, 21), NewRect(19, 1, 41, 21)},
		{"too large pins to corner", NewRect(0, 0, 100, 30), NewRect(0, 0, 100, 30)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.inner.CenterIn(outer); got != tc.want {
				t.Errorf("CenterIn = %+v, want %+v", got, tc.want)
			}
		})
	}
}
