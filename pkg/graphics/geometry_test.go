package graphics

import "testing"

func TestRectFromLTWH(t *testing.T) {
	r := RectFromLTWH(10, 20, 30, 40)
	if r.Left != 10 || r.Top != 20 || r.Right != 40 || r.Bottom != 60 {
		t.Fatalf("unexpected rect: %+v", r)
	}
	if r.Width() != 30 || r.Height() != 40 {
		t.Fatalf("unexpected dimensions: %f x %f", r.Width(), r.Height())
	}
	if c := r.Center(); c.X != 25 || c.Y != 40 {
		t.Fatalf("unexpected center: %+v", c)
	}
}

func TestRectContainsEdges(t *testing.T) {
	r := RectFromLTWH(0, 0, 10, 10)
	cases := []struct {
		point Offset
		want  bool
	}{
		{Offset{X: 0, Y: 0}, true},
		{Offset{X: 5, Y: 5}, true},
		{Offset{X: 10, Y: 5}, false},
		{Offset{X: 5, Y: 10}, false},
		{Offset{X: -1, Y: 5}, false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.point); got != tc.want {
			t.Errorf("Contains(%+v) = %v, want %v", tc.point, got, tc.want)
		}
	}
}

func TestRectUnion(t *testing.T) {
	a := RectFromLTWH(0, 0, 10, 10)
	b := RectFromLTWH(20, 5, 10, 10)
	u := a.Union(b)
	want := Rect{Left: 0, Top: 0, Right: 30, Bottom: 15}
	if u != want {
		t.Fatalf("Union = %+v, want %+v", u, want)
	}
}

func TestRectOutset(t *testing.T) {
	r := RectFromLTWH(10, 10, 10, 10).Outset(3)
	want := Rect{Left: 7, Top: 7, Right: 23, Bottom: 23}
	if r != want {
		t.Fatalf("Outset = %+v, want %+v", r, want)
	}
}

func TestOffsetDistance(t *testing.T) {
	d := (Offset{X: 0, Y: 0}).Distance(Offset{X: 3, Y: 4})
	if d != 5 {
		t.Fatalf("Distance = %f, want 5", d)
	}
}
