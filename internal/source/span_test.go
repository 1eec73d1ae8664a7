package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Fatalf("Cover = %v", got)
	}
	// другой файл не сливаем
	c := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(c); got != a {
		t.Fatalf("Cover across files = %v", got)
	}
}

func TestSpanZeroide(t *testing.T) {
	s := Span{File: 3, Start: 4, End: 9}
	if got := s.ZeroideToEnd(); got.Start != 9 || got.End != 9 || !got.Empty() {
		t.Fatalf("ZeroideToEnd = %v", got)
	}
	if got := s.ZeroideToStart(); got.Start != 4 || got.End != 4 {
		t.Fatalf("ZeroideToStart = %v", got)
	}
	if !s.Contains(4) || s.Contains(9) {
		t.Fatalf("Contains is not half-open")
	}
	if s.Len() != 5 {
		t.Fatalf("Len = %d", s.Len())
	}
}
