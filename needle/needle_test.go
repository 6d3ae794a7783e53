package needle

import "testing"

func TestLiteralMatch(t *testing.T) {
	m, err := Literal("wer").Match([]byte("qwerty"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil || m.Start != 1 || m.End != 4 {
		t.Fatalf("got %+v, want [1,4)", m)
	}
}

func TestLiteralNoMatch(t *testing.T) {
	m, err := Literal("xyz").Match([]byte("qwerty"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Fatalf("got %+v, want nil", m)
	}
}

func TestLiteralEmptyAlwaysMatchesAtZero(t *testing.T) {
	m, err := Literal("").Match([]byte("anything"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil || m.Start != 0 || m.End != 0 {
		t.Fatalf("got %+v, want [0,0)", m)
	}

	// Even on an empty buffer with no EOF, it still matches without reading.
	m, err = Literal("").Match(nil, false)
	if err != nil || m == nil || m.Start != 0 || m.End != 0 {
		t.Fatalf("empty needle on empty buffer: got %+v, %v", m, err)
	}
}

func TestRegexpMatch(t *testing.T) {
	re, err := NewRegexp("[0-9]+")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	m, err := re.Match([]byte("+012345"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil || m.Start != 1 || m.End != 7 {
		t.Fatalf("got %+v, want [1,7)", m)
	}
}

func TestRegexpInvalidPattern(t *testing.T) {
	if _, err := NewRegexp("[unterminated"); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestNBytesRequiresMoreThanN(t *testing.T) {
	m, err := NBytes(10).Match([]byte("qwe"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Fatalf("got %+v, want nil (buf shorter than n)", m)
	}
}

func TestNBytesExactLengthStillNoMatch(t *testing.T) {
	// The documented off-by-one: len(buf) == n must NOT match.
	m, err := NBytes(3).Match([]byte("abc"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Fatalf("got %+v, want nil when len(buf) == n", m)
	}
}

func TestNBytesMatchesOnceBufferExceedsN(t *testing.T) {
	m, err := NBytes(3).Match([]byte("abcd"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil || m.Start != 0 || m.End != 3 {
		t.Fatalf("got %+v, want [0,3)", m)
	}
}

func TestNBytesZeroNeedsOneByte(t *testing.T) {
	if m, _ := NBytes(0).Match(nil, false); m != nil {
		t.Fatalf("got %+v, want nil on empty buffer", m)
	}
	m, err := NBytes(0).Match([]byte("x"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil || m.Start != 0 || m.End != 0 {
		t.Fatalf("got %+v, want [0,0)", m)
	}
}

func TestEOFMatchesOnlyWhenFlagSet(t *testing.T) {
	if m, _ := EOF.Match([]byte("qwe"), false); m != nil {
		t.Fatalf("got %+v, want nil when eof=false", m)
	}
	m, err := EOF.Match([]byte("qwe"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil || m.Start != 0 || m.End != 3 {
		t.Fatalf("got %+v, want [0,3)", m)
	}
}

func TestGlobMatch(t *testing.T) {
	g, err := NewGlob("login:*")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	m, err := g.Match([]byte("please login: now"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatal("expected a match")
	}
	if m.Start != 7 {
		t.Fatalf("got start=%d, want leftmost match at 7", m.Start)
	}
}

func TestGlobNoMatch(t *testing.T) {
	g, err := NewGlob("password:*")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	m, err := g.Match([]byte("please login: now"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Fatalf("got %+v, want nil", m)
	}
}
