package runtime

import (
	"errors"
	"testing"
)

func TestEmptyListStartsAtInitialCapacity(t *testing.T) {
	l := NewList[int64]()
	if l.Len() != 0 {
		t.Errorf("len = %d, want 0", l.Len())
	}
	if l.Cap() != 8 {
		t.Errorf("cap = %d, want 8", l.Cap())
	}
}

func TestLiteralListCapacityIsCount(t *testing.T) {
	l := ListOf[int64](1, 2, 3)
	if l.Len() != 3 || l.Cap() != 3 {
		t.Errorf("len/cap = %d/%d, want 3/3", l.Len(), l.Cap())
	}

	empty := ListOf[int64]()
	if empty.Cap() != 1 {
		t.Errorf("empty literal cap = %d, want 1", empty.Cap())
	}
}

func TestAppendDoublesWhenFull(t *testing.T) {
	l := NewList[int64]()
	for i := int64(0); i < 8; i++ {
		l.Append(i)
	}
	if l.Cap() != 8 {
		t.Fatalf("cap after 8 appends = %d, want 8 (no early growth)", l.Cap())
	}

	// The 9th append triggers the first doubling.
	l.Append(8)
	if l.Cap() != 16 {
		t.Errorf("cap after 9th append = %d, want 16", l.Cap())
	}
	if l.Len() != 9 {
		t.Errorf("len after 9th append = %d, want 9", l.Len())
	}

	// Every element survives the buffer move.
	for i := int64(0); i < 9; i++ {
		v, err := l.Get(int(i))
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if v != i {
			t.Errorf("Get(%d) = %d, want %d", i, v, i)
		}
	}
}

func TestHundredAppendsRoundTrip(t *testing.T) {
	l := NewList[int64]()
	for i := int64(0); i < 100; i++ {
		l.Append(i * i)
	}
	if l.Len() != 100 {
		t.Fatalf("len = %d, want 100", l.Len())
	}
	for i := int64(0); i < 100; i++ {
		v, _ := l.Get(int(i))
		if v != i*i {
			t.Errorf("Get(%d) = %d, want %d", i, v, i*i)
		}
	}
}

func TestIndexFaults(t *testing.T) {
	l := ListOf[int64](1, 2, 3)
	var fault *FaultError

	if _, err := l.Get(3); !errors.As(err, &fault) || fault.Kind != FaultIndex {
		t.Errorf("Get(3) = %v, want index fault", err)
	}
	if _, err := l.Get(-1); err == nil {
		t.Error("Get(-1) should fault")
	}
	if err := l.Set(3, 0); err == nil {
		t.Error("Set(3) should fault; writes never extend the list")
	}

	// A full buffer index past len still faults even though the slot
	// physically exists.
	empty := NewList[int64]()
	if _, err := empty.Get(0); err == nil {
		t.Error("Get(0) on an empty list should fault despite capacity 8")
	}
}

func TestSetDoesNotChangeLength(t *testing.T) {
	l := ListOf[int64](1, 2, 3)
	if err := l.Set(1, 42); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 3 {
		t.Errorf("len after Set = %d, want 3", l.Len())
	}
	if v, _ := l.Get(1); v != 42 {
		t.Errorf("Get(1) = %d, want 42", v)
	}
}

func TestByteArrayFollowsBufferContract(t *testing.T) {
	a := NewByteArray()
	if a.Cap() != 8 {
		t.Errorf("cap = %d, want 8", a.Cap())
	}
	for i := 0; i < 9; i++ {
		a.Append(byte(i))
	}
	if a.Cap() != 16 || a.Len() != 9 {
		t.Errorf("len/cap = %d/%d, want 9/16", a.Len(), a.Cap())
	}
	if err := a.Set(0, 255); err != nil {
		t.Errorf("Set: %v", err)
	}
}

func TestBytesAreImmutable(t *testing.T) {
	b := BytesOf([]byte("abc"))
	if b.Len() != 3 {
		t.Errorf("len = %d, want 3", b.Len())
	}
	if v, _ := b.Get(1); v != 'b' {
		t.Errorf("Get(1) = %c, want b", v)
	}

	var fault *FaultError
	err := b.Set(0, 'x')
	if !errors.As(err, &fault) || fault.Kind != FaultImmutable {
		t.Errorf("Set on bytes = %v, want immutable fault", err)
	}

	joined := b.Concat(BytesOf([]byte("def")))
	if joined.Len() != 6 {
		t.Errorf("concat len = %d, want 6", joined.Len())
	}
	if b.Len() != 3 {
		t.Error("concat must not mutate the receiver")
	}
}

func TestStrCodepointLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"ascii", "hello", 5},
		{"empty", "", 0},
		{"accented", "café", 4},
		{"cjk", "日本語", 3},
		// Family emoji: four person codepoints joined by three ZWJs.
		{"family emoji", "\U0001F468\u200D\U0001F469\u200D\U0001F467\u200D\U0001F466", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StrOf(tt.input).Len(); got != tt.want {
				t.Errorf("Len(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestStrIndexAddressesCodepoints(t *testing.T) {
	s := StrOf("a日b")
	if r, _ := s.Index(0); r != 'a' {
		t.Errorf("Index(0) = %c, want a", r)
	}
	if r, _ := s.Index(1); r != '日' {
		t.Errorf("Index(1) = %c, want 日", r)
	}
	if r, _ := s.Index(2); r != 'b' {
		t.Errorf("Index(2) = %c, want b", r)
	}
	if _, err := s.Index(3); err == nil {
		t.Error("Index(3) should fault; length is 3 codepoints, not 5 bytes")
	}

	ascii := StrOf("xyz")
	if r, _ := ascii.Index(2); r != 'z' {
		t.Errorf("ascii Index(2) = %c, want z", r)
	}
}

func TestStrConcatAddsLengths(t *testing.T) {
	a, b := StrOf("ab"), StrOf("日本")
	joined := a.Concat(b)
	if joined.Len() != 4 {
		t.Errorf("concat len = %d, want 4", joined.Len())
	}
	if r, _ := joined.Index(2); r != '日' {
		t.Errorf("Index(2) = %c, want 日", r)
	}
	if joined.String() != "ab日本" {
		t.Errorf("String() = %q", joined.String())
	}
}

func TestRangeStepZeroFaults(t *testing.T) {
	var fault *FaultError
	if _, err := NewRange(0, 10, 0); !errors.As(err, &fault) || fault.Kind != FaultStep {
		t.Errorf("step 0 = %v, want step fault", err)
	}
}

func TestRangeLenAndAt(t *testing.T) {
	tests := []struct {
		start, stop, step int64
		want              int64
	}{
		{0, 10, 1, 10},
		{0, 10, 3, 4},
		{10, 0, -2, 5},
		{5, 5, 1, 0},
		{0, 10, -1, 0},
	}
	for _, tt := range tests {
		r, err := NewRange(tt.start, tt.stop, tt.step)
		if err != nil {
			t.Fatalf("NewRange(%d,%d,%d): %v", tt.start, tt.stop, tt.step, err)
		}
		if got := r.Len(); got != tt.want {
			t.Errorf("range(%d,%d,%d) len = %d, want %d", tt.start, tt.stop, tt.step, got, tt.want)
		}
	}

	r, _ := NewRange(10, 0, -2)
	if v, _ := r.At(2); v != 6 {
		t.Errorf("At(2) = %d, want 6", v)
	}
	if _, err := r.At(5); err == nil {
		t.Error("At(5) should fault")
	}
}
