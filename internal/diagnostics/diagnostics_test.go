package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pystatic/pystatic/internal/token"
)

func TestCollectorBatchesAndDeduplicates(t *testing.T) {
	col := NewCollector(false)
	col.Add(Newf(ErrT001, token.At(3, 7), "first"))
	col.Add(Newf(ErrT001, token.At(3, 7), "re-walked loop body, same site"))
	col.Add(Newf(ErrT004, token.At(3, 7), "different code, same site"))
	col.Add(Newf(ErrT001, token.At(9, 1), "different site"))

	if col.Len() != 3 {
		t.Errorf("collected %d, want 3 (one duplicate folded)", col.Len())
	}
	if col.Aborted() {
		t.Error("batch mode never aborts")
	}
}

func TestCollectorFailFast(t *testing.T) {
	col := NewCollector(true)
	if ok := col.Add(Newf(ErrC001, token.At(1, 1), "first")); ok {
		t.Error("fail-fast Add should signal abort on the first error")
	}
	col.Add(Newf(ErrC002, token.At(2, 1), "second"))

	if col.Len() != 1 {
		t.Errorf("fail-fast collected %d, want 1", col.Len())
	}
	if !col.Aborted() {
		t.Error("collector should be aborted")
	}
}

func TestErrorFormatting(t *testing.T) {
	err := Newf(ErrC006, token.At(4, 12), "class 'Point' has no member 'z'")
	err.File = "main.py"
	want := "main.py:4:12: [C006] class 'Point' has no member 'z'"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestPrinterPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "never")
	p.Print([]*DiagnosticError{
		Newf(ErrT002, token.At(2, 5), "type t0 could not be resolved - insufficient type information"),
		Newf(ErrX003, token.At(8, 1), "bare raise is only valid inside an except block"),
	})

	out := buf.String()
	if !strings.Contains(out, "2:5: [T002]") || !strings.Contains(out, "8:1: [X003]") {
		t.Errorf("output missing locations/codes:\n%s", out)
	}
	if !strings.Contains(out, "2 errors") {
		t.Errorf("output missing error count trailer:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("color=never must not emit ANSI codes:\n%s", out)
	}
}

func TestPrinterForcedColor(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "always")
	p.Print([]*DiagnosticError{Newf(ErrC001, token.At(1, 1), "msg")})
	if !strings.Contains(buf.String(), "\x1b[31m") {
		t.Error("color=always should emit ANSI codes to any writer")
	}
}
