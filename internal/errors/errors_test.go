package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "binding error",
			code:    "C002",
			wantMsg: "Handler not found",
			wantCat: CategoryBinding,
		},
		{
			name:    "config error",
			code:    "C102",
			wantMsg: "Invalid marker prefix",
			wantCat: CategoryConfig,
		},
		{
			name:    "bridge error",
			code:    "C201",
			wantMsg: "Unknown hydration ID",
			wantCat: CategoryBridge,
		},
		{
			name:    "unknown error code",
			code:    "C999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("C002").WithDetailf("<button on-click=%q>", "save")
	want := `C002: Handler not found: <button on-click="save">`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := Newf(CategoryCLI, "missing %s", "file")
	if got := plain.Error(); got != "missing file" {
		t.Errorf("Error() = %q, want %q", got, "missing file")
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	sentinel := stderrors.New("not found")
	err := New("C002").Wrap(sentinel)

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should see the wrapped sentinel")
	}

	var ce *CompostError
	if !stderrors.As(error(err), &ce) || ce.Code != "C002" {
		t.Error("errors.As should recover the CompostError")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "C100") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("C101")
	if FromError(orig, "C100") != orig {
		t.Error("FromError should pass a CompostError through")
	}

	cause := stderrors.New("permission denied")
	wrapped := FromError(cause, "C100")
	if wrapped.Code != "C100" || wrapped.Wrapped != cause {
		t.Errorf("FromError = %+v", wrapped)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("C003").
		WithDetail(`<input on-input="value"> at form > input`).
		Wrap(stderrors.New("field value is a string"))

	out := err.Format()
	for _, want := range []string{
		"error[C003] binding: Handler is not callable\n",
		"  <input on-input=\"value\"> at form > input\n",
		"  cause: field value is a string\n",
		"  hint: Handlers must have the shape",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("colors disabled but output has escapes: %q", out)
	}
}

func TestPrinterWrapsAndIndents(t *testing.T) {
	p := Printer{Width: 20}
	err := Newf(CategoryCLI, "bad input").WithSuggestion(strings.Repeat("word ", 12))

	lines := strings.Split(strings.TrimSuffix(p.Format(err), "\n"), "\n")
	if lines[0] != "error cli: bad input" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  hint: word") {
		t.Errorf("first hint line = %q", lines[1])
	}
	for _, l := range lines[2:] {
		if !strings.HasPrefix(l, "    word") {
			t.Errorf("continuation %q should line up under the hint", l)
		}
	}

	colored := Printer{Color: true}.Format(err)
	if !strings.Contains(colored, ansiRed+ansiBold+"error"+ansiReset) {
		t.Errorf("colored header missing escapes: %q", colored)
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		err  *CompostError
		want string
	}{
		{New("C201").WithDetail("h42"), "C201 bridge: Unknown hydration ID (h42)"},
		{New("C002"), "C002 binding: Handler not found"},
		{Newf(CategoryCLI, "missing file"), "cli: missing file"},
	}
	for _, tt := range tests {
		if got := tt.err.FormatCompact(); got != tt.want {
			t.Errorf("FormatCompact() = %q, want %q", got, tt.want)
		}
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var b strings.Builder
	Fprint(&b, stderrors.New("boom"))
	if b.String() != "error: boom\n" {
		t.Errorf("plain error = %q", b.String())
	}

	b.Reset()
	Fprint(&b, New("C101"))
	if !strings.HasPrefix(b.String(), "error[C101]") {
		t.Errorf("coded error = %q", b.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q longer than 20", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should wrap to nil")
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("C001"); !ok {
		t.Error("C001 should be registered")
	}
	if _, ok := Lookup("E001"); ok {
		t.Error("E001 should not be registered")
	}
}
