package repl

import (
	"bytes"
	"strings"
	"testing"

	"climb/evaluator"
	"climb/object"
)

func run(t *testing.T, input string, opts Options) string {
	t.Helper()
	var out bytes.Buffer
	if err := Start(strings.NewReader(input), &out, opts); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	return out.String()
}

func TestSessionKeepsState(t *testing.T) {
	input := `let a = 20;
fn double() { return a * 2; }
double() + 2

a
`
	got := run(t, input, Options{})
	want := ">> 20\n>> >> 42\n>> >> 20\n>> "
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestErrorsDoNotEndSession(t *testing.T) {
	input := `x + 1
let = 3;
1 / 0
let x = 5;
x + 1
`
	got := run(t, input, Options{})
	lines := strings.Split(got, PROMPT)

	wantPrefixes := []string{
		"",
		"error: 1:1: variable not initialised: x",
		"error: 1:5: unexpected token",
		"error: 1:3: division by zero",
		"5",
		"6",
	}
	if len(lines) != len(wantPrefixes)+1 {
		t.Fatalf("got %d prompts, output %q", len(lines)-1, got)
	}
	for i, want := range wantPrefixes {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], want)
		}
	}
}

func TestLocaleFormatting(t *testing.T) {
	got := run(t, "1000 * 1000 + 234567\n", Options{Locale: "en"})
	if got != ">> 1,234,567\n>> " {
		t.Errorf("output = %q", got)
	}

	got = run(t, "fn nothing() { }\nnothing()\n", Options{Locale: "en"})
	if got != ">> >> none\n>> " {
		t.Errorf("output = %q", got)
	}
}

func TestInvalidLocale(t *testing.T) {
	var out bytes.Buffer
	if err := Start(strings.NewReader("1\n"), &out, Options{Locale: "not a locale!"}); err == nil {
		t.Errorf("expected an error for an invalid locale")
	}
}

func TestEvalOptionsAreApplied(t *testing.T) {
	input := "fn f() { return f(); }\nf()\n"
	got := run(t, input, Options{EvalOptions: []evaluator.Option{evaluator.WithMaxCallDepth(5)}})
	if !strings.Contains(got, object.StackOverflow.String()) {
		t.Errorf("expected a stack overflow, got %q", got)
	}
}

func TestFormatter(t *testing.T) {
	f, err := NewFormatter("")
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Format(&object.Integer{Value: -1234567}); got != "-1234567" {
		t.Errorf("Format = %q", got)
	}

	f, err = NewFormatter("de")
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Format(&object.Integer{Value: 1234567}); got != "1.234.567" {
		t.Errorf("Format(de) = %q", got)
	}
	if got := f.Format(object.NONE); got != "none" {
		t.Errorf("Format(NONE) = %q", got)
	}
}
