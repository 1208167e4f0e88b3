package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunFile(t *testing.T) {
	path := writeFile(t, "prog.climb", `
// 2 ^ 3 ^ 2 は右結合
let base = 2;
fn power() { return base ^ 3 ^ 2; }
fn main() { return power() - 12; }
`)
	code, out, errOut := runCLI(t, "", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if out != "Final result: 500\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestRunFileErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"fn main() {\n  return 1 / 0;\n}", ":2:12: division by zero"},
		{"let x = ;", ":1:9: invalid atom"},
		{"fn helper() { return 1; }", "main not defined"},
	}

	for _, tt := range tests {
		path := writeFile(t, "bad.climb", tt.src)
		code, _, errOut := runCLI(t, "", path)
		if code != 1 {
			t.Errorf("%q: exit code = %d, want 1", tt.src, code)
		}
		if !strings.Contains(errOut, tt.want) {
			t.Errorf("%q: stderr = %q, want it to contain %q", tt.src, errOut, tt.want)
		}
	}

	code, _, errOut := runCLI(t, "", filepath.Join(t.TempDir(), "missing.climb"))
	if code != 1 || !strings.HasPrefix(errOut, "error: ") {
		t.Errorf("missing file: code=%d stderr=%q", code, errOut)
	}
}

func TestCheckFlag(t *testing.T) {
	path := writeFile(t, "check.climb", "fn main() { return loop() + nope(); }\nfn loop() { return loop(); }")
	code, out, _ := runCLI(t, "", "-check", path)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out, "recursive: [loop]") {
		t.Errorf("missing recursion report: %q", out)
	}
	if !strings.Contains(out, ":1:29: call to undefined function nope from main") {
		t.Errorf("missing undefined report: %q", out)
	}

	clean := writeFile(t, "clean.climb", "fn main() { return 1; }")
	if code, out, _ := runCLI(t, "", "-check", clean); code != 0 || out != "" {
		t.Errorf("clean program: code=%d out=%q", code, out)
	}
}

func TestASTFlag(t *testing.T) {
	path := writeFile(t, "ast.climb", "fn main() { return 1 + 2; }")
	code, out, _ := runCLI(t, "", "-ast", path)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "FunctionDeclaration") || strings.Contains(out, "Final result") {
		t.Errorf("unexpected -ast output: %q", out)
	}
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "climb.yaml", "max_call_depth: 10\nlocale: en\n")
	deep := writeFile(t, "deep.climb", "fn f() { return f(); }\nfn main() { return f(); }")
	code, _, errOut := runCLI(t, "", "-config", cfg, deep)
	if code != 1 || !strings.Contains(errOut, "stack overflow") {
		t.Errorf("code=%d stderr=%q", code, errOut)
	}

	big := writeFile(t, "big.climb", "fn main() { return 1000 * 1000; }")
	code, out, _ := runCLI(t, "", "-config", cfg, big)
	if code != 0 || out != "Final result: 1,000,000\n" {
		t.Errorf("code=%d stdout=%q", code, out)
	}

	bad := writeFile(t, "bad.yaml", "no_such_key: 1\n")
	if code, _, _ := runCLI(t, "", "-config", bad, big); code != 1 {
		t.Errorf("bad config: exit code = %d, want 1", code)
	}
}

func TestREPLWhenNoFiles(t *testing.T) {
	code, out, _ := runCLI(t, "1 + 2 * 3\n")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if out != ">> 7\n>> " {
		t.Errorf("stdout = %q", out)
	}
}
