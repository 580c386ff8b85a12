package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jsfmt/src/cmd/jsfmt/formatcmd"
	"jsfmt/src/internal/engine"
	"jsfmt/src/internal/logging"
)

// untouchedStdin fails the test if the command reads stdin.
type untouchedStdin struct{ t *testing.T }

func (u untouchedStdin) Read([]byte) (int, error) {
	u.t.Fatalf("stdin must not be read")
	return 0, nil
}

// Helper to run the real command and capture its streams and exit status.
func runMain(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	if args == nil {
		args = []string{}
	}
	code = run(newRootCmd(), args, strings.NewReader(stdin), &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestFormatsCodeArgument(t *testing.T) {
	code, out, errOut := runMain(t, "", `if(x)console.log("hi");`)
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "if (x)") || !strings.Contains(out, `console.log("hi");`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFormatsStdin(t *testing.T) {
	code, out, errOut := runMain(t, "const a=1")
	if code != 0 || out != "const a = 1;\n" {
		t.Fatalf("exit %d, out %q, stderr %q", code, out, errOut)
	}
}

func TestUnchangedEchoesInput(t *testing.T) {
	code, out, _ := runMain(t, "const a = 1;\n")
	if code != 0 || out != "const a = 1;\n" {
		t.Fatalf("exit %d, out %q", code, out)
	}
}

func TestEmptyStdinRoundTrips(t *testing.T) {
	code, out, errOut := runMain(t, "")
	if code != 0 || out != "" || errOut != "" {
		t.Fatalf("exit %d, out %q, stderr %q", code, out, errOut)
	}
}

func TestNilArgsReadStdin(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := run(newRootCmd(), nil, strings.NewReader("const a=1"), &out, &errBuf)
	if code != 0 || out.String() != "const a = 1;\n" {
		t.Fatalf("exit %d, out %q, stderr %q", code, out.String(), errBuf.String())
	}
}

func TestHelpExitsZero(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {"--bogus", "-h"}, {"-c", "x.json", "code", "--help"}} {
		var out, errBuf bytes.Buffer
		code := run(newRootCmd(), args, untouchedStdin{t}, &out, &errBuf)
		if code != 0 {
			t.Fatalf("%v: exit %d, stderr %q", args, code, errBuf.String())
		}
		if !strings.Contains(out.String(), "Usage:") {
			t.Fatalf("%v: no usage on stdout: %q", args, out.String())
		}
		if errBuf.Len() != 0 {
			t.Fatalf("%v: unexpected stderr %q", args, errBuf.String())
		}
	}
}

func TestMissingConfigPath(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := run(newRootCmd(), []string{"--config-file"}, untouchedStdin{t}, &out, &errBuf)
	if code != 1 {
		t.Fatalf("exit %d", code)
	}
	if errBuf.String() != "Error: --config-file requires a path argument\n" {
		t.Fatalf("stderr %q", errBuf.String())
	}
	if out.Len() != 0 {
		t.Fatalf("stdout %q", out.String())
	}
}

func TestUnknownArgumentPrintsUsage(t *testing.T) {
	code, out, errOut := runMain(t, "", "--verbose")
	if code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasPrefix(errOut, "Unknown argument: --verbose\n") || !strings.Contains(errOut, "Usage:") {
		t.Fatalf("stderr %q", errOut)
	}
	if out != "" {
		t.Fatalf("stdout %q", out)
	}
}

func TestNonexistentConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	code, _, errOut := runMain(t, "", "-c", path, "a")
	if code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(errOut, "Error loading config file '"+path+"'") || !strings.Contains(errOut, "no such file") {
		t.Fatalf("stderr %q", errOut)
	}
}

func TestConfigFileApplied(t *testing.T) {
	path := writeConfig(t, "dprint.json", `{"typescript": {"newLineKind": "crlf", "indentWidth": 2, "extra": [1,2]}}`)
	code, out, errOut := runMain(t, "", "--config-file="+path, "const a=1")
	if code != 0 || out != "const a = 1;\r\n" {
		t.Fatalf("exit %d, out %q, stderr %q", code, out, errOut)
	}
	if errOut != "" {
		t.Fatalf("skipped keys must stay silent by default, stderr %q", errOut)
	}
}

func TestDebugLogShowsSkippedKeys(t *testing.T) {
	t.Setenv(logging.EnvLevel, "debug")
	path := writeConfig(t, "dprint.json", `{"typescript": {"extra": [1,2]}}`)
	code, _, errOut := runMain(t, "", "-c", path, "const a = 1;\n")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	if !strings.Contains(errOut, "key=extra") {
		t.Fatalf("expected debug line for skipped key, stderr %q", errOut)
	}
}

func TestMalformedConfigFile(t *testing.T) {
	path := writeConfig(t, "dprint.json", `{"typescript": [`)
	code, _, errOut := runMain(t, "", "-c", path, "a")
	if code != 1 || !strings.HasPrefix(errOut, "Error loading config file '"+path+"': ") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}

func TestEngineRejectsConfig(t *testing.T) {
	path := writeConfig(t, "dprint.json", `{"typescript": {"lineWidth": "wide"}}`)
	code, out, errOut := runMain(t, "", "-c", path, "a")
	if code != 1 || out != "" {
		t.Fatalf("exit %d, out %q", code, out)
	}
	if !strings.HasPrefix(errOut, "Error formatting code: ") || !strings.Contains(errOut, "lineWidth") {
		t.Fatalf("stderr %q", errOut)
	}
}

func TestSyntaxError(t *testing.T) {
	code, out, errOut := runMain(t, "", "const = ;")
	if code != 1 || out != "" {
		t.Fatalf("exit %d, out %q", code, out)
	}
	if !strings.HasPrefix(errOut, "Error formatting code: input.js:1:") {
		t.Fatalf("stderr %q", errOut)
	}
}

func TestStubEngineOutputVerbatim(t *testing.T) {
	stub := engine.Func(func(ctx context.Context, req engine.Request) (engine.Outcome, error) {
		return engine.Formatted("<<" + req.Text + ">>"), nil
	})
	var out, errBuf bytes.Buffer
	code := run(formatcmd.New(stub), []string{"abc"}, untouchedStdin{t}, &out, &errBuf)
	if code != 0 || out.String() != "<<abc>>" {
		t.Fatalf("exit %d, out %q, stderr %q", code, out.String(), errBuf.String())
	}
}
