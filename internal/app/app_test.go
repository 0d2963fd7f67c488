package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/bbpcalc/internal/errors"
)

func TestNew_ParsesConfig(t *testing.T) {
	a, err := New([]string{"-p", "5", "-q"}, io.Discard)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Config.Position != 5 || !a.Config.Quiet {
		t.Errorf("unexpected config: %+v", a.Config)
	}
}

func TestNew_Help(t *testing.T) {
	var buf bytes.Buffer
	_, err := New([]string{"-h"}, &buf)
	if !IsHelpError(err) {
		t.Fatalf("expected help error, got %v", err)
	}
	if ExitCodeForError(err) != apperrors.ExitSuccess {
		t.Error("help must map to a success exit code")
	}
	if !strings.Contains(buf.String(), "Usage:") {
		t.Error("help output missing usage text")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New([]string{"-engine", "quantum"}, io.Discard)
	if err == nil {
		t.Fatal("expected config error")
	}
	if ExitCodeForError(err) != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want config error", ExitCodeForError(err))
	}
}

func TestRun_QuietSingleEngine(t *testing.T) {
	a, err := New([]string{"-p", "1", "-q", "-w", "2", "-chunk-size", "8"}, io.Discard)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("Run exit code = %d", code)
	}
	if got := strings.TrimSpace(out.String()); got != "243F6A888" {
		t.Errorf("quiet output = %q, want digits only", got)
	}
}

func TestRun_QuietAllEngines(t *testing.T) {
	a, err := New([]string{"-p", "2", "-engine", "all", "-q",
		"-w", "2", "-chunk-size", "8", "-grid-blocks", "2", "-grid-lanes", "2", "-grid-chunk-size", "4"},
		io.Discard)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("Run exit code = %d", code)
	}
	if got := strings.TrimSpace(out.String()); got != "43F6A8885" {
		t.Errorf("quiet output = %q, want digits only", got)
	}
}

func TestRun_StandardOutput(t *testing.T) {
	a, err := New([]string{"-p", "1", "-w", "2", "-chunk-size", "8", "-no-color"}, io.Discard)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("Run exit code = %d", code)
	}
	for _, want := range []string{"Execution Configuration", "243F6A888", "position 1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_WritesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digits.txt")
	a, err := New([]string{"-p", "1", "-q", "-w", "2", "-chunk-size", "8", "-o", path}, io.Discard)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitSuccess {
		t.Fatalf("Run exit code = %d", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if !strings.Contains(string(data), "243F6A888") {
		t.Errorf("output file missing digits: %s", data)
	}
}

func TestHasVersionFlag(t *testing.T) {
	if !HasVersionFlag([]string{"-p", "1", "--version"}) {
		t.Error("--version not detected")
	}
	if HasVersionFlag([]string{"-p", "1"}) {
		t.Error("false positive version detection")
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.Contains(buf.String(), "bbpcalc") {
		t.Errorf("version banner = %q", buf.String())
	}
}
