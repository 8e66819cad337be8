package logging

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestParseFileLevel(t *testing.T) {
	cases := map[string]int{
		"0":   LevelSilent,
		"1":   LevelInfo,
		" 2 ": LevelDebug,
		"3":   LevelSilent,
		"-1":  LevelSilent,
		"abc": LevelSilent,
		"":    LevelSilent,
	}
	for in, want := range cases {
		if got := ParseFileLevel(in); got != want {
			t.Fatalf("ParseFileLevel(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestNewFileLogger_SilentOrNoPath_IsNoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "silent.log")

	l, closeFn, err := NewFileLogger(path, LevelSilent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Info("hello")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file for silent level, stat err=%v", err)
	}

	l, closeFn, err = NewFileLogger("  ", LevelDebug)
	if err != nil || l == nil || closeFn == nil {
		t.Fatalf("expected noop logger for empty path, err=%v", err)
	}
}

func TestNewFileLogger_InfoLevel_FiltersDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.log")

	l, closeFn, err := NewFileLogger(path, LevelInfo)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	l.Info("starting scoring")
	l.Debug("hidden detail")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(b)
	line := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] INFO: starting scoring\n$`)
	if !line.MatchString(out) {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestNewFileLogger_DebugLevel_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	for i := 0; i < 2; i++ {
		l, closeFn, err := NewFileLogger(path, LevelDebug)
		if err != nil {
			t.Fatalf("NewFileLogger: %v", err)
		}
		l.Debug("pass")
		_ = closeFn()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.Count(string(b), "DEBUG: pass"); got != 2 {
		t.Fatalf("expected 2 appended debug lines, got %d in %q", got, string(b))
	}
}
