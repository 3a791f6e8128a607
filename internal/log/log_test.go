package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pohcalc.log")
	if err := InitWithFile(true, FileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 1}); err != nil {
		t.Fatalf("InitWithFile: %v", err)
	}

	Debugw("running command", "command", "takeoff")
	Named("takeoff").Debugw("ground roll", "feet", 860.0)
	Errorf("takeoff: %s", "out of range")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d log lines, expected 3:\n%s", len(lines), data)
	}

	tests := []struct {
		line int
		want []string
	}{
		{0, []string{"running command", `"command":"takeoff"`}},
		{1, []string{"ground roll", `"takeoff"`, `"feet":860`}},
		{2, []string{"takeoff: out of range", "ERROR"}},
	}
	for _, tt := range tests {
		for _, w := range tt.want {
			if !strings.Contains(lines[tt.line], w) {
				t.Errorf("line %d = %s, expected it to contain %s", tt.line, lines[tt.line], w)
			}
		}
	}
}

func TestInitWithFileEmptyPath(t *testing.T) {
	if err := InitWithFile(false, FileConfig{}); err != nil {
		t.Fatalf("InitWithFile: %v", err)
	}
	if GetZapLogger() == nil || GetSugaredLogger() == nil {
		t.Error("expected a stderr logger")
	}
}
