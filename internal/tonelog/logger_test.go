package tonelog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerKeyValues(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Info("Loaded palette", "name", "Nord", "colors", 16)

	got := buf.String()
	if !strings.Contains(got, "[INFO] Loaded palette") {
		t.Errorf("missing level and message: %q", got)
	}
	if !strings.Contains(got, "name=Nord colors=16") {
		t.Errorf("missing key/values: %q", got)
	}
}

func TestLoggerDropsDebugUnlessEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written with debug off: %q", buf.String())
	}

	l.SetOutput(&buf, true)
	l.Debug("shown")
	if !strings.Contains(buf.String(), "[DEBUG] shown") {
		t.Errorf("debug line missing: %q", buf.String())
	}
}

func TestLoggerOddKeyvals(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Warn("odd", "key")
	if !strings.Contains(buf.String(), "key=<missing>") {
		t.Errorf("dangling key not reported: %q", buf.String())
	}
}

func TestZeroLoggerIsSilent(t *testing.T) {
	l := &Logger{}
	l.Error("nothing happens")
	if l.Enabled() {
		t.Error("zero logger should be disabled")
	}
	if l.Writer() == nil {
		t.Error("Writer should never be nil")
	}
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tonekit.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Log.Close()

	Log.Warn("palette index out of range", "index", 9000)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "index=9000") {
		t.Errorf("log file missing entry: %q", data)
	}
}
