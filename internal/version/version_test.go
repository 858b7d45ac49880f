package version

import (
	"strings"
	"testing"
)

func TestLdflagsVersionWins(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	if got := Get(); got != "v1.2.3" {
		t.Errorf("Get() = %q", got)
	}
	if got := String("tonekit"); got != "tonekit version v1.2.3" {
		t.Errorf("String() = %q", got)
	}
	info := GetInfo("tonekit")
	if info.Name != "tonekit" || info.Version != "v1.2.3" || !strings.Contains(info.GoVersion, "go") {
		t.Errorf("GetInfo() = %+v", info)
	}
}

func TestGetWithoutLdflags(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = ""
	if Get() == "" {
		t.Error("Get() should never be empty")
	}
}
