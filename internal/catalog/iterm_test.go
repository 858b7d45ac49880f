package catalog

import (
	"strings"
	"testing"
)

const sampleIterm = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Ansi 0 Color</key>
	<dict>
		<key>Alpha Component</key>
		<real>1</real>
		<key>Blue Component</key>
		<real>0.0</real>
		<key>Color Space</key>
		<string>sRGB</string>
		<key>Green Component</key>
		<real>0.0</real>
		<key>Red Component</key>
		<real>1.0</real>
	</dict>
	<key>Background Color</key>
	<dict>
		<key>Blue Component</key>
		<real>0.0</real>
		<key>Green Component</key>
		<real>0.0</real>
		<key>Red Component</key>
		<real>0.0</real>
	</dict>
	<key>Foreground Color</key>
	<dict>
		<key>Blue Component</key>
		<real>1.0</real>
		<key>Green Component</key>
		<real>1.0</real>
		<key>Red Component</key>
		<real>1.0</real>
	</dict>
</dict>
</plist>`

func TestParseItermColors(t *testing.T) {
	colors, err := ParseItermColors(strings.NewReader(sampleIterm))
	if err != nil {
		t.Fatalf("ParseItermColors: %v", err)
	}
	if len(colors) != 3 {
		t.Fatalf("expected 3 colors, got %d", len(colors))
	}
	if got := colors["Ansi 0 Color"]; got != [3]float64{1, 0, 0} {
		t.Errorf("Ansi 0 = %v, want red", got)
	}
}

func TestImportIterm(t *testing.T) {
	colors, err := ImportIterm(strings.NewReader(sampleIterm))
	if err != nil {
		t.Fatalf("ImportIterm: %v", err)
	}
	want := []string{"#000000", "#ffffff", "#ff0000"}
	if len(colors) != len(want) {
		t.Fatalf("got %v, want %v", colors, want)
	}
	for i := range want {
		if colors[i] != want[i] {
			t.Errorf("color %d = %q, want %q", i, colors[i], want[i])
		}
	}
}

func TestImportItermRejectsGarbage(t *testing.T) {
	if _, err := ImportIterm(strings.NewReader("<plist></plist>")); err == nil {
		t.Error("expected error for plist without colors")
	}
}
