package catalog

import (
	"embed"
	"encoding/json"
	"sync"
)

//go:embed palettes/*.json
var embeddedPalettes embed.FS

var (
	builtinOnce sync.Once
	builtin     *Static
)

// Builtin returns the palettes shipped with tonekit. Files under palettes/
// are read in name order and each holds a JSON array of entries.
func Builtin() *Static {
	builtinOnce.Do(func() {
		var all []Entry
		files, err := embeddedPalettes.ReadDir("palettes")
		if err == nil {
			for _, f := range files {
				data, err := embeddedPalettes.ReadFile("palettes/" + f.Name())
				if err != nil {
					continue
				}
				var entries []Entry
				if err := json.Unmarshal(data, &entries); err != nil {
					continue
				}
				all = append(all, entries...)
			}
		}
		builtin = NewStatic(all)
	})
	return builtin
}
