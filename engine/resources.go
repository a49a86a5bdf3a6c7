package engine

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// systemFonts are tried, in order, when no font is found in a local directory.
var systemFonts = map[string][]string{
	"windows": {`C:\Windows\Fonts\arial.ttf`, `C:\Windows\Fonts\segoeui.ttf`},
	"darwin":  {"/System/Library/Fonts/Helvetica.ttc", "/Library/Fonts/Arial.ttf"},
	"linux": {
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
	},
}

func isFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".ttc", ".otf":
		return true
	}
	return false
}

// FindFont returns the first font file, by name order, in any of dirs, then
// the first installed system font. It returns "" when none is found.
func FindFont(dirs ...string) string {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() && isFontFile(entry.Name()) {
				return filepath.Join(dir, entry.Name())
			}
		}
	}

	candidates, ok := systemFonts[runtime.GOOS]
	if !ok {
		candidates = systemFonts["linux"]
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// OutputName inserts a timestamp and suffix before the extension of base,
// e.g. results.csv -> results_trials_20240101-120000.csv.
func OutputName(base, suffix, timestamp string) string {
	ext := filepath.Ext(base)
	if ext == "" {
		ext = ".csv"
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_" + suffix + "_" + timestamp + ext
}
