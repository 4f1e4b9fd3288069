package platform

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
)

// Output naming
const (
	DefaultImageName   = "downloaded_image"
	OutputExtension    = ".jpg"
	maxBaseNameLen     = 100
	forbiddenNameChars = `<>:"/\|?*`
)

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// OutputFileName derives the output base name from an image URL: the last
// path segment without its extension. Query and fragment are ignored. Falls
// back to DefaultImageName when nothing usable is left.
//
//	"http://host/path/pic.png?query" -> "pic"
//	"http://host/"                   -> "downloaded_image"
//	"http://host/a/photo.final.jpeg" -> "photo.final"
func OutputFileName(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i != -1 {
		p = p[:i]
	}

	if i := strings.LastIndexAny(p, `/\`); i != -1 {
		p = p[i+1:]
	}
	if i := strings.LastIndexByte(p, '.'); i != -1 {
		p = p[:i]
	}

	name := sanitizeFileName(p)
	if name == "" {
		return DefaultImageName
	}
	if reservedNames[strings.ToUpper(name)] {
		name += "_"
	}
	return name
}

// OutputPath returns <folder>/<OutputFileName(rawURL)>.jpg
func OutputPath(folder, rawURL string) string {
	return filepath.Join(folder, OutputFileName(rawURL)+OutputExtension)
}

// sanitizeFileName drops control characters, replaces characters that are
// forbidden on common filesystems with '-', collapses repeated '-' and trims
// leading/trailing spaces, dots and dashes.
func sanitizeFileName(s string) string {
	var sb strings.Builder
	prev := rune(0)
	n := 0
	for _, r := range s {
		if n >= maxBaseNameLen {
			break
		}
		switch {
		case unicode.IsControl(r) || !unicode.IsPrint(r) && !unicode.IsSpace(r):
			continue
		case strings.ContainsRune(forbiddenNameChars, r):
			r = '-'
		}
		if r == '-' && prev == '-' {
			continue
		}
		sb.WriteRune(r)
		prev = r
		n++
	}
	return strings.Trim(sb.String(), " .-")
}
