package node

import (
	"mime"
	"strings"
)

// extensionMimeOverrides augments the standard library's extension-to-MIME
// table with essences relevant to everyday file browsing that mime.TypeByExtension
// either doesn't know on every platform or reports with parameters (e.g.
// "text/plain; charset=utf-8") that we don't want in mime_essence.
var extensionMimeOverrides = map[string]string{
	".md":   "text/markdown",
	".yml":  "application/yaml",
	".yaml": "application/yaml",
	".toml": "application/toml",
	".go":   "text/x-go",
	".rs":   "text/x-rust",
	".py":   "text/x-python",
	".sh":   "application/x-sh",
	".tar":  "application/x-tar",
	".gz":   "application/gzip",
	".zip":  "application/zip",
	".json": "application/json",
}

// mimeEssence computes the "type/subtype" essence for a file extension,
// dropping any parameters (e.g. charset) that mime.TypeByExtension may
// append. Returns "" if the extension is unknown.
func mimeEssence(extension string) string {
	if extension == "" {
		return ""
	}
	lower := strings.ToLower(extension)
	if essence, ok := extensionMimeOverrides[lower]; ok {
		return essence
	}
	t := mime.TypeByExtension(lower)
	if t == "" {
		return ""
	}
	if idx := strings.IndexByte(t, ';'); idx != -1 {
		t = strings.TrimSpace(t[:idx])
	}
	return t
}
