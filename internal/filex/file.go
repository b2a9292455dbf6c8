// Package filex contains small file helpers for the upload path:
// filename sanitization, MIME detection, and bounded reads.
package filex

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeFileName strips every character outside [A-Za-z0-9.-] so the
// result is safe to use inside an object-store key. An empty result falls
// back to "file".
func SanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

// DetectMime resolves a content type for the given filename and payload.
// The file extension wins when registered; otherwise the payload is sniffed.
func DetectMime(name string, data []byte) string {
	if ext := filepath.Ext(name); ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
	}
	return http.DetectContentType(data)
}

// LanguageTag derives a syntax-highlighting tag from the file extension.
// Files without an extension are tagged "binary".
func LanguageTag(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "binary"
	}
	return strings.ToLower(ext)
}

// ReadFileLimited reads the file at path, refusing files larger than limit.
func ReadFileLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("file %s is too large (%d bytes, limit %d)", path, info.Size(), limit)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
