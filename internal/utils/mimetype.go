package utils

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// sniffLen is how much content http.DetectContentType looks at
const sniffLen = 512

// commonTypes covers extensions the system mime table often lacks
var commonTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".go":   "text/x-go",
	".py":   "text/x-python",
	".rs":   "text/x-rust",
	".toml": "application/toml",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".json": "application/json",
	".xml":  "application/xml",
	".zip":  "application/zip",
	".tar":  "application/x-tar",
	".gz":   "application/gzip",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
}

// DetectContentType detects the MIME type of a file from its extension,
// falling back to sniffing the first bytes of reader when it is not nil
func DetectContentType(filePath string, reader io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType, nil
	}

	if contentType, ok := commonTypes[ext]; ok {
		return contentType, nil
	}

	if reader != nil {
		buffer := make([]byte, sniffLen)
		n, err := io.ReadFull(reader, buffer)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return "", err
		}

		contentType := http.DetectContentType(buffer[:n])
		if contentType != "application/octet-stream" {
			return contentType, nil
		}
	}

	return "application/octet-stream", nil
}

// IsImageType checks if the content type represents an image
func IsImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// LooksBinary reports whether sample is unlikely to be readable text
func LooksBinary(sample []byte) bool {
	if len(sample) > sniffLen {
		sample = sample[:sniffLen]
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	if utf8.Valid(sample) {
		return false
	}
	// the sample may end in the middle of a multi-byte rune
	for cut := 1; cut < utf8.UTFMax && cut < len(sample); cut++ {
		if utf8.Valid(sample[:len(sample)-cut]) {
			return false
		}
	}
	return true
}

// GetFileCategory returns a general category for the content type
func GetFileCategory(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	case strings.HasPrefix(contentType, "audio/"):
		return "audio"
	case strings.HasPrefix(contentType, "text/x-"):
		return "code"
	case strings.HasPrefix(contentType, "text/"):
		return "text"
	case strings.Contains(contentType, "json") || strings.Contains(contentType, "yaml") ||
		strings.Contains(contentType, "toml") || strings.Contains(contentType, "xml"):
		return "data"
	case strings.Contains(contentType, "pdf"):
		return "document"
	case strings.Contains(contentType, "zip") || strings.Contains(contentType, "tar") || strings.Contains(contentType, "gzip"):
		return "archive"
	default:
		return "other"
	}
}
