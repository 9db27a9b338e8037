package problem

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

const MediaTypePDF = "application/pdf"

var extMediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".heic": "image/heic",
	".heif": "image/heif",
	".pdf":  MediaTypePDF,
}

// IsSupported reports whether mediaType is an image or a PDF. Parameters
// such as charset are ignored.
func IsSupported(mediaType string) bool {
	mt := baseMediaType(mediaType)
	return strings.HasPrefix(mt, "image/") || mt == MediaTypePDF
}

// ResolveMediaType picks a media type for file content. The declared type
// wins when it is usable, then the data-URL hint, then the file
// extension, and finally content sniffing.
func ResolveMediaType(declared, hint, name string, data []byte) string {
	if mt := baseMediaType(declared); mt != "" && mt != "application/octet-stream" {
		return mt
	}
	if mt := baseMediaType(hint); mt != "" {
		return mt
	}
	if mt := mediaTypeByExt(name); mt != "" {
		return mt
	}
	if len(data) > 0 {
		return baseMediaType(http.DetectContentType(data))
	}
	return "application/octet-stream"
}

func mediaTypeByExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	return extMediaTypes[ext]
}

func baseMediaType(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(s)
	if err != nil {
		return strings.ToLower(s)
	}
	return mt
}
