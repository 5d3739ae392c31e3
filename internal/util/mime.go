package util

import (
	"mime"
	"path/filepath"
	"strings"
)

// DetectMimeType : определяет MIME type загружаемого файла
// Берёт Content-Type из multipart-заголовка, иначе по расширению
func DetectMimeType(headerContentType, filename string) string {
	if headerContentType != "" && headerContentType != "application/octet-stream" {
		return headerContentType
	}

	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}

	return "application/octet-stream"
}

// IsStreamableMime : audio и video отдаются потоком, остальное через base64
func IsStreamableMime(mimeType string) bool {
	return strings.HasPrefix(mimeType, "audio/") || strings.HasPrefix(mimeType, "video/")
}
