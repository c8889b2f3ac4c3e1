package objectstore

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Store persiste blobs (fotos de toma) y devuelve una URL recuperable.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Key arma la key con la convención {category}/{subjectId}/{timestamp}.{ext}.
// timestamp en milisegundos unix.
func Key(category, subjectID string, at time.Time, ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s/%d.%s", strings.Trim(category, "/"), subjectID, at.UnixMilli(), ext)
}

// ExtForContentType mapea los content types de imagen que aceptamos.
func ExtForContentType(ct string) string {
	switch strings.ToLower(strings.TrimSpace(ct)) {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/heic":
		return "heic"
	default:
		return "jpg"
	}
}
