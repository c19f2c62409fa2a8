// Package objects uploads public images to a hosted object store.
package objects

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is a hosted bucket that serves uploaded objects at a public URL.
type Store interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error
	PublicURL(objectPath string) string
}

// NewObjectPath builds "<prefix>/<unixnano>-<uuid><ext>" from the original
// filename's extension. The random suffix keeps two uploads of the same file
// apart even within one clock tick.
func NewObjectPath(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), ext)
	return path.Join(prefix, name)
}

func joinURL(base, objectPath string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(objectPath, "/")
}
