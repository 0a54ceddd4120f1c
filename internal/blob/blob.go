// Package blob builds public URLs for statically hosted assets.
package blob

import (
	"os"
	"strings"
)

// URL resolves the public URL for a blob path. The server-only
// BLOB_BASE_URL wins over NEXT_PUBLIC_BLOB_BASE_URL; with no base
// configured the path is served from the site root.
func URL(path string) string {
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return "/"
	}

	base := os.Getenv("BLOB_BASE_URL")
	if base == "" {
		base = os.Getenv("NEXT_PUBLIC_BLOB_BASE_URL")
	}
	if base == "" {
		return "/" + path
	}

	return strings.TrimRight(base, "/") + "/" + path
}
