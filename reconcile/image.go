// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"path"
	"strings"
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// AllowedImage reports whether an upload passes the client-side type gate.
// Only JPEG, PNG, and WEBP are accepted; a recognized MIME type or a
// recognized extension suffices on its own, since phone cameras and file
// pickers are inconsistent about which they set.
func AllowedImage(filename, mimeType string) bool {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if allowedMIME[mt] {
		return true
	}
	return allowedExt[strings.ToLower(path.Ext(filename))]
}
