// Package identity resolves a canonical cross-source identity for a
// track from its external identifiers and metadata fingerprint.
package identity

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math"
	"strings"
)

// fingerprintSep separates canonical fields. The unit separator cannot
// appear in trimmed tag text, so distinct field splits never collide.
const fingerprintSep = "\x1f"

// Fingerprint derives a compact id from normalized tag fields and the
// duration rounded to whole seconds. It returns ok=false when title,
// artist or album is empty after trimming; fingerprints from partial
// metadata would collide far too easily to be useful.
//
// The result is the first 10 bytes of a SHA-256 over the canonical
// string, encoded as unpadded URL-safe base64: 14 characters, 80 bits.
func Fingerprint(title, artist, album string, durationSec float64) (string, bool) {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	album = strings.TrimSpace(album)
	if title == "" || artist == "" || album == "" {
		return "", false
	}

	canonical := strings.Join([]string{
		strings.ToLower(title),
		strings.ToLower(artist),
		strings.ToLower(album),
		fmt.Sprintf("%d", int64(math.Round(durationSec))),
	}, fingerprintSep)

	sum := sha256.Sum256([]byte(canonical))
	return base64.RawURLEncoding.EncodeToString(sum[:10]), true
}
