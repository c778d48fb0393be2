package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// KnownKeys holds the dedup keys of a source's already stored entries
type KnownKeys struct {
	GUIDs  map[string]struct{}
	Hashes map[string]struct{}
}

// NewKnownKeys creates an empty key set
func NewKnownKeys() KnownKeys {
	return KnownKeys{
		GUIDs:  make(map[string]struct{}),
		Hashes: make(map[string]struct{}),
	}
}

// ContentHash computes the stable dedup fingerprint of an entry from its
// normalized title and body. The hash is the fallback identity for feeds
// that omit or reuse guids.
func ContentHash(title, body string) string {
	h := sha256.Sum256([]byte(normalizeText(title) + "\n" + normalizeText(body)))
	return hex.EncodeToString(h[:])
}

// normalizeText lowercases and collapses whitespace so that cosmetic
// re-formatting of an entry does not change its fingerprint
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// SelectNew returns the subset of items not yet known, preserving feed
// order. An item is a duplicate when its guid matches a known guid (both
// present) or its content hash matches a known hash. Repeats within the
// batch itself are suppressed the same way.
func SelectNew(items []Item, known KnownKeys) []Item {
	seen := KnownKeys{
		GUIDs:  make(map[string]struct{}, len(known.GUIDs)+len(items)),
		Hashes: make(map[string]struct{}, len(known.Hashes)+len(items)),
	}
	for g := range known.GUIDs {
		seen.GUIDs[g] = struct{}{}
	}
	for h := range known.Hashes {
		seen.Hashes[h] = struct{}{}
	}

	fresh := make([]Item, 0, len(items))
	for _, item := range items {
		hash := ContentHash(item.Title, item.Body)

		if item.GUID != "" {
			if _, ok := seen.GUIDs[item.GUID]; ok {
				continue
			}
		}
		if _, ok := seen.Hashes[hash]; ok {
			continue
		}

		if item.GUID != "" {
			seen.GUIDs[item.GUID] = struct{}{}
		}
		seen.Hashes[hash] = struct{}{}
		fresh = append(fresh, item)
	}
	return fresh
}
