// Package core holds the procurement domain model shared by the stores
// and the service layer.
//
// This file implements the codec for specialty and certification tags,
// which are persisted as a single JSON text blob per vendor row.
package core

import "encoding/json"

// EncodeTags serializes a tag list to its storage form. A nil or empty
// list encodes to the empty-list token "[]", never to null, so the
// round trip through storage is exact.
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		// []string cannot fail to marshal; keep the read path honest anyway.
		return "[]"
	}
	return string(b)
}

// DecodeTags parses the stored blob back to a tag list. Malformed
// stored text must not break the read path: it decodes to an empty
// list instead of surfacing an error.
func DecodeTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}
