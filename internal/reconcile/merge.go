package reconcile

import (
	"encoding/json"
	"fmt"
)

// The merge policy reconciles a stored value with an incoming one. Later,
// partial updates (a correction email carrying only two fields) must never
// null out fields learned from an earlier, more complete source; but a fresh
// list (e.g. new flight segments) must not be interleaved element-by-element
// with a stale one.
//
// Values are JSON-shaped: nil, bool, float64, string, []any, map[string]any.

// HasValue reports whether v counts as present for merging. Nil and the empty
// string do not; zero and false do.
func HasValue(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// MergeValues merges an incoming JSON-shaped value over an old one.
//   - absent incoming keeps old
//   - primitive or array incoming replaces old wholesale
//   - record incoming over a record old merges recursively, keeping old-only
//     keys; over anything else it replaces
func MergeValues(old, incoming any) any {
	if !HasValue(incoming) {
		return old
	}
	incomingMap, ok := incoming.(map[string]any)
	if !ok {
		return incoming
	}
	oldMap, ok := old.(map[string]any)
	if !ok {
		return incoming
	}
	return MergeDocuments(oldMap, incomingMap)
}

// MergeDocuments merges two record documents per MergeValues, returning a new
// map. Neither input is mutated.
func MergeDocuments(old, incoming map[string]any) map[string]any {
	merged := make(map[string]any, len(old)+len(incoming))
	for k, v := range old {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = MergeValues(old[k], v)
	}
	return merged
}

// ToDocument converts a typed value to its JSON document form so the generic
// merge policy can be applied to it.
func ToDocument(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}

// FromDocument decodes a JSON document back into a typed value.
func FromDocument(doc map[string]any, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// MergeInto applies the merge policy to a typed old value and an incoming
// document, decoding the result into out.
func MergeInto(old any, incoming map[string]any, out any) error {
	oldDoc, err := ToDocument(old)
	if err != nil {
		return err
	}
	return FromDocument(MergeDocuments(oldDoc, incoming), out)
}
