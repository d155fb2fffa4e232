// Package memory holds the open key/value maps threaded through a turn.
//
// Session memory and the persistent profile share this one type; only their
// lifetime differs, and that is managed by the caller. Key conventions are
// documented here but not enforced.
package memory

import "sort"

// Well-known keys written by the routing core.
const (
	KeyPreviousIntent = "previous_intent" // session
	KeyLastQuestion   = "last_question"   // session
	KeyLastAdvice     = "last_advice"     // persistent
)

// Profile categories the extractor looks for in completion output.
const (
	CategoryMood    = "mood"
	CategoryStress  = "stress"
	CategorySleep   = "sleep"
	CategoryFeeling = "feeling"
)

// Categories lists the profile categories in display order.
var Categories = []string{CategoryMood, CategoryStress, CategorySleep, CategoryFeeling}

// Map is a caller-owned string map. A nil Map reads as empty.
type Map map[string]string

// Clone returns an independent copy; never nil.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Get returns the value for key or fallback when absent.
func (m Map) Get(key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

// Apply returns a copy of m with every entry of delta written over it.
// Last write wins; m itself is not modified.
func (m Map) Apply(delta Map) Map {
	out := m.Clone()
	for k, v := range delta {
		out[k] = v
	}
	return out
}

// Keys returns the keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
