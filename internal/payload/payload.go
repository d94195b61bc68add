// Package payload gives typed access to the semi-structured JSON block
// embedded in otodom listing pages. The block's schema drifts between
// page revisions, so every read goes through an accessor that returns an
// explicit absent result instead of panicking on an unexpected shape.
package payload

import (
	"encoding/json"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// ScriptSelector matches the script tag carrying the embedded data block.
const ScriptSelector = `script[type="application/json"]`

// Value is one node of the decoded payload tree. The zero Value is absent.
type Value struct {
	v  interface{}
	ok bool
}

// FromDocument locates the embedded data block in a parsed page and
// decodes it. The second return value is false when the marker script
// tag is missing or does not contain valid JSON.
func FromDocument(doc *goquery.Document) (Value, bool) {
	sel := doc.Find(ScriptSelector).First()
	if sel.Length() == 0 {
		return Value{}, false
	}
	return FromJSON([]byte(sel.Text()))
}

// FromJSON decodes a raw JSON document into a Value.
func FromJSON(raw []byte) (Value, bool) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return Value{}, false
	}
	return Value{v: v, ok: true}, true
}

// HasMarker reports whether the page carries the embedded data block.
func HasMarker(doc *goquery.Document) bool {
	return doc.Find(ScriptSelector).Length() > 0
}

// Wrap builds a Value from an already decoded JSON tree. Used by tests.
func Wrap(v interface{}) Value {
	return Value{v: v, ok: v != nil}
}

// IsAbsent reports whether the node is missing or null.
func (v Value) IsAbsent() bool {
	return !v.ok || v.v == nil
}

// Exists reports whether the node is present and non-null.
func (v Value) Exists() bool {
	return !v.IsAbsent()
}

// Get descends through nested objects by key. Any missing key or
// non-object node along the path yields an absent Value.
func (v Value) Get(keys ...string) Value {
	cur := v
	for _, key := range keys {
		if cur.IsAbsent() {
			return Value{}
		}
		m, ok := cur.v.(map[string]interface{})
		if !ok {
			return Value{}
		}
		inner, ok := m[key]
		if !ok || inner == nil {
			return Value{}
		}
		cur = Value{v: inner, ok: true}
	}
	return cur
}

// Str returns the node as a string. A one-element list of strings is
// unwrapped to its element, a shape the ad payload uses interchangeably
// with plain strings.
func (v Value) Str() (string, bool) {
	if v.IsAbsent() {
		return "", false
	}
	switch t := v.v.(type) {
	case string:
		return t, true
	case []interface{}:
		if len(t) == 1 {
			if s, ok := t[0].(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

// Float returns the node as a float64, parsing numeric strings as well.
func (v Value) Float() (float64, bool) {
	if v.IsAbsent() {
		return 0, false
	}
	switch t := v.v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case []interface{}:
		if len(t) == 1 {
			return Value{v: t[0], ok: true}.Float()
		}
	}
	return 0, false
}

// Int returns the node as an int, truncating JSON numbers and parsing
// numeric strings.
func (v Value) Int() (int, bool) {
	if v.IsAbsent() {
		return 0, false
	}
	switch t := v.v.(type) {
	case float64:
		return int(t), true
	case string:
		i, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return i, true
	case []interface{}:
		if len(t) == 1 {
			return Value{v: t[0], ok: true}.Int()
		}
	}
	return 0, false
}

// StrSlice returns the node as a list of strings. Non-string elements
// make the whole node absent; an empty list is absent as well.
func (v Value) StrSlice() ([]string, bool) {
	if v.IsAbsent() {
		return nil, false
	}
	list, ok := v.v.([]interface{})
	if !ok || len(list) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
