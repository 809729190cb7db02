// Package document decodes specification documents into an order-preserving tree.
//
// JSON is a subset of YAML, so both input formats are read through yaml.Node,
// which keeps mapping keys in declaration order. Object property order is
// observable in rendered tables, so plain map decoding is not an option.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"go.yaml.in/yaml/v3"
)

// Node is a read-only view over a decoded document value.
// A nil *Node represents an absent value; all accessors are nil-safe.
type Node struct {
	n *yaml.Node
}

// Entry is one key/value pair of a mapping, in declaration order.
type Entry struct {
	Key   string
	Value *Node
}

// Parse decodes a JSON or YAML document. The root must be a mapping.
func Parse(data []byte) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: document is empty", domain.ErrParse)
	}

	// Raw tabs cannot occur inside JSON strings, and the YAML scanner rejects
	// them as indentation, so JSON input is detabbed before decoding.
	if trimmed := bytes.TrimSpace(data); trimmed[0] == '{' {
		data = bytes.ReplaceAll(data, []byte{'\t'}, []byte{' '})
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	node := wrap(&root)
	if !node.IsMap() {
		return nil, fmt.Errorf("%w: document root must be an object", domain.ErrParse)
	}

	return node, nil
}

// MustParse is like Parse but panics on error. Intended for tests and fixtures.
func MustParse(data string) *Node {
	n, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return n
}

func wrap(n *yaml.Node) *Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return &Node{n: n}
		}
	}
	return nil
}

// Exists reports whether the node is present.
func (n *Node) Exists() bool {
	return n != nil && n.n != nil
}

// IsMap reports whether the node is a mapping.
func (n *Node) IsMap() bool {
	return n.Exists() && n.n.Kind == yaml.MappingNode
}

// IsSeq reports whether the node is a sequence.
func (n *Node) IsSeq() bool {
	return n.Exists() && n.n.Kind == yaml.SequenceNode
}

// IsNull reports whether the node is absent or an explicit null.
func (n *Node) IsNull() bool {
	return !n.Exists() || (n.n.Kind == yaml.ScalarNode && n.n.Tag == "!!null")
}

// IsString reports whether the node is a string scalar.
func (n *Node) IsString() bool {
	return n.Exists() && n.n.Kind == yaml.ScalarNode && n.n.Tag == "!!str"
}

// Get returns the value stored under key, or nil. When a key is repeated
// the last occurrence wins.
func (n *Node) Get(key string) *Node {
	if !n.IsMap() {
		return nil
	}
	c := n.n.Content
	for i := len(c) - 2; i >= 0; i -= 2 {
		if c[i].Value == key {
			return wrap(c[i+1])
		}
	}
	return nil
}

// Has reports whether key is present with a non-null value.
func (n *Node) Has(key string) bool {
	return !n.Get(key).IsNull()
}

// Entries returns the mapping pairs in declaration order. A repeated key
// keeps its first position and takes the value of its last occurrence.
func (n *Node) Entries() []Entry {
	if !n.IsMap() {
		return nil
	}
	c := n.n.Content
	out := make([]Entry, 0, len(c)/2)
	index := make(map[string]int, len(c)/2)
	for i := 0; i+1 < len(c); i += 2 {
		key := c[i].Value
		if at, ok := index[key]; ok {
			out[at].Value = wrap(c[i+1])
			continue
		}
		index[key] = len(out)
		out = append(out, Entry{Key: key, Value: wrap(c[i+1])})
	}
	return out
}

// Items returns the sequence elements.
func (n *Node) Items() []*Node {
	if !n.IsSeq() {
		return nil
	}
	out := make([]*Node, 0, len(n.n.Content))
	for _, c := range n.n.Content {
		out = append(out, wrap(c))
	}
	return out
}

// Str returns the scalar text when the node is a string.
func (n *Node) Str() string {
	if !n.IsString() {
		return ""
	}
	return n.n.Value
}

// Strings returns the string elements of a sequence.
func (n *Node) Strings() []string {
	items := n.Items()
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.IsString() {
			out = append(out, it.n.Value)
		}
	}
	return out
}

// Bool returns the boolean value, false when absent or not a boolean.
func (n *Node) Bool() bool {
	if !n.Exists() || n.n.Kind != yaml.ScalarNode || n.n.Tag != "!!bool" {
		return false
	}
	b, err := strconv.ParseBool(n.n.Value)
	return err == nil && b
}

// Float returns the numeric value, or nil when absent or not a number.
func (n *Node) Float() *float64 {
	if !n.Exists() || n.n.Kind != yaml.ScalarNode {
		return nil
	}
	if n.n.Tag != "!!int" && n.n.Tag != "!!float" {
		return nil
	}
	f, err := strconv.ParseFloat(n.n.Value, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Int returns the integer value, or nil when absent or not an integer.
func (n *Node) Int() *int64 {
	f := n.Float()
	if f == nil {
		return nil
	}
	i := int64(*f)
	return &i
}

// Value decodes the node into a plain Go value (string, bool, int, float64,
// []any, map[string]any or nil).
func (n *Node) Value() any {
	if !n.Exists() {
		return nil
	}
	var v any
	if err := n.n.Decode(&v); err != nil {
		return n.n.Value
	}
	return v
}

// Line returns the 1-based source line of the node, 0 when unknown.
func (n *Node) Line() int {
	if !n.Exists() {
		return 0
	}
	return n.n.Line
}

// ErrNotLocal is returned by Resolve for references outside the document.
var ErrNotLocal = errors.New("reference is not local to the document")

// Resolve follows a local JSON pointer ("#/a/b") from the document root.
func (n *Node) Resolve(ref string) (*Node, error) {
	if len(ref) < 2 || ref[0] != '#' || ref[1] != '/' {
		return nil, ErrNotLocal
	}
	cur := n
	for _, token := range splitPointer(ref[2:]) {
		next := cur.Get(token)
		if next == nil {
			return nil, fmt.Errorf("reference %q: segment %q not found", ref, token)
		}
		cur = next
	}
	return cur, nil
}

func splitPointer(p string) []string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = unescapeToken(part)
	}
	return parts
}

func unescapeToken(t string) string {
	return strings.ReplaceAll(strings.ReplaceAll(t, "~1", "/"), "~0", "~")
}

// Interface converts the subtree into plain Go values with string keys, so
// it can be re-encoded as JSON.
func (n *Node) Interface() any {
	switch {
	case !n.Exists() || n.IsNull():
		return nil
	case n.IsMap():
		m := make(map[string]any, len(n.n.Content)/2)
		for _, e := range n.Entries() {
			m[e.Key] = e.Value.Interface()
		}
		return m
	case n.IsSeq():
		items := n.Items()
		s := make([]any, 0, len(items))
		for _, it := range items {
			s = append(s, it.Interface())
		}
		return s
	default:
		return n.Value()
	}
}

// MarshalJSON encodes the subtree as JSON.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Interface())
}
