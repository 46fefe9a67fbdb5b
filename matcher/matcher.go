// Package matcher parses match fragments into a typed AST and
// evaluates them against in-memory documents. It understands the same
// operator vocabulary the fragment algebra emits, which makes it the
// semantic oracle for checking that an optimized conjunction matches
// exactly the same documents as the {$and: [...]} form it replaced.
//
// Unstructured fragments (e.g. {"age": {"$gt": 25}}) become a tree of
// field and logical nodes; evaluation walks the tree.
package matcher

import (
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/kartikbazzad/bunbase/bunmatch/internal/values"
	"github.com/kartikbazzad/bunbase/bunmatch/ops"
)

// ErrInvalidFragment reports a fragment the parser cannot represent:
// unknown operators, malformed logical lists, or a condition mixing
// operator keys with plain keys.
var ErrInvalidFragment = errors.New("matcher: invalid fragment")

// Node is one node of the parsed fragment tree.
type Node interface {
	// Matches reports whether the document satisfies this node.
	Matches(doc map[string]any) bool
}

// Parse converts a fragment into an AST. The fragment is deep-copied
// first, so later mutation of the input cannot affect the returned
// tree.
func Parse(fragment map[string]any) (Node, error) {
	return parseFragment(values.DeepCopyMap(fragment))
}

func parseFragment(m map[string]any) (Node, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	children := make([]Node, 0, len(keys))
	for _, key := range keys {
		val := m[key]
		switch {
		case key == ops.And || key == ops.Or || key == ops.Nor:
			node, err := parseLogical(key, val)
			if err != nil {
				return nil, err
			}
			children = append(children, node)
		case key == ops.Not:
			sub, ok := val.(map[string]any)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidFragment, "%s expects an object, got %T", key, val)
			}
			child, err := parseFragment(sub)
			if err != nil {
				return nil, err
			}
			children = append(children, &notNode{child: child})
		case strings.HasPrefix(key, "$"):
			return nil, errors.Wrapf(ErrInvalidFragment, "unknown top-level operator %s", key)
		default:
			node, err := parseCondition(key, val)
			if err != nil {
				return nil, err
			}
			children = append(children, node)
		}
	}
	// The empty fragment (and fragments with several keys) reduce to
	// an implicit AND; empty AND matches everything.
	return &logicalNode{op: ops.And, children: children}, nil
}

func parseLogical(op string, val any) (Node, error) {
	list, ok := val.([]any)
	if !ok || len(list) == 0 {
		return nil, errors.Wrapf(ErrInvalidFragment, "%s expects a non-empty list, got %T", op, val)
	}
	children := make([]Node, 0, len(list))
	for _, item := range list {
		sub, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidFragment, "%s elements must be objects, got %T", op, item)
		}
		node, err := parseFragment(sub)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	return &logicalNode{op: op, children: children}, nil
}

// parseCondition handles one field's condition: a literal (implicit
// $eq), or an operator map over that field.
func parseCondition(field string, val any) (Node, error) {
	m, isMap := val.(map[string]any)
	if !isMap {
		return &fieldNode{field: field, op: ops.Eq, expected: val}, nil
	}

	opKeys, plainKeys := 0, 0
	for k := range m {
		if strings.HasPrefix(k, "$") {
			opKeys++
		} else {
			plainKeys++
		}
	}
	if opKeys == 0 {
		// Plain sub-document: exact document equality.
		return &fieldNode{field: field, op: ops.Eq, expected: m}, nil
	}
	if plainKeys > 0 {
		return nil, errors.Wrapf(ErrInvalidFragment,
			"field %q mixes operators with plain keys", field)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nodes := make([]Node, 0, len(keys))
	for _, op := range keys {
		switch {
		case ops.IsComparison(op):
			nodes = append(nodes, &fieldNode{field: field, op: op, expected: m[op]})
		case op == ops.Regex:
			node, err := parseRegex(field, m[op], m[ops.Options])
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case op == ops.Options:
			// Consumed alongside $regex.
			if _, ok := m[ops.Regex]; !ok {
				return nil, errors.Wrapf(ErrInvalidFragment,
					"field %q has %s without %s", field, ops.Options, ops.Regex)
			}
		case op == ops.Not:
			child, err := parseCondition(field, m[op])
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &notNode{child: child})
		default:
			return nil, errors.Wrapf(ErrInvalidFragment,
				"unknown operator %s for field %q", op, field)
		}
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &logicalNode{op: ops.And, children: nodes}, nil
}

func parseRegex(field string, pattern, options any) (Node, error) {
	pat, ok := pattern.(string)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidFragment,
			"field %q: %s expects a string pattern, got %T", field, ops.Regex, pattern)
	}
	if opts, ok := options.(string); ok && strings.Contains(opts, "i") {
		pat = "(?i)" + pat
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidFragment, "field %q: bad regex", field)
	}
	return &regexNode{field: field, re: re}, nil
}

// fieldNode evaluates one comparison operator against one field.
type fieldNode struct {
	field    string
	op       string
	expected any
}

func (n *fieldNode) Matches(doc map[string]any) bool {
	val, exists := doc[n.field]
	if !exists {
		return false
	}
	switch n.op {
	case ops.Eq:
		return equal(val, n.expected)
	case ops.Ne:
		return !equal(val, n.expected)
	case ops.Gt:
		return values.Compare(val, n.expected) > 0
	case ops.Gte:
		return values.Compare(val, n.expected) >= 0
	case ops.Lt:
		return values.Compare(val, n.expected) < 0
	case ops.Lte:
		return values.Compare(val, n.expected) <= 0
	case ops.In:
		return inList(val, n.expected)
	case ops.Nin:
		return !inList(val, n.expected)
	}
	return false
}

// logicalNode combines child nodes with $and, $or or $nor semantics.
type logicalNode struct {
	op       string
	children []Node
}

func (n *logicalNode) Matches(doc map[string]any) bool {
	switch n.op {
	case ops.And:
		for _, child := range n.children {
			if !child.Matches(doc) {
				return false
			}
		}
		return true
	case ops.Or:
		for _, child := range n.children {
			if child.Matches(doc) {
				return true
			}
		}
		return false
	case ops.Nor:
		for _, child := range n.children {
			if child.Matches(doc) {
				return false
			}
		}
		return true
	}
	return false
}

type notNode struct {
	child Node
}

func (n *notNode) Matches(doc map[string]any) bool {
	return !n.child.Matches(doc)
}

type regexNode struct {
	field string
	re    *regexp.Regexp
}

func (n *regexNode) Matches(doc map[string]any) bool {
	s, ok := doc[n.field].(string)
	return ok && n.re.MatchString(s)
}

// equal compares scalars with numeric widening; composite values fall
// back to structural equality.
func equal(a, b any) bool {
	if isComposite(a) || isComposite(b) {
		return reflect.DeepEqual(a, b)
	}
	return values.Equal(a, b)
}

func inList(val, expected any) bool {
	list, ok := expected.([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		if equal(val, item) {
			return true
		}
	}
	return false
}

func isComposite(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}
