// json.go — AST node model and the JSON wire decoder.
//
// WIRE FORMAT
// ===========
// A program arrives as a JSON array of nodes, each node an object tagged by
// its "type":
//
//	[ { "type": "number", "value": 3 },
//	  { "type": "symbol", "value": "+" },
//	  { "type": "list",   "value": [ <node>, ... ] }, ... ]
//
// "type" determines the shape "value" must have: number → JSON number,
// symbol → JSON string, list → JSON array of nodes. Anything else — a
// missing or unrecognized "type", a "value" of the wrong shape, a top level
// that is not an array, trailing non-space bytes — is rejected here as
// BadInput, before the evaluator ever sees a node. The evaluator can
// therefore walk nodes without re-validating shapes.
//
// Decoding is staged through json.RawMessage: the tag is read first, then
// the payload is decoded against the shape the tag demands. This replaces
// the ad hoc "inspect a generic map and hope" approach with one exhaustive
// validation pass that yields a closed, compile-time-checked Node.
//
// An input that is empty or all whitespace decodes to an empty program
// (nil, nil): "no work" is not a decode failure.

package crisp

import (
	"bytes"
	"encoding/json"
	"io"
)

// ---- node model ------------------------------------------------------------

// NodeKind enumerates the three recognized AST node shapes. The zero value
// is deliberately not a valid kind, so an accidentally zero-initialized
// Node can never masquerade as a number literal.
type NodeKind int

const (
	NodeInvalid NodeKind = iota
	NodeNumber
	NodeSymbol
	NodeList
)

// Node is one element of the input tree. Exactly one payload field is
// meaningful, selected by Kind. Nodes are immutable once decoded and owned
// by the caller for the duration of one evaluation pass.
type Node struct {
	Kind NodeKind
	Num  float64 // Kind == NodeNumber
	Sym  string  // Kind == NodeSymbol
	List []Node  // Kind == NodeList
}

// Constructors, mainly for hosts and tests that build trees directly.
func NumberNode(f float64) Node   { return Node{Kind: NodeNumber, Num: f} }
func SymbolNode(name string) Node { return Node{Kind: NodeSymbol, Sym: name} }
func ListNode(items ...Node) Node { return Node{Kind: NodeList, List: items} }

// ---- wire decoding ---------------------------------------------------------

// nodeWire is the staged form of one node object. Pointers distinguish
// "absent" from "present but null/zero".
type nodeWire struct {
	Type  *string          `json:"type"`
	Value *json.RawMessage `json:"value"`
}

// DecodeProgram decodes src into a sequence of nodes, validating the whole
// tree up front. It returns (nil, nil) for empty/whitespace-only input and
// a BadInput *Error for anything malformed.
func DecodeProgram(src []byte) ([]Node, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(src))
	var raws []json.RawMessage
	if err := dec.Decode(&raws); err != nil {
		return nil, errBadInput("top level must be a JSON array of nodes: %v", err)
	}
	// Nothing but whitespace may follow the array.
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		return nil, errBadInput("unexpected data after top-level array")
	}

	nodes := make([]Node, 0, len(raws))
	for i, raw := range raws {
		n, err := decodeNode(raw)
		if err != nil {
			return nil, errBadInput("node %d: %v", i, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// DecodeNode decodes a single node object (used by the REPL, which accepts
// one expression per line).
func DecodeNode(src []byte) (Node, error) {
	n, err := decodeNode(json.RawMessage(src))
	if err != nil {
		return Node{}, errBadInput("%v", err)
	}
	return n, nil
}

func decodeNode(raw json.RawMessage) (Node, error) {
	var w nodeWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Node{}, errBadInput("node is not an object: %v", err)
	}
	if w.Type == nil {
		return Node{}, errBadInput(`node has no "type"`)
	}

	switch *w.Type {
	case "number":
		var f float64
		if err := unmarshalPayload(w.Value, &f); err != nil {
			return Node{}, errBadInput(`"number" node needs a numeric "value"`)
		}
		return NumberNode(f), nil

	case "symbol":
		var s string
		if err := unmarshalPayload(w.Value, &s); err != nil {
			return Node{}, errBadInput(`"symbol" node needs a string "value"`)
		}
		return SymbolNode(s), nil

	case "list":
		var items []json.RawMessage
		if err := unmarshalPayload(w.Value, &items); err != nil {
			return Node{}, errBadInput(`"list" node needs an array "value"`)
		}
		kids := make([]Node, 0, len(items))
		for _, item := range items {
			k, err := decodeNode(item)
			if err != nil {
				return Node{}, err
			}
			kids = append(kids, k)
		}
		return ListNode(kids...), nil

	default:
		return Node{}, errBadInput("unrecognized node type %q", *w.Type)
	}
}

func unmarshalPayload(raw *json.RawMessage, dst interface{}) error {
	if raw == nil {
		return errBadInput(`node has no "value"`)
	}
	// encoding/json accepts a literal null for any pointer-free target by
	// leaving it zero; reject it explicitly so a null payload can't slip
	// through as 0 or "".
	if bytes.Equal(bytes.TrimSpace(*raw), []byte("null")) {
		return errBadInput(`node "value" is null`)
	}
	return json.Unmarshal(*raw, dst)
}
