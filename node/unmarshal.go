package node

import (
	"encoding/json"
	"fmt"

	"github.com/rupor-github/boxrender/style"
)

// wireNode mirrors the JSON shape of a single tree node: a "type"
// discriminator, its declared style under a "style" key, and kind-specific
// payload fields (text content or image src).
type wireNode struct {
	Type     string          `json:"type"`
	Style    style.Declared  `json:"style"`
	Children []json.RawMessage `json:"children,omitempty"`
	Text     string          `json:"text,omitempty"`
	Src      string          `json:"src,omitempty"`
}

// UnmarshalTree decodes a JSON document into a Node tree. Each object
// must carry a "type" of "container", "text" or "image"; anything else
// is rejected rather than silently defaulting, matching the resolver's
// stance that an unrecognized node kind is a caller error, not data to
// paint around.
func UnmarshalTree(data []byte) (Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode node: %w", err)
	}
	return buildNode(w)
}

func buildNode(w wireNode) (Node, error) {
	switch w.Type {
	case "container":
		children := make([]Node, 0, len(w.Children))
		for i, raw := range w.Children {
			var cw wireNode
			if err := json.Unmarshal(raw, &cw); err != nil {
				return nil, fmt.Errorf("decode child %d: %w", i, err)
			}
			child, err := buildNode(cw)
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			children = append(children, child)
		}
		c := NewContainer(children...)
		c.declared = w.Style
		return c, nil

	case "text":
		t := NewText(w.Text)
		t.declared = w.Style
		return t, nil

	case "image":
		im := NewImage(w.Src)
		im.declared = w.Style
		return im, nil

	default:
		return nil, fmt.Errorf("unrecognized node type %q", w.Type)
	}
}
