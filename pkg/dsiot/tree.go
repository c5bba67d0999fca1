package dsiot

import (
	"fmt"
)

// Node is one entry of a device frame tree. A node is either a leaf
// (value + metadata) or a branch (children), never both.
type Node struct {
	Name     string    `json:"pn"`
	Value    any       `json:"pv,omitempty"`
	Metadata *Metadata `json:"md,omitempty"`
	Children []*Node   `json:"pch,omitempty"`
}

// Metadata describes how a leaf value is encoded. Min and Max are hex
// strings in the same encoding as the value itself.
type Metadata struct {
	Step int    `json:"st"`
	Min  string `json:"mi,omitempty"`
	Max  string `json:"mx,omitempty"`
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find walks path segments through children. Returns nil when any segment
// is absent.
func Find(root *Node, path ...string) *Node {
	n := root
	for _, seg := range path {
		n = n.Child(seg)
		if n == nil {
			return nil
		}
	}
	return n
}

// ExtractString returns the raw string value of a leaf. Absence is
// non-fatal.
func ExtractString(root *Node, path ...string) (string, bool) {
	leaf := Find(root, path...)
	if leaf == nil {
		return "", false
	}
	s, ok := leaf.Value.(string)
	return s, ok
}

// ExtractFloat decodes a leaf through its own metadata. A plain JSON number
// is returned as-is. Absent or malformed values are non-fatal.
func ExtractFloat(root *Node, path ...string) (float64, bool) {
	leaf := Find(root, path...)
	if leaf == nil {
		return 0, false
	}
	switch v := leaf.Value.(type) {
	case string:
		f, err := DecodeValue(v, leaf.Metadata)
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// ExtractInt is ExtractFloat truncated to an integer.
func ExtractInt(root *Node, path ...string) (int64, bool) {
	f, ok := ExtractFloat(root, path...)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// ExtractMinMax returns the decoded range of a leaf, when declared.
func ExtractMinMax(root *Node, path ...string) (min, max float64, ok bool) {
	leaf := Find(root, path...)
	if leaf == nil || leaf.Metadata == nil || leaf.Metadata.Min == "" || leaf.Metadata.Max == "" {
		return 0, 0, false
	}
	min, err := DecodeValue(leaf.Metadata.Min, leaf.Metadata)
	if err != nil {
		return 0, 0, false
	}
	max, err = DecodeValue(leaf.Metadata.Max, leaf.Metadata)
	if err != nil {
		return 0, 0, false
	}
	return min, max, true
}

// requireLeaf resolves a leaf that is about to be written. A field missing
// here means the device does not expose it in its active mode, which is an
// unrecoverable precondition for the write.
func requireLeaf(root *Node, path ...string) (*Node, error) {
	leaf := Find(root, path...)
	if leaf == nil || leaf.Value == nil {
		return nil, fmt.Errorf("%w: %v", ErrFieldAbsent, path)
	}
	return leaf, nil
}

// InjectPath builds a minimal fragment containing only the addressed leaf
// with the given raw wire value. The path must resolve in the current tree.
func InjectPath(root *Node, path []string, raw string) (*Node, error) {
	if _, err := requireLeaf(root, path...); err != nil {
		return nil, err
	}
	node := &Node{Name: path[len(path)-1], Value: raw}
	for i := len(path) - 2; i >= 0; i-- {
		node = &Node{Name: path[i], Children: []*Node{node}}
	}
	return &Node{Name: root.Name, Children: []*Node{node}}, nil
}

// MergeTrees folds src into dst: a same-named leaf is overwritten, a
// same-named branch is merged recursively, anything else is appended.
// Independent single-field fragments collapse into one request this way.
func MergeTrees(dst, src *Node) {
	if dst == nil || src == nil {
		return
	}
	for _, sc := range src.Children {
		dc := dst.Child(sc.Name)
		if dc == nil {
			dst.Children = append(dst.Children, sc)
			continue
		}
		if sc.Value != nil && len(sc.Children) == 0 {
			dc.Value = sc.Value
			continue
		}
		MergeTrees(dc, sc)
	}
}
