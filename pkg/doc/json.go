package doc

import "encoding/json"

type nodeJSON struct {
	*nodeAlias
	Children []*Node `json:"children,omitempty"`
}

type nodeAlias Node

// MarshalJSON includes the children, which are unexported to keep parent
// links consistent.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{nodeAlias: (*nodeAlias)(n), Children: n.children})
}

// UnmarshalJSON decodes a node and re-links its children.
func (n *Node) UnmarshalJSON(data []byte) error {
	aux := nodeJSON{nodeAlias: (*nodeAlias)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	n.children = nil
	for _, c := range aux.Children {
		if c == nil {
			continue
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return nil
}

type pageAlias Page

// UnmarshalJSON decodes a page and records it as the owner of its nodes.
func (p *Page) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*pageAlias)(p)); err != nil {
		return err
	}
	nodes := p.Nodes
	p.Nodes = nil
	for _, n := range nodes {
		if n == nil {
			continue
		}
		n.page = p
		p.Nodes = append(p.Nodes, n)
	}
	return nil
}
