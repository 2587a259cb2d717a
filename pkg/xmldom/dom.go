// Package xmldom parses XML into a compact, read-only node arena.
//
// Every node, including text, comments and processing instructions, keeps
// its document position, so the tree can be walked as xmlext.Node values.
package xmldom

import (
	"strings"

	"github.com/jacoelho/xmlext"
)

// NodeID identifies a node in the document arena.
type NodeID int

// InvalidNode represents an invalid node reference.
const InvalidNode NodeID = -1

// Document is a compact arena for parsed XML.
type Document struct {
	nodes    []node
	attrs    []xmlext.Attr
	children []NodeID
	root     NodeID
}

type node struct {
	kind        xmlext.NodeKind
	namespace   string
	local       string
	text        []byte
	attrsOff    int
	attrsLen    int
	childrenOff int
	childrenLen int
	parent      NodeID
}

func (d *Document) validNode(id NodeID) bool {
	return d != nil && id >= 0 && int(id) < len(d.nodes)
}

// DocumentElement returns the root element id.
func (d *Document) DocumentElement() NodeID {
	if d == nil {
		return InvalidNode
	}
	return d.root
}

// Root returns the root element as a Node.
func (d *Document) Root() Node {
	return Node{doc: d, id: d.DocumentElement()}
}

// Node returns the node view for id.
func (d *Document) Node(id NodeID) Node {
	return Node{doc: d, id: id}
}

// Len reports the number of nodes in the arena.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.nodes)
}

// Kind returns the node kind of id. Invalid ids report KindText so they
// never pass for an element.
func (d *Document) Kind(id NodeID) xmlext.NodeKind {
	if !d.validNode(id) {
		return xmlext.KindText
	}
	return d.nodes[id].kind
}

// Parent returns the parent of id, or InvalidNode for the root.
func (d *Document) Parent(id NodeID) NodeID {
	if !d.validNode(id) {
		return InvalidNode
	}
	return d.nodes[id].parent
}

// NamespaceURI returns the namespace URI of an element.
func (d *Document) NamespaceURI(id NodeID) string {
	if !d.validNode(id) || d.nodes[id].kind != xmlext.KindElement {
		return ""
	}
	return d.nodes[id].namespace
}

// LocalName returns the local name of an element.
func (d *Document) LocalName(id NodeID) string {
	if !d.validNode(id) || d.nodes[id].kind != xmlext.KindElement {
		return ""
	}
	return d.nodes[id].local
}

// Target returns the target of a processing instruction.
func (d *Document) Target(id NodeID) string {
	if !d.validNode(id) || d.nodes[id].kind != xmlext.KindProcInst {
		return ""
	}
	return d.nodes[id].local
}

// Attributes returns a read-only view of the element attributes,
// namespace declarations included.
// The returned slice aliases the document arena; do not modify or retain it.
func (d *Document) Attributes(id NodeID) []xmlext.Attr {
	if !d.validNode(id) {
		return nil
	}
	n := d.nodes[id]
	if n.attrsLen == 0 {
		return nil
	}
	return d.attrs[n.attrsOff : n.attrsOff+n.attrsLen]
}

// Children returns a read-only view of the child ids in document order.
// The returned slice aliases the document arena; do not modify or retain it.
func (d *Document) Children(id NodeID) []NodeID {
	if !d.validNode(id) {
		return nil
	}
	n := d.nodes[id]
	if n.childrenLen == 0 {
		return nil
	}
	return d.children[n.childrenOff : n.childrenOff+n.childrenLen]
}

// DirectText returns the character data directly under an element, or the
// content of a text, comment or processing instruction node.
func (d *Document) DirectText(id NodeID) string {
	if !d.validNode(id) {
		return ""
	}
	return string(d.nodes[id].text)
}

// TextContent returns the concatenated character data of the subtree.
func (d *Document) TextContent(id NodeID) string {
	if !d.validNode(id) {
		return ""
	}
	var sb strings.Builder
	d.collectText(id, &sb)
	return sb.String()
}

func (d *Document) collectText(id NodeID, sb *strings.Builder) {
	n := d.nodes[id]
	switch n.kind {
	case xmlext.KindText:
		_, _ = sb.Write(n.text)
	case xmlext.KindElement:
		for _, child := range d.Children(id) {
			d.collectText(child, sb)
		}
	}
}

// GetAttributeNS returns the value of the attribute ns:local.
func (d *Document) GetAttributeNS(id NodeID, ns, local string) (string, bool) {
	for _, a := range d.Attributes(id) {
		if a.Namespace == ns && a.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (d *Document) addNode(kind xmlext.NodeKind, ns, local string, attrs []xmlext.Attr, parent NodeID) NodeID {
	id := NodeID(len(d.nodes))
	n := node{
		kind:      kind,
		namespace: ns,
		local:     local,
		parent:    parent,
		attrsOff:  len(d.attrs),
		attrsLen:  len(attrs),
	}
	d.attrs = append(d.attrs, attrs...)
	d.nodes = append(d.nodes, n)
	return id
}

// buildChildren lays out the child lists from the parent links.
// Nodes are appended in document order, so each list keeps that order.
func (d *Document) buildChildren() {
	counts := make([]int, len(d.nodes))
	for _, n := range d.nodes {
		if n.parent != InvalidNode {
			counts[n.parent]++
		}
	}

	total := 0
	for i, count := range counts {
		d.nodes[i].childrenOff = total
		d.nodes[i].childrenLen = count
		counts[i] = total
		total += count
	}

	d.children = make([]NodeID, total)
	for i, n := range d.nodes {
		if n.parent == InvalidNode {
			continue
		}
		d.children[counts[n.parent]] = NodeID(i)
		counts[n.parent]++
	}
}
