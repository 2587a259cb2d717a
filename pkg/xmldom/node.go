package xmldom

import "github.com/jacoelho/xmlext"

// Node is a view of one arena node. It implements xmlext.Node.
type Node struct {
	doc *Document
	id  NodeID
}

var _ xmlext.Node = Node{}

// ID returns the arena id.
func (n Node) ID() NodeID { return n.id }

// Valid reports whether n refers to a node.
func (n Node) Valid() bool { return n.doc.validNode(n.id) }

// Parent returns the parent node view.
func (n Node) Parent() Node { return Node{doc: n.doc, id: n.doc.Parent(n.id)} }

func (n Node) Kind() xmlext.NodeKind { return n.doc.Kind(n.id) }

func (n Node) LocalName() string { return n.doc.LocalName(n.id) }

func (n Node) NamespaceURI() string { return n.doc.NamespaceURI(n.id) }

func (n Node) Text() string { return n.doc.DirectText(n.id) }

func (n Node) Attrs() []xmlext.Attr { return n.doc.Attributes(n.id) }

func (n Node) Children() []xmlext.Node {
	ids := n.doc.Children(n.id)
	if len(ids) == 0 {
		return nil
	}
	out := make([]xmlext.Node, len(ids))
	for i, id := range ids {
		out[i] = Node{doc: n.doc, id: id}
	}
	return out
}
