// Package treenode adapts aqwari.net/xml/xmltree elements to xmlext.Node.
//
// xmltree keeps only element children, so every Node produced here reports
// KindElement. Text is decoded from the raw element content on demand.
package treenode

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"aqwari.net/xml/xmltree"

	"github.com/jacoelho/xmlext"
)

// Node wraps an xmltree element.
type Node struct {
	el *xmltree.Element
}

var _ xmlext.Node = Node{}

// Wrap returns a Node for el. A nil el yields a Node with no name and no
// children.
func Wrap(el *xmltree.Element) Node {
	return Node{el: el}
}

// Parse parses data with xmltree and wraps the root element.
func Parse(data []byte) (Node, error) {
	root, err := xmltree.Parse(data)
	if err != nil {
		return Node{}, fmt.Errorf("parse xml tree: %w", err)
	}
	return Node{el: root}, nil
}

// Element returns the wrapped element.
func (n Node) Element() *xmltree.Element { return n.el }

func (n Node) Kind() xmlext.NodeKind { return xmlext.KindElement }

func (n Node) LocalName() string {
	if n.el == nil {
		return ""
	}
	return n.el.Name.Local
}

func (n Node) NamespaceURI() string {
	if n.el == nil {
		return ""
	}
	return n.el.Name.Space
}

func (n Node) Children() []xmlext.Node {
	if n.el == nil || len(n.el.Children) == 0 {
		return nil
	}
	out := make([]xmlext.Node, len(n.el.Children))
	for i := range n.el.Children {
		out[i] = Node{el: &n.el.Children[i]}
	}
	return out
}

func (n Node) Attrs() []xmlext.Attr {
	if n.el == nil || len(n.el.StartElement.Attr) == 0 {
		return nil
	}
	out := make([]xmlext.Attr, 0, len(n.el.StartElement.Attr))
	for _, a := range n.el.StartElement.Attr {
		switch {
		case a.Name.Space == "xmlns":
			out = append(out, xmlext.Attr{Namespace: xmlext.XMLNSNamespace, Local: a.Name.Local, Value: a.Value})
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			out = append(out, xmlext.Attr{Namespace: xmlext.XMLNSNamespace, Local: "xmlns", Value: a.Value})
		default:
			out = append(out, xmlext.Attr{Namespace: a.Name.Space, Local: a.Name.Local, Value: a.Value})
		}
	}
	return out
}

// Text returns the character data directly under the element, with entities
// and CDATA sections decoded. Malformed content yields what was decoded
// before the error.
func (n Node) Text() string {
	if n.el == nil || len(n.el.Content) == 0 {
		return ""
	}
	dec := xml.NewDecoder(bytes.NewReader(n.el.Content))
	var sb strings.Builder
	depth := 0
	for {
		tok, err := dec.RawToken()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 {
				_, _ = sb.Write(t)
			}
		}
	}
	return sb.String()
}
