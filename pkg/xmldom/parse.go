package xmldom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/jacoelho/xmlext"
	xmlerrors "github.com/jacoelho/xmlext/errors"
	"github.com/jacoelho/xmlext/internal/state"
	"github.com/jacoelho/xmlext/internal/xmlnames"
)

// Option configures Parse.
type Option func(*config)

type config struct {
	maxDepth int
}

// WithMaxDepth limits element nesting. Zero means unlimited.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth >= 0 {
			c.maxDepth = depth
		}
	}
}

// frame is an open element and the namespace bindings it declares.
type frame struct {
	id         NodeID
	name       xml.Name
	prefixes   map[string]string
	defaultNS  string
	defaultSet bool
}

type parser struct {
	dec   *xml.Decoder
	doc   *Document
	stack state.Stack[frame]
	attrs []xmlext.Attr
}

// Parse builds a Document from XML input.
//
// Text, comments and processing instructions inside the root element become
// nodes of their own. Content outside the root element is dropped, apart from
// non-whitespace character data which is an error. Prefixes must be declared.
// Errors are an errors.List with the input position when available.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	if r == nil {
		return nil, xmlerrors.List{xmlerrors.New(xmlerrors.ErrXMLParse, "nil reader", "")}
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &parser{
		dec:   xml.NewDecoder(r),
		doc:   &Document{root: InvalidNode},
		stack: state.NewStack[frame](16),
	}
	doc := p.doc
	rootClosed := false

	for {
		tok, err := p.dec.RawToken()
		if errors.Is(err, io.EOF) {
			if p.stack.Len() > 0 {
				return nil, p.fail(xmlerrors.ErrXMLParse, "unexpected EOF")
			}
			break
		}
		if err != nil {
			return nil, p.fail(xmlerrors.ErrXMLParse, err.Error())
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, p.fail(xmlerrors.ErrXMLParse,
					fmt.Sprintf("unexpected element %s after document end", t.Name.Local))
			}
			if cfg.maxDepth > 0 && p.stack.Len() >= cfg.maxDepth {
				return nil, p.fail(xmlerrors.ErrMaxDepth,
					fmt.Sprintf("element %s exceeds max depth %d", t.Name.Local, cfg.maxDepth))
			}
			if err := p.start(t); err != nil {
				return nil, err
			}

		case xml.EndElement:
			open, ok := p.stack.Pop()
			if !ok || open.name != t.Name {
				return nil, p.fail(xmlerrors.ErrXMLParse,
					fmt.Sprintf("unexpected end element </%s>", qualified(t.Name)))
			}
			if p.stack.Len() == 0 {
				rootClosed = true
			}

		case xml.CharData:
			parent, ok := p.stack.Peek()
			if !ok {
				if len(bytes.TrimSpace(t)) != 0 {
					return nil, p.fail(xmlerrors.ErrXMLParse, "unexpected character data outside root element")
				}
				continue
			}
			doc.nodes[parent.id].text = append(doc.nodes[parent.id].text, t...)
			doc.addText(parent.id, t)

		case xml.Comment:
			if parent, ok := p.stack.Peek(); ok {
				id := doc.addNode(xmlext.KindComment, "", "", nil, parent.id)
				doc.nodes[id].text = bytes.Clone(t)
			}

		case xml.ProcInst:
			if parent, ok := p.stack.Peek(); ok {
				id := doc.addNode(xmlext.KindProcInst, "", t.Target, nil, parent.id)
				doc.nodes[id].text = bytes.Clone(t.Inst)
			}
		}
	}

	if doc.root == InvalidNode {
		return nil, xmlerrors.List{xmlerrors.New(xmlerrors.ErrNoRoot, "document has no root element", "")}
	}

	doc.buildChildren()
	return doc, nil
}

// start declares the bindings of t, resolves its names and adds the node.
func (p *parser) start(t xml.StartElement) error {
	f := frame{id: InvalidNode, name: t.Name}
	for _, a := range t.Attr {
		switch {
		case a.Name.Space == xmlnames.XMLNSPrefix:
			if err := xmlnames.ValidatePrefixBinding(a.Name.Local, a.Value); err != nil {
				return p.fail(xmlerrors.ErrXMLParse, err.Error())
			}
			if f.prefixes == nil {
				f.prefixes = make(map[string]string, 1)
			}
			f.prefixes[a.Name.Local] = a.Value
		case a.Name.Space == "" && a.Name.Local == xmlnames.XMLNSPrefix:
			f.defaultNS = a.Value
			f.defaultSet = true
		}
	}

	parent := InvalidNode
	if top, ok := p.stack.Peek(); ok {
		parent = top.id
	}
	p.stack.Push(f)

	ns, ok := p.resolve(t.Name.Space)
	if !ok {
		return p.fail(xmlerrors.ErrXMLParse, fmt.Sprintf("unbound prefix %s on element %s", t.Name.Space, t.Name.Local))
	}

	p.attrs = p.attrs[:0]
	for _, a := range t.Attr {
		attr, err := p.attr(a)
		if err != nil {
			return err
		}
		p.attrs = append(p.attrs, attr)
	}

	id := p.doc.addNode(xmlext.KindElement, ns, t.Name.Local, p.attrs, parent)
	if parent == InvalidNode {
		p.doc.root = id
	}
	p.stack.Top().id = id
	return nil
}

// attr resolves a raw attribute. Namespace declarations map into
// XMLNSNamespace, the local name being the declared prefix or "xmlns" for
// the default namespace.
func (p *parser) attr(a xml.Attr) (xmlext.Attr, error) {
	switch {
	case a.Name.Space == xmlnames.XMLNSPrefix:
		return xmlext.Attr{Prefix: xmlnames.XMLNSPrefix, Namespace: xmlext.XMLNSNamespace, Local: a.Name.Local, Value: a.Value}, nil
	case a.Name.Space == "" && a.Name.Local == xmlnames.XMLNSPrefix:
		return xmlext.Attr{Namespace: xmlext.XMLNSNamespace, Local: xmlnames.XMLNSPrefix, Value: a.Value}, nil
	case a.Name.Space == "":
		return xmlext.Attr{Local: a.Name.Local, Value: a.Value}, nil
	}
	ns, ok := p.resolve(a.Name.Space)
	if !ok {
		return xmlext.Attr{}, p.fail(xmlerrors.ErrXMLParse,
			fmt.Sprintf("unbound prefix %s on attribute %s", a.Name.Space, a.Name.Local))
	}
	return xmlext.Attr{Prefix: a.Name.Space, Namespace: ns, Local: a.Name.Local, Value: a.Value}, nil
}

// resolve looks prefix up in the open elements, innermost first. The empty
// prefix resolves to the default namespace, or to no namespace when none is
// declared.
func (p *parser) resolve(prefix string) (string, bool) {
	switch prefix {
	case xmlnames.XMLPrefix:
		return xmlext.XMLNamespace, true
	case xmlnames.XMLNSPrefix:
		return "", false
	}
	items := p.stack.Items()
	for i := len(items) - 1; i >= 0; i-- {
		f := items[i]
		if prefix == "" {
			if f.defaultSet {
				return f.defaultNS, true
			}
			continue
		}
		if ns, ok := f.prefixes[prefix]; ok {
			return ns, true
		}
	}
	return "", prefix == ""
}

// addText merges runs of character data split by the decoder, such as text
// around a CDATA section, into one text node.
func (d *Document) addText(parent NodeID, text []byte) {
	if last := len(d.nodes) - 1; last >= 0 {
		n := &d.nodes[last]
		if n.kind == xmlext.KindText && n.parent == parent {
			n.text = append(n.text, text...)
			return
		}
	}
	id := d.addNode(xmlext.KindText, "", "", nil, parent)
	d.nodes[id].text = bytes.Clone(text)
}

func (p *parser) fail(code xmlerrors.ErrorCode, msg string) error {
	line, col := p.dec.InputPos()
	return xmlerrors.List{xmlerrors.New(code, msg, "").At(line, col)}
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
