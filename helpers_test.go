package xmlext

import (
	"errors"
	"fmt"
	"strings"
)

// testNode is an in-memory Node.
type testNode struct {
	kind     NodeKind
	ns       string
	local    string
	text     string
	attrs    []Attr
	children []Node
}

func (n *testNode) Kind() NodeKind       { return n.kind }
func (n *testNode) LocalName() string    { return n.local }
func (n *testNode) NamespaceURI() string { return n.ns }
func (n *testNode) Children() []Node     { return n.children }
func (n *testNode) Text() string         { return n.text }
func (n *testNode) Attrs() []Attr        { return n.attrs }

func elem(ns, local string, children ...Node) *testNode {
	return &testNode{kind: KindElement, ns: ns, local: local, children: children}
}

func textNode(s string) *testNode {
	return &testNode{kind: KindText, text: s}
}

// testElement is an opaque extension value.
type testElement struct {
	Base
	id string
}

func (e *testElement) Save(w Writer) error {
	if err := w.WriteStartElement(e.XMLPrefix(), e.XMLName(), e.XMLNamespace()); err != nil {
		return err
	}
	return w.WriteEndElement()
}

func ext(id, local, ns string) *testElement {
	return &testElement{Base: NewBase(local, "", ns), id: id}
}

// testFactory builds testElements and counts calls.
type testFactory struct {
	Base
	tag     string
	decline bool
	calls   int
}

func factory(tag, local, ns string) *testFactory {
	return &testFactory{Base: NewBase(local, "", ns), tag: tag}
}

func (f *testFactory) CreateInstance(n Node) (Element, bool) {
	f.calls++
	if f.decline {
		return nil, false
	}
	return &testElement{Base: f.Base, id: f.tag + ":" + n.LocalName()}, true
}

// recordWriter records every call as a line.
type recordWriter struct {
	calls  []string
	failAt int
	err    error
}

var errWrite = errors.New("write failed")

func (w *recordWriter) record(s string) error {
	w.calls = append(w.calls, s)
	if w.failAt > 0 && len(w.calls) == w.failAt {
		if w.err != nil {
			return w.err
		}
		return errWrite
	}
	return nil
}

func (w *recordWriter) WriteStartElement(prefix, local, ns string) error {
	return w.record(fmt.Sprintf("start %s:%s {%s}", prefix, local, ns))
}

func (w *recordWriter) WriteAttribute(prefix, local, ns, value string) error {
	return w.record(fmt.Sprintf("attr %s:%s {%s}=%s", prefix, local, ns, value))
}

func (w *recordWriter) WriteText(text string) error {
	return w.record("text " + text)
}

func (w *recordWriter) WriteEndElement() error {
	return w.record("end")
}

func (w *recordWriter) String() string {
	return strings.Join(w.calls, "\n")
}

func ids(list []Element) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.(*testElement).id)
	}
	return out
}
