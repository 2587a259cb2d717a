package xmlext

import "slices"

// SimpleElement is a leaf extension: a qualified name, optional attributes
// and text content. A SimpleElement built with NewSimpleElement doubles as
// the factory for its own name.
type SimpleElement struct {
	Base
	value string
	attrs []Attr
}

// NewSimpleElement returns an empty element named local in namespace ns.
func NewSimpleElement(local, prefix, ns string) *SimpleElement {
	return &SimpleElement{Base: NewBase(local, prefix, ns)}
}

// Value returns the text content.
func (s *SimpleElement) Value() string { return s.value }

// SetValue sets the text content.
func (s *SimpleElement) SetValue(v string) { s.value = v }

// Attribute returns the value of the attribute ns:local.
func (s *SimpleElement) Attribute(ns, local string) (string, bool) {
	for _, a := range s.attrs {
		if a.Namespace == ns && a.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute sets ns:local to value, keeping the position of an existing
// attribute with the same name.
func (s *SimpleElement) SetAttribute(ns, local, value string) {
	for i := range s.attrs {
		if s.attrs[i].Namespace == ns && s.attrs[i].Local == local {
			s.attrs[i].Value = value
			return
		}
	}
	s.attrs = append(s.attrs, Attr{Namespace: ns, Local: local, Value: value})
}

// Attributes returns a copy of the attributes in document order.
func (s *SimpleElement) Attributes() []Attr {
	return slices.Clone(s.attrs)
}

// CreateInstance implements Factory.
// Namespace declarations are not kept as attributes.
func (s *SimpleElement) CreateInstance(n Node) (Element, bool) {
	if n != nil && !s.Matches(n) {
		return nil, false
	}
	out := &SimpleElement{Base: s.Base}
	if n == nil {
		return out, true
	}
	out.value = n.Text()
	for _, a := range n.Attrs() {
		if a.Namespace == XMLNSNamespace {
			continue
		}
		out.attrs = append(out.attrs, a)
	}
	return out, true
}

// Save writes the element, its attributes and its text.
func (s *SimpleElement) Save(w Writer) error {
	if err := w.WriteStartElement(s.XMLPrefix(), s.XMLName(), s.XMLNamespace()); err != nil {
		return err
	}
	for _, a := range s.attrs {
		if err := w.WriteAttribute(a.Prefix, a.Local, a.Namespace, a.Value); err != nil {
			return err
		}
	}
	if s.value != "" {
		if err := w.WriteText(s.value); err != nil {
			return err
		}
	}
	return w.WriteEndElement()
}
