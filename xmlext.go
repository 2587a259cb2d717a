// Package xmlext holds open-ended sets of XML extension elements.
//
// A Container is an XML element whose children are not modelled statically.
// Schema types register a list of Factory prototypes on a Container; parsing a
// node walks its element children and hands each one to the first factory
// whose qualified name matches. Children nobody claims are dropped, which keeps
// clients forward compatible with vendor extensions they do not understand.
//
// Parsing and writing are delegated to the Node and Writer collaborators. The
// pkg/xmldom and pkg/treenode packages provide Node implementations and
// pkg/xmlwriter provides a Writer.
package xmlext

// Reserved namespaces.
const (
	XMLNamespace   = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

// NodeKind discriminates parse-tree nodes.
type NodeKind uint8

const (
	// KindElement is an element node.
	KindElement NodeKind = iota
	// KindText is character data, including CDATA sections.
	KindText
	// KindComment is a comment.
	KindComment
	// KindProcInst is a processing instruction.
	KindProcInst
)

func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindProcInst:
		return "procinst"
	default:
		return "unknown"
	}
}

// Attr is a namespace-qualified attribute.
//
// Prefix is the prefix the attribute was read with. Writers treat it as a
// preference and may pick another one when it is bound elsewhere.
type Attr struct {
	Prefix    string
	Namespace string
	Local     string
	Value     string
}

// Node is a read-only view of a parse-tree node.
//
// For non-element nodes LocalName and NamespaceURI return "" and Children
// returns nil.
type Node interface {
	Kind() NodeKind
	LocalName() string
	NamespaceURI() string
	// Children returns the child nodes in document order, all kinds included.
	Children() []Node
	// Text returns the character data directly under the node.
	Text() string
	Attrs() []Attr
}

// Writer receives the serialized form of elements.
type Writer interface {
	WriteStartElement(prefix, local, ns string) error
	WriteAttribute(prefix, local, ns, value string) error
	WriteText(text string) error
	WriteEndElement() error
}

// Element is anything that can live in a container's extension list.
type Element interface {
	XMLName() string
	XMLPrefix() string
	XMLNamespace() string
	Save(w Writer) error
}

// Factory recognises a qualified name and builds elements from nodes.
//
// CreateInstance returns false when the node is not one the factory handles.
type Factory interface {
	XMLName() string
	XMLNamespace() string
	CreateInstance(n Node) (Element, bool)
}

// QName is a namespace-qualified name.
type QName struct {
	Namespace string
	Local     string
}

// String returns the {namespace}local form.
func (q QName) String() string {
	if q.Namespace == "" {
		return q.Local
	}
	return "{" + q.Namespace + "}" + q.Local
}

// Base carries the qualified name of an element.
// Embed it to get the naming half of Element and Factory.
type Base struct {
	local  string
	prefix string
	ns     string
}

// NewBase returns a Base for the given local name, prefix and namespace.
func NewBase(local, prefix, ns string) Base {
	return Base{local: local, prefix: prefix, ns: ns}
}

// XMLName returns the local name.
func (b Base) XMLName() string { return b.local }

// XMLPrefix returns the namespace prefix used when writing.
func (b Base) XMLPrefix() string { return b.prefix }

// XMLNamespace returns the namespace URI.
func (b Base) XMLNamespace() string { return b.ns }

// QName returns the qualified name.
func (b Base) QName() QName { return QName{Namespace: b.ns, Local: b.local} }

// Matches reports whether n is an element with the same qualified name.
func (b Base) Matches(n Node) bool {
	return n != nil && n.Kind() == KindElement && n.LocalName() == b.local && n.NamespaceURI() == b.ns
}
