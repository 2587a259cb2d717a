package xmldom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/xmlext"
	xmlerrors "github.com/jacoelho/xmlext/errors"
)

func TestParse(t *testing.T) {
	xmlData := `<?xml version="1.0"?>
<root xmlns="http://example.com" xmlns:m="urn:media">
	<child attr="value">text content</child>
	<!-- note -->
	<m:title>more <![CDATA[text]]></m:title>
	<?app run?>
</root>`

	doc, err := Parse(strings.NewReader(xmlData))
	require.NoError(t, err)

	root := doc.Root()
	require.True(t, root.Valid())
	assert.Equal(t, xmlext.KindElement, root.Kind())
	assert.Equal(t, "root", root.LocalName())
	assert.Equal(t, "http://example.com", root.NamespaceURI())

	var elements []xmlext.Node
	kinds := map[xmlext.NodeKind]int{}
	for _, child := range root.Children() {
		kinds[child.Kind()]++
		if child.Kind() == xmlext.KindElement {
			elements = append(elements, child)
		}
	}
	require.Len(t, elements, 2)
	assert.Equal(t, 1, kinds[xmlext.KindComment])
	assert.Equal(t, 1, kinds[xmlext.KindProcInst])
	assert.Positive(t, kinds[xmlext.KindText])

	child := elements[0]
	assert.Equal(t, "child", child.LocalName())
	assert.Equal(t, "http://example.com", child.NamespaceURI())
	assert.Equal(t, "text content", child.Text())
	assert.Equal(t, []xmlext.Attr{{Local: "attr", Value: "value"}}, child.Attrs())

	title := elements[1]
	assert.Equal(t, "title", title.LocalName())
	assert.Equal(t, "urn:media", title.NamespaceURI())
	assert.Equal(t, "more text", title.Text())
	titleChildren := title.Children()
	require.Len(t, titleChildren, 1, "CDATA merges with the surrounding text")
	assert.Equal(t, xmlext.KindText, titleChildren[0].Kind())
	assert.Empty(t, titleChildren[0].LocalName())
}

func TestParseNamespaceDeclarations(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<a xmlns="urn:d" xmlns:p="urn:p" p:x="1" xml:lang="en"/>`))
	require.NoError(t, err)

	id := doc.DocumentElement()
	v, ok := doc.GetAttributeNS(id, xmlext.XMLNSNamespace, "xmlns")
	require.True(t, ok)
	assert.Equal(t, "urn:d", v)

	v, ok = doc.GetAttributeNS(id, xmlext.XMLNSNamespace, "p")
	require.True(t, ok)
	assert.Equal(t, "urn:p", v)

	v, ok = doc.GetAttributeNS(id, "urn:p", "x")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok = doc.GetAttributeNS(id, xmlext.XMLNamespace, "lang")
	require.True(t, ok)
	assert.Equal(t, "en", v)
}

func TestParseResolvesPrefixScopes(t *testing.T) {
	doc, err := Parse(strings.NewReader(
		`<a xmlns:p="urn:outer"><p:b xmlns:p="urn:inner" p:x="1"/><p:c xmlns=""/></a>`))
	require.NoError(t, err)

	children := doc.Children(doc.DocumentElement())
	require.Len(t, children, 2)
	assert.Equal(t, "urn:inner", doc.NamespaceURI(children[0]))
	assert.Equal(t, "urn:outer", doc.NamespaceURI(children[1]))
	assert.Equal(t, "", doc.NamespaceURI(doc.DocumentElement()))

	attrs := doc.Attributes(children[0])
	require.Len(t, attrs, 2)
	assert.Equal(t, xmlext.Attr{Prefix: "xmlns", Namespace: xmlext.XMLNSNamespace, Local: "p", Value: "urn:inner"}, attrs[0])
	assert.Equal(t, xmlext.Attr{Prefix: "p", Namespace: "urn:inner", Local: "x", Value: "1"}, attrs[1])
}

func TestParseTree(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<a><b><c>x</c></b><d>y</d></a>`))
	require.NoError(t, err)

	root := doc.DocumentElement()
	assert.Equal(t, InvalidNode, doc.Parent(root))
	assert.Equal(t, "xy", doc.TextContent(root))
	assert.Empty(t, doc.DirectText(root))

	children := doc.Children(root)
	require.Len(t, children, 2)
	assert.Equal(t, "b", doc.LocalName(children[0]))
	assert.Equal(t, "d", doc.LocalName(children[1]))
	assert.Equal(t, root, doc.Parent(children[1]))

	c := doc.Node(doc.Children(children[0])[0])
	assert.Equal(t, "c", c.LocalName())
	assert.Equal(t, "b", c.Parent().LocalName())
	assert.Equal(t, 6, doc.Len())
}

func TestParseProcInstTarget(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<a><?tool go?></a>`))
	require.NoError(t, err)

	pi := doc.Children(doc.DocumentElement())[0]
	assert.Equal(t, xmlext.KindProcInst, doc.Kind(pi))
	assert.Equal(t, "tool", doc.Target(pi))
	assert.Equal(t, "go", doc.DirectText(pi))
	assert.Empty(t, doc.LocalName(pi))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []Option
		code  xmlerrors.ErrorCode
	}{
		{name: "empty", input: "", code: xmlerrors.ErrNoRoot},
		{name: "only prolog", input: `<?xml version="1.0"?><!-- c -->`, code: xmlerrors.ErrNoRoot},
		{name: "unclosed", input: `<a><b></a>`, code: xmlerrors.ErrXMLParse},
		{name: "text outside root", input: `junk<a/>`, code: xmlerrors.ErrXMLParse},
		{name: "second root", input: `<a/><b/>`, code: xmlerrors.ErrXMLParse},
		{name: "unbound element prefix", input: `<p:a><p:b/></p:a>`, code: xmlerrors.ErrXMLParse},
		{name: "unbound nested prefix", input: `<a><p:b xmlns:p="urn:p"/><p:c/></a>`, code: xmlerrors.ErrXMLParse},
		{name: "unbound attribute prefix", input: `<a q:x="1"/>`, code: xmlerrors.ErrXMLParse},
		{name: "xmlns element prefix", input: `<xmlns:a/>`, code: xmlerrors.ErrXMLParse},
		{name: "rebound xml prefix", input: `<a xmlns:xml="urn:x"/>`, code: xmlerrors.ErrXMLParse},
		{name: "empty prefix binding", input: `<a xmlns:p=""/>`, code: xmlerrors.ErrXMLParse},
		{name: "too deep", input: `<a><b><c/></b></a>`, opts: []Option{WithMaxDepth(2)}, code: xmlerrors.ErrMaxDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(tt.input), tt.opts...)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, xmlerrors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse(strings.NewReader("<a>\n<b>\n</a>"))
	list, ok := xmlerrors.As(err)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Positive(t, list[0].Line)
}

func TestParseNilReader(t *testing.T) {
	_, err := Parse(nil)
	assert.True(t, xmlerrors.HasCode(err, xmlerrors.ErrXMLParse))
}

func TestInvalidNodeView(t *testing.T) {
	var doc *Document
	n := doc.Root()
	assert.False(t, n.Valid())
	assert.Equal(t, xmlext.KindText, n.Kind())
	assert.Nil(t, n.Children())
	assert.Empty(t, n.Text())
	assert.Nil(t, n.Attrs())
}
