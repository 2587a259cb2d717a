// Package mediarss models the Media RSS media:group element as an extension
// container.
package mediarss

import (
	"strconv"
	"strings"

	"github.com/jacoelho/xmlext"
)

const (
	// Namespace is the Media RSS namespace URI.
	Namespace = "http://search.yahoo.com/mrss/"
	// Prefix is the conventional prefix for Namespace.
	Prefix = "media"
)

// Element local names.
const (
	GroupName       = "group"
	TitleName       = "title"
	DescriptionName = "description"
	KeywordsName    = "keywords"
	CreditName      = "credit"
	CategoryName    = "category"
	ThumbnailName   = "thumbnail"
	ContentName     = "content"
	PlayerName      = "player"
)

// Group is a media:group. Its children are held as extensions so unknown
// Media RSS or vendor elements can be added without changing the type.
type Group struct {
	*xmlext.Container
}

var _ xmlext.Factory = (*Group)(nil)

// NewGroup returns an empty group with the Media RSS factories registered.
func NewGroup(opts ...xmlext.Option) *Group {
	opts = append([]xmlext.Option{xmlext.WithFactories(
		newElement(TitleName),
		newElement(DescriptionName),
		newElement(KeywordsName),
		newElement(CreditName),
		newElement(CategoryName),
		newElement(ThumbnailName),
		newElement(ContentName),
		newElement(PlayerName),
	)}, opts...)
	return &Group{Container: xmlext.NewContainer(GroupName, Prefix, Namespace, opts...)}
}

func newElement(local string) *xmlext.SimpleElement {
	return xmlext.NewSimpleElement(local, Prefix, Namespace)
}

// Parse builds a populated Group from n.
func (g *Group) Parse(n xmlext.Node) (*Group, bool) {
	c, ok := g.Container.Parse(n)
	if !ok {
		return nil, false
	}
	return &Group{Container: c}, true
}

// CreateInstance implements xmlext.Factory, so a Group can be registered on
// an entry container.
func (g *Group) CreateInstance(n xmlext.Node) (xmlext.Element, bool) {
	out, ok := g.Parse(n)
	if !ok {
		return nil, false
	}
	return out, true
}

// Title returns the media:title text.
func (g *Group) Title() string { return g.text(TitleName) }

// SetTitle replaces media:title.
func (g *Group) SetTitle(v string) { g.setText(TitleName, v) }

// Description returns the media:description text.
func (g *Group) Description() string { return g.text(DescriptionName) }

// SetDescription replaces media:description.
func (g *Group) SetDescription(v string) { g.setText(DescriptionName, v) }

// Keywords returns the comma separated media:keywords, trimmed, empty
// entries dropped.
func (g *Group) Keywords() []string {
	raw := g.text(KeywordsName)
	var out []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// SetKeywords replaces media:keywords.
func (g *Group) SetKeywords(keywords []string) {
	g.setText(KeywordsName, strings.Join(keywords, ", "))
}

// PlayerURL returns the url attribute of media:player.
func (g *Group) PlayerURL() string {
	s, ok := g.simple(PlayerName)
	if !ok {
		return ""
	}
	v, _ := s.Attribute("", "url")
	return v
}

// SetPlayerURL replaces media:player.
func (g *Group) SetPlayerURL(url string) {
	s := newElement(PlayerName)
	s.SetAttribute("", "url", url)
	g.ReplaceExtension(PlayerName, Namespace, s)
}

func (g *Group) simple(local string) (*xmlext.SimpleElement, bool) {
	e, ok := g.FindExtension(local, Namespace)
	if !ok {
		return nil, false
	}
	s, ok := e.(*xmlext.SimpleElement)
	return s, ok
}

func (g *Group) simples(local string) []*xmlext.SimpleElement {
	var out []*xmlext.SimpleElement
	for _, e := range g.FindExtensions(local, Namespace) {
		if s, ok := e.(*xmlext.SimpleElement); ok {
			out = append(out, s)
		}
	}
	return out
}

func (g *Group) text(local string) string {
	s, ok := g.simple(local)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s.Value())
}

func (g *Group) setText(local, v string) {
	s := newElement(local)
	s.SetValue(v)
	g.ReplaceExtension(local, Namespace, s)
}

func attr(s *xmlext.SimpleElement, local string) string {
	v, _ := s.Attribute("", local)
	return v
}

func attrInt(s *xmlext.SimpleElement, local string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(attr(s, local)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func setAttrInt(s *xmlext.SimpleElement, local string, v int64) {
	if v > 0 {
		s.SetAttribute("", local, strconv.FormatInt(v, 10))
	}
}

func setAttr(s *xmlext.SimpleElement, local, v string) {
	if v != "" {
		s.SetAttribute("", local, v)
	}
}
