package xmlext

import (
	"slices"

	"github.com/jacoelho/xmlext/pkg/logger"
)

// Container is an element holding an ordered list of extension elements.
//
// A Container built with NewContainer usually acts as a prototype: the owning
// schema type registers factories once, then Parse produces populated copies.
// Parsing never mutates the prototype. Containers are not safe for concurrent
// mutation; a prototype may be shared by concurrent Parse calls once
// registration is done.
type Container struct {
	Base
	extensions []Element
	factories  []Factory
	logger     logger.Logger
}

// NewContainer returns an empty container named local in namespace ns,
// written with prefix.
func NewContainer(local, prefix, ns string, opts ...Option) *Container {
	c := &Container{
		Base:       NewBase(local, prefix, ns),
		extensions: make([]Element, 0),
		factories:  make([]Factory, 0),
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extensions returns the extension list.
// The slice aliases the container's storage; element writes are visible to
// the container, but appends are not. Grow the list with AddExtension and
// swap it wholesale with SetExtensions.
func (c *Container) Extensions() []Element {
	return c.extensions
}

// SetExtensions replaces the extension list. A nil list is stored as empty.
func (c *Container) SetExtensions(list []Element) {
	if list == nil {
		list = make([]Element, 0)
	}
	c.extensions = list
}

// AddExtension appends e to the extension list. nil is ignored.
func (c *Container) AddExtension(e Element) {
	if e == nil {
		return
	}
	c.extensions = append(c.extensions, e)
}

// FindExtension returns the first extension named local in namespace ns.
// An empty ns matches on local name alone.
func (c *Container) FindExtension(local, ns string) (Element, bool) {
	return Find(c.extensions, local, ns)
}

// FindExtensions returns every extension named local in namespace ns, in
// list order. An empty ns matches on local name alone.
func (c *Container) FindExtensions(local, ns string) []Element {
	return FindAll(c.extensions, local, ns)
}

// DeleteExtensions removes every extension FindExtensions would return and
// reports how many were removed. The remaining extensions keep their order.
func (c *Container) DeleteExtensions(local, ns string) int {
	before := len(c.extensions)
	c.extensions = slices.DeleteFunc(c.extensions, func(e Element) bool {
		return matches(e, local, ns)
	})
	return before - len(c.extensions)
}

// ReplaceExtension deletes every extension matching local and ns, then
// appends e. The replacement always lands at the end of the list.
// A nil e only deletes.
func (c *Container) ReplaceExtension(local, ns string, e Element) {
	c.DeleteExtensions(local, ns)
	c.AddExtension(e)
}

// RegisterFactory appends factories to the dispatch list.
// Registration order decides which factory wins for a duplicated name.
func (c *Container) RegisterFactory(fs ...Factory) {
	for _, f := range fs {
		if f == nil {
			continue
		}
		c.factories = append(c.factories, f)
	}
}

// Factories returns a copy of the registered factories in registration order.
func (c *Container) Factories() []Factory {
	return slices.Clone(c.factories)
}

// CreateInstance implements Factory, so containers nest.
func (c *Container) CreateInstance(n Node) (Element, bool) {
	sc, ok := c.Parse(n)
	if !ok {
		return nil, false
	}
	return sc, true
}

// Parse builds a populated copy of c from n.
//
// It returns false when n is not an element with c's qualified name. A nil n
// yields an empty copy. Each element child goes to the first registered
// factory with the same namespace and local name; children without a factory,
// or declined by theirs, are dropped. Non-element children are ignored.
func (c *Container) Parse(n Node) (*Container, bool) {
	c.logger.Debugw("create instance", "element", c.QName().String())

	if n != nil && !c.Matches(n) {
		return nil, false
	}

	sc := c.clone()
	if n == nil {
		return sc, true
	}

	for _, child := range n.Children() {
		if child == nil || child.Kind() != KindElement {
			continue
		}
		f, ok := c.factoryFor(child.NamespaceURI(), child.LocalName())
		if !ok {
			continue
		}
		e, ok := f.CreateInstance(child)
		if !ok || e == nil {
			continue
		}
		c.logger.Debugw("added extension",
			"container", c.QName().String(),
			"extension", QName{Namespace: f.XMLNamespace(), Local: f.XMLName()}.String(),
		)
		sc.extensions = append(sc.extensions, e)
	}
	return sc, true
}

func (c *Container) factoryFor(ns, local string) (Factory, bool) {
	for _, f := range c.factories {
		if f.XMLNamespace() == ns && f.XMLName() == local {
			return f, true
		}
	}
	return nil, false
}

// clone copies the identity fields and shares the factory list.
// The copy starts with an empty extension list.
func (c *Container) clone() *Container {
	return &Container{
		Base:       c.Base,
		extensions: make([]Element, 0),
		// clipped so that registering on the copy reallocates instead of
		// writing into the prototype's spare capacity
		factories: slices.Clip(c.factories),
		logger:    c.logger,
	}
}

// Save writes the container and, in order, every extension.
// Writer errors are returned as is.
func (c *Container) Save(w Writer) error {
	if err := w.WriteStartElement(c.XMLPrefix(), c.XMLName(), c.XMLNamespace()); err != nil {
		return err
	}
	for _, e := range c.extensions {
		if e == nil {
			continue
		}
		if err := e.Save(w); err != nil {
			return err
		}
	}
	return w.WriteEndElement()
}
