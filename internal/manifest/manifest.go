// Package manifest loads YAML descriptions of extension containers.
//
// A manifest names the root container and the factories registered on it:
//
//	container:
//	  name: group
//	  prefix: media
//	  namespace: http://search.yahoo.com/mrss/
//	  factories:
//	    - name: title
//	      prefix: media
//	      namespace: http://search.yahoo.com/mrss/
//	    - kind: container
//	      name: rating
//	      namespace: urn:example
//	      factories:
//	        - name: score
//	          namespace: urn:example
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jacoelho/xmlext"
	xmlerrors "github.com/jacoelho/xmlext/errors"
	"github.com/jacoelho/xmlext/internal/xmlnames"
	"github.com/jacoelho/xmlext/pkg/mediarss"
)

// Kind selects what a manifest entry builds.
type Kind string

const (
	// KindSimple builds an xmlext.SimpleElement. It is the default.
	KindSimple Kind = "simple"
	// KindContainer builds a nested xmlext.Container.
	KindContainer Kind = "container"
	// KindMediaGroup builds a mediarss.Group. Name, prefix and namespace
	// are fixed by Media RSS and must be left empty.
	KindMediaGroup Kind = "media-group"
)

// Manifest is the document root.
type Manifest struct {
	Container Entry `yaml:"container"`
}

// Entry describes one element.
type Entry struct {
	Kind      Kind    `yaml:"kind,omitempty"`
	Name      string  `yaml:"name,omitempty"`
	Prefix    string  `yaml:"prefix,omitempty"`
	Namespace string  `yaml:"namespace,omitempty"`
	Factories []Entry `yaml:"factories,omitempty"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a manifest. Unknown fields are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, xmlerrors.List{xmlerrors.New(xmlerrors.ErrManifestInvalid, "empty manifest", "")}
		}
		return nil, xmlerrors.List{xmlerrors.New(xmlerrors.ErrManifestInvalid, err.Error(), "")}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every entry and returns all problems as an errors.List.
func (m *Manifest) Validate() error {
	root := m.Container
	if root.Kind == "" && root.Name == "" && len(root.Factories) == 0 {
		return xmlerrors.List{xmlerrors.New(xmlerrors.ErrManifestInvalid, "container is required", "container")}
	}
	if errs := root.validate("container", true, nil); len(errs) > 0 {
		return errs
	}
	return nil
}

// kind resolves the default: entries with factories are containers. The
// root entry is always a container unless it says otherwise.
func (e Entry) kind() Kind {
	if e.Kind != "" {
		return e.Kind
	}
	if len(e.Factories) > 0 {
		return KindContainer
	}
	return KindSimple
}

func (e Entry) validate(path string, root bool, errs xmlerrors.List) xmlerrors.List {
	invalid := func(format string, args ...any) {
		errs = append(errs, xmlerrors.Newf(xmlerrors.ErrManifestInvalid, path, format, args...))
	}

	kind := e.kind()
	if root && e.Kind == "" {
		kind = KindContainer
	}
	switch kind {
	case KindSimple:
		if root {
			invalid("root must be a container")
		}
		if len(e.Factories) > 0 {
			invalid("simple element %q cannot have factories", e.Name)
		}
	case KindContainer:
	case KindMediaGroup:
		if e.Name != "" || e.Prefix != "" || e.Namespace != "" {
			invalid("media-group takes no name, prefix or namespace")
		}
	default:
		invalid("unknown kind %q", e.Kind)
		return errs
	}

	if kind != KindMediaGroup {
		switch {
		case e.Name == "":
			invalid("name is required")
		case !xmlnames.IsNCName(e.Name):
			invalid("name %q is not a valid XML name", e.Name)
		}
		if e.Prefix != "" && !xmlnames.IsNCName(e.Prefix) {
			invalid("prefix %q is not a valid XML name", e.Prefix)
		} else if err := xmlnames.ValidatePrefixBinding(e.Prefix, e.Namespace); err != nil {
			invalid("%v", err)
		}
	}

	for i, f := range e.Factories {
		errs = f.validate(fmt.Sprintf("%s.factories[%d]", path, i), false, errs)
	}
	return errs
}

// Build returns the root container with its factories registered. The
// container is a prototype: call Parse on it for each document. opts apply
// to every container built, nested ones included.
func (m *Manifest) Build(opts ...xmlext.Option) *xmlext.Container {
	if m.Container.Kind == KindMediaGroup {
		return m.Container.mediaGroup(opts).Container
	}
	return m.Container.container(opts)
}

func (e Entry) factory(opts []xmlext.Option) xmlext.Factory {
	switch e.kind() {
	case KindContainer:
		return e.container(opts)
	case KindMediaGroup:
		return e.mediaGroup(opts)
	default:
		return xmlext.NewSimpleElement(e.Name, e.Prefix, e.Namespace)
	}
}

func (e Entry) container(opts []xmlext.Option) *xmlext.Container {
	c := xmlext.NewContainer(e.Name, e.Prefix, e.Namespace, opts...)
	for _, f := range e.Factories {
		c.RegisterFactory(f.factory(opts))
	}
	return c
}

func (e Entry) mediaGroup(opts []xmlext.Option) *mediarss.Group {
	g := mediarss.NewGroup(opts...)
	for _, f := range e.Factories {
		g.RegisterFactory(f.factory(opts))
	}
	return g
}
