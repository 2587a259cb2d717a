// Package xmlwriter streams namespace-aware XML.
//
// Writer implements xmlext.Writer. Namespace declarations are emitted only
// where a prefix is not already bound to the requested namespace, so nested
// extensions sharing a namespace with their container stay terse.
package xmlwriter

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jacoelho/xmlext"
	"github.com/jacoelho/xmlext/internal/state"
	"github.com/jacoelho/xmlext/internal/xmlnames"
)

var (
	// ErrAttributeOutsideStart is returned by WriteAttribute once the start
	// tag has been closed by content.
	ErrAttributeOutsideStart = errors.New("xmlwriter: attribute outside start tag")
	// ErrNoOpenElement is returned by WriteEndElement with nothing to close.
	ErrNoOpenElement = errors.New("xmlwriter: no open element")
	// ErrUnclosedElement is returned by Flush while elements remain open.
	ErrUnclosedElement = errors.New("xmlwriter: unclosed element")
	// ErrInvalidName is returned for names that are not NCNames and for
	// prefix bindings that break the reserved xml and xmlns rules.
	ErrInvalidName = errors.New("xmlwriter: invalid name")
)

const declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Option configures a Writer.
type Option func(*Writer)

// WithDeclaration writes the XML declaration before the first element.
func WithDeclaration() Option {
	return func(w *Writer) {
		w.declare = true
	}
}

type open struct {
	name  string
	scope nsScope
}

// Writer writes XML to an underlying io.Writer. Errors are sticky: after the
// first failure every call returns the same error.
type Writer struct {
	w        *bufio.Writer
	stack    state.Stack[open]
	pending  bool
	declare  bool
	started  bool
	nextAuto int
	err      error
}

var _ xmlext.Writer = (*Writer)(nil)

// New returns a Writer on w.
func New(w io.Writer, opts ...Option) *Writer {
	xw := &Writer{
		w:     bufio.NewWriter(w),
		stack: state.NewStack[open](16),
	}
	for _, opt := range opts {
		opt(xw)
	}
	return xw
}

// WriteStartElement opens an element. An empty prefix places the element in
// the default namespace, declaring it when ns differs from the one in scope.
func (w *Writer) WriteStartElement(prefix, local, ns string) error {
	if w.err != nil {
		return w.err
	}
	if ns == "" {
		prefix = ""
	}
	if err := checkName(prefix, local); err != nil {
		return w.fail(err)
	}
	if err := xmlnames.ValidatePrefixBinding(prefix, ns); err != nil {
		return w.fail(fmt.Errorf("%w: %w", ErrInvalidName, err))
	}
	w.closeStart()
	if !w.started {
		w.started = true
		if w.declare {
			w.writeString(declaration)
		}
	}

	el := open{}
	el.name = qualify(prefix, local)
	w.writeString("<")
	w.writeString(el.name)

	switch {
	case prefix == "":
		if current, _ := w.lookup(""); current != ns {
			el.scope.bindDefault(ns)
			w.writeDecl("xmlns", ns)
		}
	default:
		if current, ok := w.lookup(prefix); !ok || current != ns {
			el.scope.bind(prefix, ns)
			w.writeDecl("xmlns:"+prefix, ns)
		}
	}

	w.stack.Push(el)
	w.pending = true
	return w.err
}

// WriteAttribute adds an attribute to the element just opened. Namespaced
// attributes reuse a prefix in scope for ns, bind the given prefix, or bind a
// generated one.
func (w *Writer) WriteAttribute(prefix, local, ns, value string) error {
	if w.err != nil {
		return w.err
	}
	if !w.pending {
		return w.fail(ErrAttributeOutsideStart)
	}
	if err := checkName(prefix, local); err != nil {
		return w.fail(err)
	}

	switch ns {
	case xmlext.XMLNSNamespace:
		return w.fail(fmt.Errorf("%w: namespace declarations are written by the writer", ErrInvalidName))
	case "":
		prefix = ""
	case xmlext.XMLNamespace:
		prefix = "xml"
	default:
		prefix = w.attrPrefix(prefix, ns)
	}

	w.writeString(" ")
	w.writeString(qualify(prefix, local))
	w.writeString(`="`)
	w.escape(value)
	w.writeString(`"`)
	return w.err
}

// WriteText writes escaped character data.
func (w *Writer) WriteText(text string) error {
	if w.err != nil {
		return w.err
	}
	w.closeStart()
	w.escape(text)
	return w.err
}

// WriteEndElement closes the innermost open element, self-closing it when
// nothing was written inside.
func (w *Writer) WriteEndElement() error {
	if w.err != nil {
		return w.err
	}
	el, ok := w.stack.Pop()
	if !ok {
		return w.fail(ErrNoOpenElement)
	}
	if w.pending {
		w.pending = false
		w.writeString("/>")
		return w.err
	}
	w.writeString("</")
	w.writeString(el.name)
	w.writeString(">")
	return w.err
}

// Flush writes buffered output. It fails if elements are still open.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if w.stack.Len() > 0 {
		return w.fail(fmt.Errorf("%w: %d open", ErrUnclosedElement, w.stack.Len()))
	}
	if err := w.w.Flush(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Depth reports the number of open elements.
func (w *Writer) Depth() int {
	return w.stack.Len()
}

// attrPrefix picks the prefix for a namespaced attribute. A requested prefix
// that cannot be bound to ns, such as xmlns, is ignored.
func (w *Writer) attrPrefix(prefix, ns string) string {
	if xmlnames.ValidatePrefixBinding(prefix, ns) != nil {
		prefix = ""
	}
	if prefix != "" {
		if current, ok := w.lookup(prefix); ok && current == ns {
			return prefix
		}
		if _, ok := w.lookup(prefix); !ok {
			w.bindOnTop(prefix, ns)
			return prefix
		}
	}
	if p, ok := w.prefixFor(ns); ok {
		return p
	}
	for {
		w.nextAuto++
		p := "ns" + strconv.Itoa(w.nextAuto)
		if _, ok := w.lookup(p); !ok {
			w.bindOnTop(p, ns)
			return p
		}
	}
}

func (w *Writer) bindOnTop(prefix, ns string) {
	w.top().bind(prefix, ns)
	w.writeDecl("xmlns:"+prefix, ns)
}

func (w *Writer) top() *nsScope {
	return &w.stack.Top().scope
}

func (w *Writer) closeStart() {
	if w.pending {
		w.pending = false
		w.writeString(">")
	}
}

func (w *Writer) writeDecl(name, ns string) {
	w.writeString(" ")
	w.writeString(name)
	w.writeString(`="`)
	w.escape(ns)
	w.writeString(`"`)
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.w.WriteString(s); err != nil {
		w.err = err
	}
}

func (w *Writer) escape(s string) {
	if w.err != nil {
		return
	}
	if err := xml.EscapeText(w.w, []byte(s)); err != nil {
		w.err = err
	}
}

func (w *Writer) fail(err error) error {
	if w.err == nil {
		w.err = err
	}
	return w.err
}

func checkName(prefix, local string) error {
	if !xmlnames.IsNCName(local) {
		return fmt.Errorf("%w: %q", ErrInvalidName, local)
	}
	if prefix != "" && !xmlnames.IsNCName(prefix) {
		return fmt.Errorf("%w: prefix %q", ErrInvalidName, prefix)
	}
	return nil
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}
