package xmlwriter

import "github.com/jacoelho/xmlext"

// nsScope holds the bindings declared on one element.
type nsScope struct {
	prefixes   map[string]string
	defaultNS  string
	defaultSet bool
}

func (s *nsScope) bind(prefix, ns string) {
	if s.prefixes == nil {
		s.prefixes = make(map[string]string, 1)
	}
	s.prefixes[prefix] = ns
}

func (s *nsScope) bindDefault(ns string) {
	s.defaultNS = ns
	s.defaultSet = true
}

// lookup resolves prefix against the open elements, innermost first.
// The empty prefix always resolves, to "" when no default is declared.
func (w *Writer) lookup(prefix string) (string, bool) {
	if prefix == "xml" {
		return xmlext.XMLNamespace, true
	}
	items := w.stack.Items()
	for i := len(items) - 1; i >= 0; i-- {
		scope := items[i].scope
		if prefix == "" {
			if scope.defaultSet {
				return scope.defaultNS, true
			}
			continue
		}
		if ns, ok := scope.prefixes[prefix]; ok {
			return ns, true
		}
	}
	if prefix == "" {
		return "", true
	}
	return "", false
}

// prefixFor returns a non-empty prefix currently resolving to ns.
func (w *Writer) prefixFor(ns string) (string, bool) {
	items := w.stack.Items()
	for i := len(items) - 1; i >= 0; i-- {
		for p, bound := range items[i].scope.prefixes {
			if bound != ns {
				continue
			}
			if current, _ := w.lookup(p); current == ns {
				return p, true
			}
		}
	}
	return "", false
}
