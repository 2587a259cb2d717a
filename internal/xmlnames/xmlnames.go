// Package xmlnames checks XML names and reserved prefix bindings.
package xmlnames

import (
	"fmt"
	"unicode/utf8"

	"github.com/jacoelho/xmlext"
)

const (
	// XMLPrefix is the reserved prefix for the XML namespace.
	XMLPrefix = "xml"
	// XMLNSPrefix is the reserved prefix for namespace declarations.
	XMLNSPrefix = "xmlns"
)

// IsNCName reports whether s is a non-colonized XML name.
func IsNCName(s string) bool {
	if s == "" {
		return false
	}
	first, size := utf8.DecodeRuneInString(s)
	if first == ':' || !isNameStartChar(first) {
		return false
	}
	for _, r := range s[size:] {
		if r == ':' || !isNameChar(r) {
			return false
		}
	}
	return true
}

// ValidatePrefixBinding verifies that binding prefix to ns respects the
// reserved xml and xmlns prefixes. An empty prefix binds the default
// namespace.
func ValidatePrefixBinding(prefix, ns string) error {
	switch {
	case prefix == XMLNSPrefix:
		return fmt.Errorf("prefix %s must not be declared", XMLNSPrefix)
	case prefix == XMLPrefix && ns != xmlext.XMLNamespace:
		return fmt.Errorf("prefix %s must be bound to %s", XMLPrefix, xmlext.XMLNamespace)
	case prefix != XMLPrefix && ns == xmlext.XMLNamespace:
		return fmt.Errorf("namespace %s must use prefix %s", xmlext.XMLNamespace, XMLPrefix)
	case ns == xmlext.XMLNSNamespace:
		return fmt.Errorf("namespace %s must not be bound", xmlext.XMLNSNamespace)
	case prefix != "" && ns == "":
		return fmt.Errorf("prefix %s must be bound to a namespace", prefix)
	}
	return nil
}

func isNameStartChar(r rune) bool {
	return r == ':' || r == '_' ||
		(r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 0xC0 && r <= 0xD6) ||
		(r >= 0xD8 && r <= 0xF6) ||
		(r >= 0xF8 && r <= 0x2FF) ||
		(r >= 0x370 && r <= 0x37D) ||
		(r >= 0x37F && r <= 0x1FFF) ||
		(r >= 0x200C && r <= 0x200D) ||
		(r >= 0x2070 && r <= 0x218F) ||
		(r >= 0x2C00 && r <= 0x2FEF) ||
		(r >= 0x3001 && r <= 0xD7FF) ||
		(r >= 0xF900 && r <= 0xFDCF) ||
		(r >= 0xFDF0 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0xEFFFF)
}

func isNameChar(r rune) bool {
	return isNameStartChar(r) ||
		r == '-' || r == '.' ||
		(r >= '0' && r <= '9') ||
		r == 0xB7 ||
		(r >= 0x0300 && r <= 0x036F) ||
		(r >= 0x203F && r <= 0x2040)
}
