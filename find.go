package xmlext

// matches reports whether e carries the local name and, unless ns is empty,
// the namespace. nil entries never match.
func matches(e Element, local, ns string) bool {
	if e == nil {
		return false
	}
	if e.XMLName() != local {
		return false
	}
	return ns == "" || e.XMLNamespace() == ns
}

// Find returns the first element in list named local in namespace ns.
// An empty ns matches any namespace.
func Find(list []Element, local, ns string) (Element, bool) {
	for _, e := range list {
		if matches(e, local, ns) {
			return e, true
		}
	}
	return nil, false
}

// FindAll returns every element in list named local in namespace ns, in
// list order. An empty ns matches any namespace. The result is never nil.
func FindAll(list []Element, local, ns string) []Element {
	out := make([]Element, 0)
	for _, e := range list {
		if matches(e, local, ns) {
			out = append(out, e)
		}
	}
	return out
}
