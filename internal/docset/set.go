package docset

import "git.home.luguber.info/inful/docnav/internal/util/sets"

// Set is the read-only collection of all documents of one generation pass.
type Set struct {
	docs   []*Document
	urls   sets.Set[string]
	byPath map[string]*Document
}

// NewSet indexes docs. Order is preserved; it is the tree insertion order.
func NewSet(docs ...*Document) *Set {
	s := &Set{
		docs:   docs,
		urls:   sets.New[string](),
		byPath: make(map[string]*Document, len(docs)),
	}
	for _, d := range docs {
		s.urls.Add(d.URL)
		s.byPath[d.Path] = d
	}
	return s
}

// Documents returns all documents in insertion order.
func (s *Set) Documents() []*Document { return s.docs }

// Len returns the number of documents.
func (s *Set) Len() int { return len(s.docs) }

// HasURL reports whether any document is published at url.
func (s *Set) HasURL(url string) bool { return s.urls.Has(url) }

// Lookup finds a document by path.
func (s *Set) Lookup(docPath string) (*Document, bool) {
	d, ok := s.byPath[docPath]
	return d, ok
}
