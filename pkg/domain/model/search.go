package model

import (
	"slices"
	"strings"
)

// SearchTermSet is a set of strings to search for
type SearchTermSet map[string]struct{}

func NewSearchTermSet(terms ...string) SearchTermSet {
	set := make(SearchTermSet, len(terms))
	set.Add(terms...)
	return set
}

// Add inserts terms into the set. Blank terms are ignored because they match
// every line.
func (x SearchTermSet) Add(terms ...string) {
	for _, term := range terms {
		if strings.TrimSpace(term) == "" {
			continue
		}
		x[term] = struct{}{}
	}
}

// Union returns a new set with all terms of x and others
func (x SearchTermSet) Union(others ...SearchTermSet) SearchTermSet {
	result := NewSearchTermSet(x.Slice()...)
	for _, other := range others {
		result.Add(other.Slice()...)
	}
	return result
}

func (x SearchTermSet) Has(term string) bool {
	_, ok := x[term]
	return ok
}

func (x SearchTermSet) Len() int {
	return len(x)
}

// Slice returns terms in sorted order
func (x SearchTermSet) Slice() []string {
	terms := make([]string, 0, len(x))
	for term := range x {
		terms = append(terms, term)
	}
	slices.Sort(terms)
	return terms
}
