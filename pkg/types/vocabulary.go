package types

import "sort"

// Vocabulary resolves symbolic type names to codes.
//
// Implementations model a particular level of the type vocabulary; a name
// that is unknown at that level is reported as not found, never as an error.
type Vocabulary interface {
	// Lookup returns the code for an exact, upper-case type name.
	Lookup(name string) (Code, bool)
	// Names returns the names known to the vocabulary, sorted.
	Names() []string
}

// codeSet is a Vocabulary backed by a fixed name table.
type codeSet map[string]Code

func (s codeSet) Lookup(name string) (Code, bool) {
	c, ok := s[name]
	return c, ok
}

func (s codeSet) Names() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// legacyExcluded lists the names introduced after the JDBC 3.0 level.
var legacyExcluded = []string{
	"ROWID", "NCHAR", "NVARCHAR", "LONGNVARCHAR", "NCLOB", "SQLXML",
	"REF_CURSOR", "TIME_WITH_TIMEZONE", "TIMESTAMP_WITH_TIMEZONE",
}

var (
	// Standard knows every code defined by this package.
	Standard Vocabulary = standard()

	// Legacy is the JDBC 3.0 level vocabulary. The national character
	// types, ROWID, SQLXML and the time zone aware types are missing.
	Legacy Vocabulary = without(standard(), legacyExcluded...)
)

func standard() codeSet {
	s := make(codeSet, len(names))
	for c, name := range names {
		s[name] = c
	}
	return s
}

func without(s codeSet, drop ...string) codeSet {
	for _, name := range drop {
		delete(s, name)
	}
	return s
}

// Subset returns a vocabulary restricted to the given names of base.
// Names unknown to base are ignored.
func Subset(base Vocabulary, keep ...string) Vocabulary {
	s := make(codeSet, len(keep))
	for _, name := range keep {
		if c, ok := base.Lookup(name); ok {
			s[name] = c
		}
	}
	return s
}

// Lookup resolves a name against the Standard vocabulary.
func Lookup(name string) (Code, bool) {
	return Standard.Lookup(name)
}

// All returns every code defined by this package, ordered by name.
func All() []Code {
	out := make([]Code, 0, len(names))
	for _, name := range Standard.Names() {
		c, _ := Standard.Lookup(name)
		out = append(out, c)
	}
	return out
}
