package resolver

import (
	"sort"

	"github.com/erraggy/oaslice/parser"
	"github.com/erraggy/oaslice/refs"
)

// ResolvedSet accumulates the components resolved during one run.
//
// A ResolvedSet is created empty at the start of a run, mutated only by the
// resolver during that run, and read-only afterward. It is never shared
// between concurrent runs. Stored bodies are deep copies: mutating the set
// can never reach back into the source document.
type ResolvedSet struct {
	components map[refs.Kind]map[string]any
	visited    map[refs.Reference]bool
}

// NewResolvedSet returns an empty set.
func NewResolvedSet() *ResolvedSet {
	return &ResolvedSet{
		components: make(map[refs.Kind]map[string]any),
		visited:    make(map[refs.Reference]bool),
	}
}

// visit marks a reference as processed and reports whether it was new.
func (s *ResolvedSet) visit(ref refs.Reference) bool {
	if s.visited[ref] {
		return false
	}
	s.visited[ref] = true
	return true
}

// add records a deep copy of a resolved definition body.
func (s *ResolvedSet) add(ref refs.Reference, body any) {
	section := s.components[ref.Kind]
	if section == nil {
		section = make(map[string]any)
		s.components[ref.Kind] = section
	}
	section[ref.Name] = parser.DeepCopyValue(body)
}

// Has reports whether the set contains a definition for ref.
func (s *ResolvedSet) Has(ref refs.Reference) bool {
	_, ok := s.components[ref.Kind][ref.Name]
	return ok
}

// Body returns the stored definition body for ref.
func (s *ResolvedSet) Body(ref refs.Reference) (any, bool) {
	body, ok := s.components[ref.Kind][ref.Name]
	return body, ok
}

// Len returns the total number of resolved definitions across all kinds.
func (s *ResolvedSet) Len() int {
	n := 0
	for _, section := range s.components {
		n += len(section)
	}
	return n
}

// Count returns the number of resolved definitions for one kind.
func (s *ResolvedSet) Count(kind refs.Kind) int {
	return len(s.components[kind])
}

// Counts returns per-kind definition counts for every kind with at least
// one entry.
func (s *ResolvedSet) Counts() map[refs.Kind]int {
	out := make(map[refs.Kind]int, len(s.components))
	for kind, section := range s.components {
		if len(section) > 0 {
			out[kind] = len(section)
		}
	}
	return out
}

// Names returns the sorted definition names resolved for one kind.
func (s *ResolvedSet) Names(kind refs.Kind) []string {
	section := s.components[kind]
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// References returns every resolved reference, ordered by kind then name.
func (s *ResolvedSet) References() []refs.Reference {
	out := make([]refs.Reference, 0, s.Len())
	for _, kind := range refs.AllKinds() {
		for _, name := range s.Names(kind) {
			out = append(out, refs.Reference{Kind: kind, Name: name})
		}
	}
	return out
}

// IsEmpty reports whether no definitions were resolved.
func (s *ResolvedSet) IsEmpty() bool {
	return s.Len() == 0
}

// ComponentsValue builds an OAS components mapping from the set. Kinds with
// zero entries are omitted entirely. The returned mapping is a deep copy and
// shares no state with the set.
func (s *ResolvedSet) ComponentsValue() map[string]any {
	out := make(map[string]any)
	for _, kind := range refs.AllKinds() {
		section := s.components[kind]
		if len(section) == 0 {
			continue
		}
		copied := make(map[string]any, len(section))
		for name, body := range section {
			copied[name] = parser.DeepCopyValue(body)
		}
		out[kind.Section()] = copied
	}
	return out
}
