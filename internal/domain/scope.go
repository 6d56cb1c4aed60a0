package domain

// Scope states which soft-delete visibility a query wants. Callers must always
// pick one explicitly so a missing deleted-at filter cannot slip in silently.
type Scope int

const (
	// ScopeActive restricts queries to rows that are not soft-deleted
	ScopeActive Scope = iota

	// ScopeAll includes soft-deleted rows
	ScopeAll
)

// String returns a human-readable scope name
func (s Scope) String() string {
	if s == ScopeAll {
		return "all"
	}
	return "active"
}
