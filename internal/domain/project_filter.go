package domain

// MatchAll is the sentinel filter value meaning "no constraint". It is
// always the first, default-selected entry in every filter option list.
const MatchAll = "All"

// Predicate is a single-column equality constraint. A predicate whose value
// is MatchAll (or empty) contributes no constraint.
type Predicate struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Active reports whether the predicate actually narrows the table.
func (p Predicate) Active() bool {
	return p.Value != "" && p.Value != MatchAll
}

// Matches reports whether a project satisfies the predicate. Comparison is
// exact and case sensitive.
func (p Predicate) Matches(project Project) (bool, error) {
	if !p.Active() {
		return true, nil
	}
	value, err := project.Category(p.Column)
	if err != nil {
		return false, err
	}
	return value == p.Value, nil
}

// Filter is an ordered set of independent predicates, combined conjunctively.
// Predicates never interact; each one either narrows the table or, when set
// to MatchAll, drops out entirely.
type Filter struct {
	Predicates []Predicate
}

// WithPredicate returns a new filter with an added predicate. The receiver
// is never modified.
func (f Filter) WithPredicate(column, value string) Filter {
	predicates := make([]Predicate, 0, len(f.Predicates)+1)
	predicates = append(predicates, f.Predicates...)
	predicates = append(predicates, Predicate{Column: column, Value: value})
	return Filter{Predicates: predicates}
}

// Active returns only the predicates that narrow the table.
func (f Filter) Active() []Predicate {
	var active []Predicate
	for _, p := range f.Predicates {
		if p.Active() {
			active = append(active, p)
		}
	}
	return active
}

// IsEmpty reports whether no predicate narrows the table.
func (f Filter) IsEmpty() bool {
	return len(f.Active()) == 0
}

// Matches reports whether a project satisfies every active predicate.
func (f Filter) Matches(project Project) (bool, error) {
	for _, p := range f.Predicates {
		ok, err := p.Matches(project)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
