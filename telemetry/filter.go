package telemetry

type filterState int

const (
	filterNone filterState = iota
	filterAll
	filterOne
	filterTwo
	filterThree
	filterFour
	filterFive
	filterMany
)

// LabelFilter is a small-set membership predicate over label values.
//
// Most panels filter on exactly one label, so sets of up to five labels are
// stored in individual fields and tested with a plain equality chain — no
// allocation, no hashing. Larger sets fall back to a slice scan. The internal
// state is an optimization, never an observable distinction: Accepts behaves
// identically for the same logical set regardless of how it is stored.
//
// The zero value accepts no labels.
type LabelFilter[L comparable] struct {
	state         filterState
	a, b, c, d, e L
	many          []L
}

// AcceptNoLabels creates a filter that rejects every label.
func AcceptNoLabels[L comparable]() LabelFilter[L] {
	return LabelFilter[L]{state: filterNone}
}

// AcceptAllLabels creates a filter that accepts every label.
func AcceptAllLabels[L comparable]() LabelFilter[L] {
	return LabelFilter[L]{state: filterAll}
}

// AcceptLabels creates a filter that accepts exactly the given labels.
// With no labels it accepts none.
func AcceptLabels[L comparable](labels ...L) LabelFilter[L] {
	f := AcceptNoLabels[L]()
	for _, label := range labels {
		f.AddLabel(label)
	}
	return f
}

// Accepts reports whether the label is a member of the filter set.
func (f *LabelFilter[L]) Accepts(label L) bool {
	switch f.state {
	case filterNone:
		return false
	case filterAll:
		return true
	case filterOne:
		return label == f.a
	case filterTwo:
		return label == f.a || label == f.b
	case filterThree:
		return label == f.a || label == f.b || label == f.c
	case filterFour:
		return label == f.a || label == f.b || label == f.c || label == f.d
	case filterFive:
		return label == f.a || label == f.b || label == f.c || label == f.d || label == f.e
	default:
		for _, member := range f.many {
			if member == label {
				return true
			}
		}
		return false
	}
}

// AddLabel grows the accepted set by one label, promoting the internal
// representation as needed. Accept-all stays accept-all; accept-none becomes
// a singleton. Previously accepted labels are never lost.
func (f *LabelFilter[L]) AddLabel(label L) {
	switch f.state {
	case filterAll:
	case filterNone:
		f.a = label
		f.state = filterOne
	case filterOne:
		f.b = label
		f.state = filterTwo
	case filterTwo:
		f.c = label
		f.state = filterThree
	case filterThree:
		f.d = label
		f.state = filterFour
	case filterFour:
		f.e = label
		f.state = filterFive
	case filterFive:
		f.many = []L{f.a, f.b, f.c, f.d, f.e, label}
		f.state = filterMany
	default:
		f.many = append(f.many, label)
	}
}
