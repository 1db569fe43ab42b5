// This file implements the assertion algebra (C6, spec.md §4.3): add,
// remove, replace, dedup, and predicate-based queries.
package envelope

// AddAssertion builds an assertion from predicate/object and adds it via
// AddAssertionEnvelope.
func (e Envelope) AddAssertion(predicate, object any) (Envelope, error) {
	a, err := NewAssertion(predicate, object)
	if err != nil {
		return Envelope{}, err
	}
	return e.AddAssertionEnvelope(a)
}

// AddAssertionEnvelope adds assertion a to e. a must be a true assertion or
// an obscured stand-in for one (spec.md §3.5 invariant 4); anything else is
// ErrInvalidAssertion. If e is already a node, a is merged into its
// assertion set, deduplicated by digest. Otherwise e is promoted into a
// node whose subject is e itself and whose sole assertion is a. Adding an
// assertion whose digest already present is a silent no-op
// (spec.md §4.3's duplicate policy).
func (e Envelope) AddAssertionEnvelope(a Envelope) (Envelope, error) {
	if !isAssertionOrObscured(a) {
		return Envelope{}, ErrInvalidAssertion
	}

	if nc, ok := e.c.(*nodeCase); ok {
		assertions := append(append([]Envelope{}, nc.assertions...), a)
		return nodeWithSortedAssertions(nc.subject, assertions)
	}
	return nodeWithSortedAssertions(e, []Envelope{a})
}

// RemoveAssertion drops the first assertion in e whose digest equals
// target's. If that leaves no assertions, RemoveAssertion returns the bare
// subject rather than an empty node (spec.md §3.5 invariant 2). If e is not
// a node, or target is not present, e is returned unchanged.
func (e Envelope) RemoveAssertion(target Envelope) Envelope {
	nc, ok := e.c.(*nodeCase)
	if !ok {
		return e
	}

	targetDigest := target.Digest()
	kept := make([]Envelope, 0, len(nc.assertions))
	removed := false
	for _, a := range nc.assertions {
		if !removed && a.Digest().Equal(targetDigest) {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	if !removed {
		return e
	}
	if len(kept) == 0 {
		return nc.subject
	}
	// kept is already sorted and deduplicated (it is a subsequence of a
	// node's invariant-respecting assertion list), so reconstruction
	// cannot fail.
	out, err := nodeWithSortedAssertions(nc.subject, kept)
	if err != nil {
		panic(err)
	}
	return out
}

// ReplaceAssertion is remove(old).add(new) (spec.md §4.3).
func (e Envelope) ReplaceAssertion(oldAssertion, newAssertion Envelope) (Envelope, error) {
	return e.RemoveAssertion(oldAssertion).AddAssertionEnvelope(newAssertion)
}

// ReplaceSubject rebuilds e with newSubject in place of its current
// subject, re-applying e's assertions (if any) on top of it in order.
func (e Envelope) ReplaceSubject(newSubject Envelope) (Envelope, error) {
	assertions := e.Assertions()
	if len(assertions) == 0 {
		return newSubject, nil
	}
	out := newSubject
	for _, a := range assertions {
		var err error
		out, err = out.AddAssertionEnvelope(a)
		if err != nil {
			return Envelope{}, err
		}
	}
	return out, nil
}

// AddOptionalAssertion adds (predicate, *object) if object is non-nil, and
// returns e unchanged if object is nil. This distinguishes "explicit null
// object" (pass a pointer to a null leaf - it becomes a real assertion)
// from "absent object" (pass nil - no-op), resolving spec.md §9(b).
func (e Envelope) AddOptionalAssertion(predicate any, object *Envelope) (Envelope, error) {
	if object == nil {
		return e, nil
	}
	return e.AddAssertion(predicate, *object)
}

// AddIf adds the assertion only when guard is true; otherwise e is returned
// unchanged.
func (e Envelope) AddIf(guard bool, predicate, object any) (Envelope, error) {
	if !guard {
		return e, nil
	}
	return e.AddAssertion(predicate, object)
}

// AddNonemptyAssertion adds (predicate, object) only when object is a
// non-empty string; a zero-value string is treated as absent.
func (e Envelope) AddNonemptyAssertion(predicate any, object string) (Envelope, error) {
	if object == "" {
		return e, nil
	}
	return e.AddAssertion(predicate, object)
}

// AssertionsWithPredicate filters e's assertions (or, for an obscured
// assertion, skips it since its predicate cannot be inspected) to those
// whose predicate digest matches predicate's.
func (e Envelope) AssertionsWithPredicate(predicate any) ([]Envelope, error) {
	p, err := FromSubject(predicate)
	if err != nil {
		return nil, err
	}
	pd := p.Digest()

	var out []Envelope
	for _, a := range e.Assertions() {
		if !a.IsAssertion() {
			continue
		}
		ap, err := a.Predicate()
		if err != nil {
			continue
		}
		if ap.Digest().Equal(pd) {
			out = append(out, a)
		}
	}
	return out, nil
}

// AssertionWithPredicate returns the single assertion matching predicate,
// failing with ErrNonexistentPredicate for zero matches or
// ErrAmbiguousPredicate for more than one.
func (e Envelope) AssertionWithPredicate(predicate any) (Envelope, error) {
	matches, err := e.AssertionsWithPredicate(predicate)
	if err != nil {
		return Envelope{}, err
	}
	switch len(matches) {
	case 0:
		return Envelope{}, ErrNonexistentPredicate
	case 1:
		return matches[0], nil
	default:
		return Envelope{}, ErrAmbiguousPredicate
	}
}

// TryAssertionWithPredicate returns (envelope, true, nil) for exactly one
// match, (zero, false, nil) for zero matches, and an error only for
// ambiguity - the "optional" variant named in spec.md §4.3.
func (e Envelope) TryAssertionWithPredicate(predicate any) (Envelope, bool, error) {
	matches, err := e.AssertionsWithPredicate(predicate)
	if err != nil {
		return Envelope{}, false, err
	}
	switch len(matches) {
	case 0:
		return Envelope{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		return Envelope{}, false, ErrAmbiguousPredicate
	}
}

// ObjectForPredicate lifts AssertionWithPredicate to the object side.
func (e Envelope) ObjectForPredicate(predicate any) (Envelope, error) {
	a, err := e.AssertionWithPredicate(predicate)
	if err != nil {
		return Envelope{}, err
	}
	return a.Object()
}

// ObjectsForPredicate lifts AssertionsWithPredicate to the object side.
func (e Envelope) ObjectsForPredicate(predicate any) ([]Envelope, error) {
	matches, err := e.AssertionsWithPredicate(predicate)
	if err != nil {
		return nil, err
	}
	out := make([]Envelope, 0, len(matches))
	for _, a := range matches {
		o, err := a.Object()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// ElementsCount recursively counts structural elements (self plus every
// reachable child), used by diagnostic tooling (spec.md §4.3).
func (e Envelope) ElementsCount() int {
	count := 1
	switch e.Kind() {
	case KindNode:
		nc := e.c.(*nodeCase)
		count += nc.subject.ElementsCount()
		for _, a := range nc.assertions {
			count += a.ElementsCount()
		}
	case KindWrapped:
		wc := e.c.(*wrappedCase)
		count += wc.inner.ElementsCount()
	case KindAssertion:
		ac := e.c.(*assertionCase)
		count += ac.predicate.ElementsCount()
		count += ac.object.ElementsCount()
	}
	return count
}
