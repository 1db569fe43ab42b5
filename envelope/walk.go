package envelope

import "github.com/paritytech/bcts-sub004/digest"

// VisitFunc is called once per envelope visited by Walk. It receives the
// envelope, its depth from the walk root, its zero-based index among its
// parent's immediate children, and the current thread-local state, and
// must return either env unchanged (no substitution) or a replacement -
// replacing an envelope stops the walk from descending into its original
// children. A replacement with a different digest is returned as is, without
// visiting its children; a replacement with the same digest (an obscured
// stand-in, or revealed content as in elide.Reveal) has its own children
// walked. The returned state is threaded forward to the next envelope
// visited in traversal order (spec.md §4.4).
type VisitFunc func(env Envelope, depth, childIndex int, state any) (replacement Envelope, nextState any, err error)

type walkConfig struct {
	leavesOnly bool
}

// WalkOption configures a Walk call.
type WalkOption func(*walkConfig)

// LeavesOnly suppresses calling visit on internal Node container
// envelopes; every other case is still visited, and a node's children are
// still walked (spec.md §4.4).
func LeavesOnly() WalkOption {
	return func(c *walkConfig) { c.leavesOnly = true }
}

// Walk performs a depth-first traversal of e:
//
//  1. self
//  2. subject (if e is a Node)
//  3. each assertion, in stored order (if e is a Node)
//  4. inner (if e is Wrapped)
//  5. predicate then object (if e is an Assertion)
//
// It returns the (possibly rebuilt) envelope and the final thread state.
func (e Envelope) Walk(state any, visit VisitFunc, opts ...WalkOption) (Envelope, any, error) {
	var cfg walkConfig
	for _, o := range opts {
		o(&cfg)
	}
	return walkEnvelope(e, 0, 0, state, cfg, visit)
}

func walkEnvelope(e Envelope, depth, childIndex int, state any, cfg walkConfig, visit VisitFunc) (Envelope, any, error) {
	current := e
	newState := state

	if !(cfg.leavesOnly && e.IsNode()) {
		rep, ns, err := visit(e, depth, childIndex, state)
		if err != nil {
			return Envelope{}, state, err
		}
		newState = ns
		if !rep.Digest().Equal(e.Digest()) {
			return rep, newState, nil
		}
		current = rep
	}

	switch current.Kind() {
	case KindNode:
		nc := current.c.(*nodeCase)
		newSubject, s, err := walkEnvelope(nc.subject, depth+1, 0, newState, cfg, visit)
		if err != nil {
			return Envelope{}, state, err
		}
		newState = s

		newAssertions := make([]Envelope, 0, len(nc.assertions))
		for i, a := range nc.assertions {
			na, s2, err := walkEnvelope(a, depth+1, i+1, newState, cfg, visit)
			if err != nil {
				return Envelope{}, state, err
			}
			newState = s2
			newAssertions = append(newAssertions, na)
		}
		rebuilt, err := nodeWithSortedAssertions(newSubject, newAssertions)
		if err != nil {
			return Envelope{}, state, err
		}
		return rebuilt, newState, nil

	case KindWrapped:
		wc := current.c.(*wrappedCase)
		newInner, s, err := walkEnvelope(wc.inner, depth+1, 0, newState, cfg, visit)
		if err != nil {
			return Envelope{}, state, err
		}
		return NewWrapped(newInner), s, nil

	case KindAssertion:
		ac := current.c.(*assertionCase)
		newPred, s, err := walkEnvelope(ac.predicate, depth+1, 0, newState, cfg, visit)
		if err != nil {
			return Envelope{}, state, err
		}
		newObj, s2, err := walkEnvelope(ac.object, depth+1, 1, s, cfg, visit)
		if err != nil {
			return Envelope{}, state, err
		}
		return newAssertionEnvelope(newPred, newObj), s2, nil

	default:
		return current, newState, nil
	}
}

// CollectDigests walks e and returns the set of every digest encountered -
// used by inclusion-proof verification (spec.md §4.11) to confirm a
// target's digest appears somewhere in a proof envelope.
func (e Envelope) CollectDigests() digest.Set {
	out := make(digest.Set)
	_, _, _ = e.Walk(nil, func(env Envelope, depth, childIndex int, state any) (Envelope, any, error) {
		out.Add(env.Digest())
		return env, state, nil
	})
	return out
}
