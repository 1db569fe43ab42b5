package elide

import (
	"github.com/paritytech/bcts-sub004/digest"
	"github.com/paritytech/bcts-sub004/envelope"
)

// ElideRemoving obscures, via action, every envelope in e's tree whose
// digest is a member of targets, without descending further into anything
// it obscures (spec.md §4.5's remove-set form).
func ElideRemoving(e envelope.Envelope, targets digest.Set, action Action) (envelope.Envelope, error) {
	out, _, err := e.Walk(nil, func(env envelope.Envelope, depth, childIndex int, state any) (envelope.Envelope, any, error) {
		if !targets.Contains(env.Digest()) {
			return env, state, nil
		}
		obscured, err := action.obscure(env)
		return obscured, state, err
	})
	return out, err
}

// ElideRemovingTarget is ElideRemoving for a single digest.
func ElideRemovingTarget(e envelope.Envelope, target digest.Digest, action Action) (envelope.Envelope, error) {
	return ElideRemoving(e, digest.NewSet(target), action)
}

// ElideRevealing obscures, via action, every envelope in e's tree that is
// neither a member of targets nor an ancestor of one (spec.md §4.5's
// reveal-set form): obscuring a node would also obscure its descendants, so
// anything on the path down to a revealed digest must be kept even if it is
// not itself a target.
func ElideRevealing(e envelope.Envelope, targets digest.Set, action Action) (envelope.Envelope, error) {
	memo := make(map[digest.Digest]bool)
	out, _, err := e.Walk(nil, func(env envelope.Envelope, depth, childIndex int, state any) (envelope.Envelope, any, error) {
		if needsKeeping(env, targets, memo) {
			return env, state, nil
		}
		obscured, err := action.obscure(env)
		return obscured, state, err
	})
	return out, err
}

// ElideRevealingTarget is ElideRevealing for a single digest.
func ElideRevealingTarget(e envelope.Envelope, target digest.Digest, action Action) (envelope.Envelope, error) {
	return ElideRevealing(e, digest.NewSet(target), action)
}

func needsKeeping(e envelope.Envelope, targets digest.Set, memo map[digest.Digest]bool) bool {
	d := e.Digest()
	if v, ok := memo[d]; ok {
		return v
	}
	if targets.Contains(d) {
		memo[d] = true
		return true
	}

	keep := false
	switch e.Kind() {
	case envelope.KindNode:
		if needsKeeping(e.Subject(), targets, memo) {
			keep = true
		}
		for _, a := range e.Assertions() {
			if needsKeeping(a, targets, memo) {
				keep = true
			}
		}
	case envelope.KindWrapped:
		if inner, err := e.TryUnwrap(); err == nil {
			keep = needsKeeping(inner, targets, memo)
		}
	case envelope.KindAssertion:
		pred, errP := e.Predicate()
		obj, errO := e.Object()
		if errP == nil && needsKeeping(pred, targets, memo) {
			keep = true
		}
		if errO == nil && needsKeeping(obj, targets, memo) {
			keep = true
		}
	}
	memo[d] = keep
	return keep
}

// Unelide reverses a single elision: original must hash to the digest e
// carries, or ErrDigestMismatch. e must be elided, or ErrNotElided.
func Unelide(e envelope.Envelope, original envelope.Envelope) (envelope.Envelope, error) {
	d, err := e.ElidedDigest()
	if err != nil {
		return envelope.Envelope{}, ErrNotElided
	}
	if !original.Digest().Equal(d) {
		return envelope.Envelope{}, ErrDigestMismatch
	}
	return original, nil
}

// Reveal walks e and replaces every elided envelope whose digest is a key
// of replacements with its revealed content, verifying each one with
// Unelide. Elided envelopes with no matching replacement are left as-is.
func Reveal(e envelope.Envelope, replacements map[digest.Digest]envelope.Envelope) (envelope.Envelope, error) {
	out, _, err := e.Walk(nil, func(env envelope.Envelope, depth, childIndex int, state any) (envelope.Envelope, any, error) {
		if !env.IsElided() {
			return env, state, nil
		}
		original, ok := replacements[env.Digest()]
		if !ok {
			return env, state, nil
		}
		revealed, err := Unelide(env, original)
		if err != nil {
			return envelope.Envelope{}, state, err
		}
		return revealed, state, nil
	})
	return out, err
}
