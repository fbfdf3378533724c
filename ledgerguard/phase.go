// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

// Phase names the interval of a pool's lifetime that an instant falls into.
type Phase uint8

const (
	// PhasePending covers instants before the deposit window opens. No
	// guarded operation is permitted in it.
	PhasePending Phase = iota
	PhaseDeposit
	PhaseCooldown
	PhaseClaim
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseDeposit:
		return "deposit"
	case PhaseCooldown:
		return "cooldown"
	case PhaseClaim:
		return "claim"
	default:
		return "unknown"
	}
}

// Window defines the deposit, cooldown and claim intervals of a pool as
// half-open intervals [Start, End), [End, ClaimOpen) and [ClaimOpen, ∞).
// A boundary instant belongs to the interval that begins there, never to
// the one ending, so no instant satisfies two phase predicates.
type Window struct {
	Start     int64
	End       int64
	ClaimOpen int64
}

// Verify returns nil iff the window is well formed: Start < End and
// End <= ClaimOpen. A zero-length cooldown (End == ClaimOpen) is permitted;
// the half-open classification keeps the boundary unambiguous even then.
func (w Window) Verify() error {
	if w.Start >= w.End || w.End > w.ClaimOpen {
		return errInvalidWindow
	}
	return nil
}

// Classify maps [t] to the single phase containing it.
func (w Window) Classify(t int64) Phase {
	switch {
	case t < w.Start:
		return PhasePending
	case t < w.End:
		return PhaseDeposit
	case t < w.ClaimOpen:
		return PhaseCooldown
	default:
		return PhaseClaim
	}
}

// Require returns nil iff [t] falls in phase [want]. The calling transition
// applies its mutation only after this passes.
func (w Window) Require(t int64, want Phase) error {
	if w.Classify(t) != want {
		return ErrPhaseViolation
	}
	return nil
}
