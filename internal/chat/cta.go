package chat

import (
	"github.com/zenvia-world/zenvia-chat/internal/session"
)

// Policy selects how CTA frequency is gated. A deployment uses exactly one
// policy; they are never mixed.
type Policy string

const (
	// PolicyCooldown counts eligible turns: an eligible turn either consumes
	// one unit of remaining cooldown or, at zero, attaches the CTA and resets
	// the counter.
	PolicyCooldown Policy = "cooldown"

	// PolicySpacing attaches only when enough turns have elapsed since the
	// last attached CTA. Suppressed turns leave the session untouched.
	PolicySpacing Policy = "spacing"
)

// Decision is the outcome of a CTA evaluation.
type Decision int

const (
	Suppress Decision = iota
	Attach
)

// Attached reports whether the decision carries the booking CTA.
func (d Decision) Attached() bool { return d == Attach }

// CTAEngine decides, per message, whether the outgoing reply should carry the
// booking call-to-action, and mutates session cooldown state accordingly. It
// performs no I/O.
type CTAEngine struct {
	policy        Policy
	cooldownTurns int
	spacingTurns  int
}

// NewCTAEngine creates an engine for the given policy. Non-positive constants
// fall back to the production default of 3.
func NewCTAEngine(policy Policy, cooldownTurns, spacingTurns int) *CTAEngine {
	if policy != PolicySpacing {
		policy = PolicyCooldown
	}
	if cooldownTurns <= 0 {
		cooldownTurns = 3
	}
	if spacingTurns <= 0 {
		spacingTurns = 3
	}
	return &CTAEngine{
		policy:        policy,
		cooldownTurns: cooldownTurns,
		spacingTurns:  spacingTurns,
	}
}

// Evaluate applies the configured policy to a turn. eligible is true when the
// calling strategy judges the reply content warrants a CTA. Ineligible turns
// never mutate the session.
//
// On Attach the cooldown resets to its constant and LastBookingTurn is set to
// turn. Under the cooldown policy a suppressed eligible turn consumes one
// unit of cooldown; under the spacing policy suppression is free.
func (e *CTAEngine) Evaluate(s *session.Session, eligible bool, turn int) Decision {
	if !eligible {
		return Suppress
	}

	switch e.policy {
	case PolicySpacing:
		if turn-s.LastBookingTurn < e.spacingTurns {
			return Suppress
		}
	default:
		if s.CTACooldown > 0 {
			s.CTACooldown--
			return Suppress
		}
	}

	s.CTACooldown = e.cooldownTurns
	s.LastBookingTurn = turn
	return Attach
}

// EvaluateBusinessNeed implements the two-step clarify-then-close protocol
// for business-need turns. The first unmet need turn sets PendingNeed and
// asks for clarification with no CTA; the next need turn clears the flag and
// becomes CTA-eligible.
//
// Returns clarify=true when the caller should respond with a clarifying
// question (decision is always Suppress in that case).
func (e *CTAEngine) EvaluateBusinessNeed(s *session.Session, turn int) (clarify bool, d Decision) {
	if !s.PendingNeed {
		s.PendingNeed = true
		return true, Suppress
	}
	s.PendingNeed = false
	return false, e.Evaluate(s, true, turn)
}
