// Package session holds per-conversation state for the chat backend and the
// stores that persist it. One Session exists per conversation id; stores
// create it lazily with default values on first access and serialize all
// mutations for a given id.
package session

import "context"

// farPast initializes LastBookingTurn so the first eligible CTA in a fresh
// session is never blocked by the spacing policy.
const farPast = -1 << 30

// Session is the per-conversation state.
type Session struct {
	ID string `json:"id"`

	// CTACooldown counts the remaining CTA-eligible turns to suppress before
	// the next call-to-action may be attached. Never negative.
	CTACooldown int `json:"cta_cooldown"`

	// PendingNeed is set after the first business-need turn; the next
	// business-need turn clears it and becomes CTA-eligible.
	PendingNeed bool `json:"pending_need"`

	// LastIntent is the most recent classified intent label.
	LastIntent string `json:"last_intent,omitempty"`

	// LastVariation remembers, per rotating list, the last value emitted so
	// the same phrase is never sent twice in a row.
	LastVariation map[string]string `json:"last_variation,omitempty"`

	// Industry is the first detected industry tag. Immutable once set.
	Industry string `json:"industry,omitempty"`

	// HeatScore accumulates purchase-intent keyword hits. Informational
	// context for the generator and transcript log, not gating logic.
	HeatScore int `json:"heat_score"`

	// MessageIndex counts turns in this session.
	MessageIndex int `json:"message_index"`

	// LastBookingTurn is the MessageIndex at which a booking CTA was last
	// attached.
	LastBookingTurn int `json:"last_booking_turn"`
}

// New returns a Session with all-default values for the given id.
func New(id string) *Session {
	return &Session{
		ID:              id,
		LastVariation:   make(map[string]string),
		LastBookingTurn: farPast,
	}
}

// LastPick returns the last value emitted for the named rotating list.
func (s *Session) LastPick(list string) string {
	return s.LastVariation[list]
}

// RecordPick remembers the value just emitted for the named rotating list.
func (s *Session) RecordPick(list, value string) {
	if s.LastVariation == nil {
		s.LastVariation = make(map[string]string)
	}
	s.LastVariation[list] = value
}

// SetIndustry records the detected industry tag. The first detection wins;
// later calls are ignored.
func (s *Session) SetIndustry(tag string) {
	if s.Industry == "" {
		s.Industry = tag
	}
}

func (s *Session) clone() *Session {
	cp := *s
	cp.LastVariation = make(map[string]string, len(s.LastVariation))
	for k, v := range s.LastVariation {
		cp.LastVariation[k] = v
	}
	return &cp
}

// Store persists sessions keyed by conversation id.
//
// Get returns a snapshot of the session, creating a default one if the id is
// unseen. Update runs fn against the live session under the per-id lock and
// persists the result; mutations for one id are applied in arrival order.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
}
