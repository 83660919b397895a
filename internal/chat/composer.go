package chat

import "strings"

// Composer assembles the final reply text: base message, optional rotated
// soft-pitch line, and the booking marker token. Composition is idempotent:
// the token appears exactly once in the output no matter how many code paths
// decided to attach, and generated text that embeds the token on its own is
// normalized the same way.
type Composer struct {
	token string
}

// NewComposer creates a composer for the given booking marker token.
func NewComposer(token string) *Composer {
	if token == "" {
		token = "{{BOOK_CALL}}"
	}
	return &Composer{token: token}
}

// Token returns the literal booking marker.
func (c *Composer) Token() string { return c.token }

// ContainsToken reports whether text already embeds the booking marker.
// Generator output is untrusted; the service uses this to turn an embedded
// marker into an eligibility signal instead of passing it through raw.
func (c *Composer) ContainsToken(text string) bool {
	return strings.Contains(text, c.token)
}

// StripToken removes every occurrence of the booking marker and tidies the
// surrounding blank lines.
func (c *Composer) StripToken(text string) string {
	if !c.ContainsToken(text) {
		return text
	}
	cleaned := strings.ReplaceAll(text, c.token, "")
	for strings.Contains(cleaned, "\n\n\n") {
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(cleaned)
}

// Compose returns the final reply for the given decision. With Attach, the
// optional softPitch line and the token are appended; any marker already
// present in base is removed first so the result carries it exactly once.
func (c *Composer) Compose(base string, d Decision, softPitch string) string {
	base = c.StripToken(base)
	if !d.Attached() {
		return base
	}

	var b strings.Builder
	b.WriteString(base)
	if softPitch != "" {
		b.WriteString("\n\n")
		b.WriteString(softPitch)
	}
	b.WriteString("\n\n")
	b.WriteString(c.token)
	return b.String()
}
