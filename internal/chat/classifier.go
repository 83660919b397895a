package chat

import (
	"context"
	"time"
)

const classifierSystemPrompt = "Strikt klassificerare."

const classifierPrompt = `
Klassificera följande meddelande till EN intent.

INTENTS:
SMALLTALK — hej, hur mår du, vad gör du, nice
THANK_YOU — tack, tack så mycket
COMPLIMENT — du är grym, snyggt
INSULT — du är ful, svordomar
AI_IDENTITY — är du riktig? är du en ai?
BOT_ORIGIN — hur skapades du, vem byggde dig
EXPERIENCE — hur mycket erfarenhet har ni
COMPANY_AGE — hur länge har ni funnits, när grundades ni
WHERE_ARE_YOU — vart finns ni, var ligger ni
HUMAN_HANDOFF — prata med människa, riktig person
PRICING_QUESTION — vad kostar det, pris
PRICING_PACKAGE — har ni paket, prisplan
PROCESS_EXPLANATION — hur fungerar det, hur går processen till
EXPECTATION_MANAGEMENT — kan ni garantera resultat
HOW_CAN_YOU_HELP — hur kan ni hjälpa oss, vad gör ni
VIDEO_NEED — reklamvideo, videoproduktion
BUSINESS_NEED — marknadsföring, hemsida, automation, ads, crm
CTA_DIRECT — vill ha fler kunder, fler bokningar
UNCERTAIN_NEED — vet inte vad jag behöver
GENERIC_SERVICE_REQUEST — gör ni X? saker som ej på listan
PROBLEM_MODE — inget funkar, vi är stressade
NEEDS_EXAMPLES — visa exempel, har ni case
OFF_TOPIC — skriv något random, något konstigt
EMOJI_REACTION — 👍🔥😁
ACKNOWLEDGEMENT — ok, mm, ah ok
LONG_MESSAGE_SUMMARY — långa stycken
NON_HUMAN_UNINTELLIGIBLE — gds7f89asd,#¤
NEUTRAL_FACT — fakta om zenvia
FALLBACK — allt annat

Returnera endast intent-namnet.
`

// Classifier maps a visitor message to an Intent using the LLM. Output is
// parsed strictly; anything outside the closed label set becomes FALLBACK.
type Classifier struct {
	llm     LLMClient
	model   string
	timeout time.Duration
}

// NewClassifier creates an LLM-backed intent classifier.
func NewClassifier(llm LLMClient, model string, timeout time.Duration) *Classifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Classifier{llm: llm, model: model, timeout: timeout}
}

// Classify returns the intent label for message. Errors are returned to the
// caller, which degrades to a fallback reply rather than failing the request.
func (c *Classifier) Classify(ctx context.Context, message string) (Intent, error) {
	classifyCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.llm.Complete(classifyCtx, LLMRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: ChatRoleSystem, Content: classifierSystemPrompt},
			{Role: ChatRoleUser, Content: classifierPrompt},
			{Role: ChatRoleUser, Content: message},
		},
		MaxTokens:   10,
		Temperature: 0,
	})
	if err != nil {
		return IntentFallback, err
	}
	return ParseIntent(resp.Text), nil
}
