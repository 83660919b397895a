// Package chat implements the Zenvia sales assistant: intent routing,
// per-session CTA gating, reply variation and composition.
package chat

import "strings"

// Intent is a closed-vocabulary label describing the conversational purpose
// of a visitor message. Labels come from the external classifier or from a
// pre-classified frontend button.
type Intent string

const (
	IntentSmalltalk          Intent = "SMALLTALK"
	IntentThankYou           Intent = "THANK_YOU"
	IntentCompliment         Intent = "COMPLIMENT"
	IntentInsult             Intent = "INSULT"
	IntentAIIdentity         Intent = "AI_IDENTITY"
	IntentBotOrigin          Intent = "BOT_ORIGIN"
	IntentExperience         Intent = "EXPERIENCE"
	IntentCompanyAge         Intent = "COMPANY_AGE"
	IntentWhereAreYou        Intent = "WHERE_ARE_YOU"
	IntentHumanHandoff       Intent = "HUMAN_HANDOFF"
	IntentPricingQuestion    Intent = "PRICING_QUESTION"
	IntentPricingPackage     Intent = "PRICING_PACKAGE"
	IntentProcessExplanation Intent = "PROCESS_EXPLANATION"
	IntentExpectationMgmt    Intent = "EXPECTATION_MANAGEMENT"
	IntentHowCanYouHelp      Intent = "HOW_CAN_YOU_HELP"
	IntentVideoNeed          Intent = "VIDEO_NEED"
	IntentBusinessNeed       Intent = "BUSINESS_NEED"
	IntentCTADirect          Intent = "CTA_DIRECT"
	IntentUncertainNeed      Intent = "UNCERTAIN_NEED"
	IntentGenericService     Intent = "GENERIC_SERVICE_REQUEST"
	IntentProblemMode        Intent = "PROBLEM_MODE"
	IntentNeedsExamples      Intent = "NEEDS_EXAMPLES"
	IntentOffTopic           Intent = "OFF_TOPIC"
	IntentEmojiReaction      Intent = "EMOJI_REACTION"
	IntentAcknowledgement    Intent = "ACKNOWLEDGEMENT"
	IntentLongMessage        Intent = "LONG_MESSAGE_SUMMARY"
	IntentUnintelligible     Intent = "NON_HUMAN_UNINTELLIGIBLE"
	IntentNeutralFact        Intent = "NEUTRAL_FACT"
	IntentFallback           Intent = "FALLBACK"
)

var knownIntents = map[Intent]struct{}{
	IntentSmalltalk:          {},
	IntentThankYou:           {},
	IntentCompliment:         {},
	IntentInsult:             {},
	IntentAIIdentity:         {},
	IntentBotOrigin:          {},
	IntentExperience:         {},
	IntentCompanyAge:         {},
	IntentWhereAreYou:        {},
	IntentHumanHandoff:       {},
	IntentPricingQuestion:    {},
	IntentPricingPackage:     {},
	IntentProcessExplanation: {},
	IntentExpectationMgmt:    {},
	IntentHowCanYouHelp:      {},
	IntentVideoNeed:          {},
	IntentBusinessNeed:       {},
	IntentCTADirect:          {},
	IntentUncertainNeed:      {},
	IntentGenericService:     {},
	IntentProblemMode:        {},
	IntentNeedsExamples:      {},
	IntentOffTopic:           {},
	IntentEmojiReaction:      {},
	IntentAcknowledgement:    {},
	IntentLongMessage:        {},
	IntentUnintelligible:     {},
	IntentNeutralFact:        {},
	IntentFallback:           {},
}

// ParseIntent normalizes a raw label into a known Intent. Anything outside
// the closed set maps to FALLBACK.
func ParseIntent(raw string) Intent {
	label := Intent(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := knownIntents[label]; ok {
		return label
	}
	return IntentFallback
}
