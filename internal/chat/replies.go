package chat

// Rotating list keys stored per session so consecutive picks never repeat.
const (
	listCTA          = "cta"
	listFallback     = "fallback"
	listBusinessNeed = "business_need"
	listOffTopic     = "off_topic"
	listExperience   = "experience"
)

const emptyMessagePrompt = "Skriv gärna något 😊"

const zenviaFacts = `Zenvia grundades 2025 i Göteborg.
Vi arbetar med AI, automation, webbdesign, marknadsföring, kunderflöden och digital tillväxt.
Vårt mål är att göra företagsdrift enklare, modern, skalbar och automatiserad.`

// ctaResponses are the rotated soft-pitch lines appended before the booking
// token.
var ctaResponses = []string{
	"Såklart – vi kan gå igenom allt under en konsultation. Boka gärna en tid här:",
	"Absolut! Vi visar er gärna allt i detalj under en kort konsultation. Tryck på knappen nedan:",
	"Självklart, det går vi igenom tillsammans. Boka gärna en konsultation här:",
	"Givetvis – under konsultationen visar vi exakt hur vi kan hjälpa er. Här kan du boka:",
	"Toppen! Vi tar allt steg för steg under en konsultation. Boka gärna med knappen under:",
	"Självklart, vi visar allt när vi pratar igenom upplägget. Boka här:",
}

var fallbacks = []string{
	"Jag tror jag förstår – vill du beskriva lite mer så hänger jag bättre med?",
	"Kan du utveckla det lite? Då kan jag guida dig vidare.",
	"Fattar! Säg gärna lite mer så hjälper jag dig vidare.",
	"Jag är med – vill du förklara lite mer?",
	"Okej! Berätta lite mer så fortsätter vi.",
}

var businessNeedQuestions = []string{
	"Spännande – vad vill ni uppnå just nu? Fler kunder, fler bokningar eller bättre struktur?",
	"Grymt! Vad är huvudmålet – fler kunder, starkare struktur eller bättre bokningar?",
	"Förstår! Vad är viktigast att förbättra – kundflöde, bokningar eller interna rutiner?",
	"Kul att höra! Vad vill ni fokusera på: kunder, bokningar eller effektivitet?",
	"Låter bra! Är målet fler kunder, bättre struktur eller något annat?",
	"Absolut! Vad vill ni utveckla mest – marknadsföring, bokningar eller företagets struktur?",
}

var offTopicReplies = []string{
	"Låt oss hålla oss till frågor som rör Zenvia – vad vill du utforska vidare?",
	"Jag fokuserar på Zenvias tjänster. Vill du prata AI, hemsidor eller marknadsföring?",
	"Jag hjälper dig gärna med Zenvia-relaterade frågor – vad funderar du på?",
	"Låt oss fokusera på det jag kan hjälpa dig med: AI, hemsidor, marknadsföring eller automation.",
}

var experienceReplies = []string{
	"Vi har erfarna utvecklare och designers inom AI, webbutveckling, video, marknadsföring och automatisering.",
	"Vårt team har lång erfarenhet inom AI, webb, marknadsföring, design och automation.",
	"Vi jobbar med AI-system, hemsidor, marknadsföring, video och automation – med fokus på resultat.",
}

// Business-need clarify-turn copy.
const (
	businessNeedVideoReply      = "Ja! Vi kan skapa reklamvideor, redigera material och producera AI-video. Boka konsultation här:"
	businessNeedAutomationReply = "Vill ni främst spara tid, få mer struktur eller automatisera arbetsflöden?"
	businessNeedCloseReply      = "Grymt – då kan vi planera nästa steg!"
)

// generatorSystemPrompt frames delegated replies. The generator may include
// the booking marker on its own; the composer treats that as an eligibility
// signal, never as a final decision.
const generatorSystemPrompt = `Du är Zenvias AI-assistent på www.zenvia.world.
Svara kort, varmt och naturligt på svenska. Håll dig till Zenvias tjänster:
AI, automation, webbdesign, marknadsföring, video och kundflöden.

Fakta om Zenvia (använd endast vid behov):
` + zenviaFacts

type routeKind int

const (
	routeCanned routeKind = iota
	routeRotating
	routeCTA
	routeBusinessNeed
	routeGenerate
)

// route maps an intent to a response-construction strategy: a fixed canned
// reply, a rotating list, a CTA-eligible reply gated by the engine, the
// business-need protocol, or delegation to the generator.
type route struct {
	kind     routeKind
	text     string
	list     string
	fallback string // canned text used when generation fails
}

var routes = map[Intent]route{
	IntentSmalltalk:       {kind: routeCanned, text: "Jag är här! Hur kan jag hjälpa dig vidare?"},
	IntentThankYou:        {kind: routeCanned, text: "Tack själv! Hur kan jag hjälpa dig vidare?"},
	IntentCompliment:      {kind: routeCanned, text: "Tack! Säg gärna vad du vill utforska så hjälper jag dig."},
	IntentInsult:          {kind: routeCanned, text: "Jag tar inget personligt – hur kan jag hjälpa dig med Zenvia?"},
	IntentAIIdentity:      {kind: routeCanned, text: "Jag är en AI skapad av Zenvias utvecklare för att hjälpa företag."},
	IntentBotOrigin:       {kind: routeCanned, text: "Jag skapades av en av Zenvias utvecklare som del av våra AI-system."},
	IntentExperience:      {kind: routeRotating, list: listExperience},
	IntentCompanyAge:      {kind: routeCanned, text: "Zenvia grundades 2025 i Göteborg. Vi hjälper företag med AI, automation, hemsidor och marknadsföring."},
	IntentWhereAreYou:     {kind: routeCanned, text: "Just nu finns vi bara på www.zenvia.world."},
	IntentHumanHandoff:    {kind: routeCTA, text: "Självklart! Du kan prata med en människa genom att boka en konsultation här:"},
	IntentPricingQuestion: {kind: routeCTA, text: "Priser varierar efter behov – vi går igenom allt i en konsultation:"},
	IntentPricingPackage:  {kind: routeCTA, text: "Vi skräddarsyr paket efter behov – boka en konsultation så tar vi det därifrån:"},
	IntentProcessExplanation: {kind: routeCanned,
		text: "Vi börjar med en kort konsultation där vi går igenom ert behov, och därefter skapar vi en skräddarsydd AI- eller marknadsföringslösning."},
	IntentExpectationMgmt: {kind: routeCTA, text: "Vi arbetar datadrivet och fokuserar på resultat. Boka en konsultation så ser vi vad som är möjligt:"},
	IntentHowCanYouHelp:   {kind: routeCanned, text: "Vi hjälper företag växa med AI-chattbotar, marknadsföring, hemsidor och automation. Vad vill ni förbättra?"},
	IntentVideoNeed:       {kind: routeCTA, text: "Ja! Vi kan skapa reklamvideor, redigera material och även producera AI-genererade videor. Boka konsultation här:"},
	IntentBusinessNeed:    {kind: routeBusinessNeed},
	IntentCTADirect:       {kind: routeCTA, text: "Det löser vi! Boka gärna en konsultation så sätter vi planen:"},
	IntentUncertainNeed:   {kind: routeCTA, text: "Ingen fara – det är precis det konsultationen är till för. Boka gärna här så tar vi det steg för steg:"},
	IntentGenericService:  {kind: routeCanned, text: "Vi hjälper med många digitala tjänster. Beskriv gärna lite mer så ser vi hur vi kan hjälpa er."},
	IntentProblemMode:     {kind: routeCanned, text: "Förstår – många företag känner igen sig i det. Vad vill ni förbättra först: fler kunder, automatisering eller hemsidan?"},
	IntentNeedsExamples:   {kind: routeCTA, text: "Såklart – vi kan visa exempel under konsultationen. Boka gärna här:"},
	IntentOffTopic:        {kind: routeRotating, list: listOffTopic},
	IntentEmojiReaction:   {kind: routeCanned, text: "Toppen! Hur vill du gå vidare?"},
	IntentAcknowledgement: {kind: routeCanned, text: "Toppen! Hur vill du gå vidare?"},
	IntentLongMessage: {kind: routeGenerate,
		fallback: "Tack för att du delar! Vill du att jag sammanfattar eller vill du förklara vad du vill förbättra först?"},
	IntentUnintelligible: {kind: routeCanned, text: "Jag hängde inte riktigt med – kan du formulera det på ett annat sätt?"},
	IntentNeutralFact:    {kind: routeCanned, text: zenviaFacts},
	IntentFallback:       {kind: routeGenerate, list: listFallback},
}

// rotatingLists resolves a list key to its contents.
var rotatingLists = map[string][]string{
	listCTA:          ctaResponses,
	listFallback:     fallbacks,
	listBusinessNeed: businessNeedQuestions,
	listOffTopic:     offTopicReplies,
	listExperience:   experienceReplies,
}
