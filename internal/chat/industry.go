package chat

import "strings"

// Industry tags detected from visitor messages. Tag names mirror the service
// taxonomy the sales team reports on.
const (
	IndustryGoogleAds  = "google_ads"
	IndustryMetaAds    = "meta_ads"
	IndustryWebsite    = "website"
	IndustryAutomation = "automation"
	IndustryCRM        = "crm"
	IndustryVideo      = "video"
	IndustryChatbot    = "chatbot"
)

// DetectIndustry keyword-matches free text against the service taxonomy and
// returns the first matching tag, or "" when nothing matches. Matching is
// ordered: the more specific ad platforms win over generic terms.
func DetectIndustry(message string) string {
	m := strings.ToLower(message)

	if strings.Contains(m, "google") && (strings.Contains(m, "ads") || strings.Contains(m, "reklam")) {
		return IndustryGoogleAds
	}
	if strings.Contains(m, "meta") ||
		(strings.Contains(m, "facebook") && strings.Contains(m, "annons")) ||
		(strings.Contains(m, "instagram") && strings.Contains(m, "annons")) {
		return IndustryMetaAds
	}
	if strings.Contains(m, "hemsida") || strings.Contains(m, "web") || strings.Contains(m, "webbplats") {
		return IndustryWebsite
	}
	if strings.Contains(m, "automation") || strings.Contains(m, "automatisera") {
		return IndustryAutomation
	}
	if strings.Contains(m, "crm") || strings.Contains(m, "kundsystem") {
		return IndustryCRM
	}
	if strings.Contains(m, "video") || strings.Contains(m, "reklamvideo") || strings.Contains(m, "videoredigering") {
		return IndustryVideo
	}
	if strings.Contains(m, "chattbot") || strings.Contains(m, "chatbot") {
		return IndustryChatbot
	}
	return ""
}

// heatKeywords weight purchase-intent signals. The accumulated score is
// informational context for the generator and the transcript log; it never
// gates CTA logic.
var heatKeywords = map[string]int{
	"pris":         2,
	"kostar":       2,
	"offert":       3,
	"boka":         3,
	"konsultation": 3,
	"fler kunder":  2,
	"bokningar":    2,
	"budget":       2,
	"start":        1,
	"hjälp":        1,
}

// ScoreHeat returns the purchase-intent score contribution of a message.
func ScoreHeat(message string) int {
	m := strings.ToLower(message)
	score := 0
	for kw, weight := range heatKeywords {
		if strings.Contains(m, kw) {
			score += weight
		}
	}
	return score
}
