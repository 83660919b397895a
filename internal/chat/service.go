package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zenvia-world/zenvia-chat/internal/chatlog"
	"github.com/zenvia-world/zenvia-chat/internal/observability/metrics"
	"github.com/zenvia-world/zenvia-chat/internal/session"
	"github.com/zenvia-world/zenvia-chat/pkg/logging"
)

// Request is the inbound chat message.
type Request struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	// Intent optionally carries a pre-classified label from a frontend
	// button, bypassing the classifier.
	Intent string `json:"intent,omitempty"`
}

// Response is the outbound reply.
type Response struct {
	Reply string `json:"reply"`
}

// ServiceConfig wires the service dependencies.
type ServiceConfig struct {
	Store            session.Store
	Engine           *CTAEngine
	Composer         *Composer
	Classifier       *Classifier
	Generator        LLMClient // nil disables generator delegation
	GeneratorModel   string
	LLMTimeout       time.Duration
	DefaultSessionID string
	Recorder         *chatlog.Recorder
	Metrics          *metrics.ChatMetrics
	Logger           *logging.Logger
}

// Service routes classified messages to response strategies, consults the
// CTA engine, and composes the final reply. All session mutation for one
// request happens inside a single store Update, so per-session ordering
// follows request arrival order.
type Service struct {
	store            session.Store
	engine           *CTAEngine
	picker           *Picker
	composer         *Composer
	classifier       *Classifier
	generator        LLMClient
	generatorModel   string
	llmTimeout       time.Duration
	defaultSessionID string
	recorder         *chatlog.Recorder
	metrics          *metrics.ChatMetrics
	logger           *logging.Logger
}

// NewService creates the chat service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Composer == nil {
		cfg.Composer = NewComposer("")
	}
	if cfg.Engine == nil {
		cfg.Engine = NewCTAEngine(PolicyCooldown, 0, 0)
	}
	if cfg.DefaultSessionID == "" {
		cfg.DefaultSessionID = "default"
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 10 * time.Second
	}
	return &Service{
		store:            cfg.Store,
		engine:           cfg.Engine,
		picker:           NewPicker(),
		composer:         cfg.Composer,
		classifier:       cfg.Classifier,
		generator:        cfg.Generator,
		generatorModel:   cfg.GeneratorModel,
		llmTimeout:       cfg.LLMTimeout,
		defaultSessionID: cfg.DefaultSessionID,
		recorder:         cfg.Recorder,
		metrics:          cfg.Metrics,
		logger:           cfg.Logger,
	}
}

// greetings answered deterministically without a classifier round-trip.
var greetings = map[string]struct{}{
	"hej": {}, "hej!": {}, "hejsan": {}, "hallå": {}, "tjena": {}, "hi": {}, "hello": {},
}

func isGreeting(msg string) bool {
	_, ok := greetings[strings.ToLower(msg)]
	return ok
}

// Respond handles one visitor message end to end. The visitor always gets a
// plausible reply; classifier or generator failures degrade to scripted
// fallbacks and are only surfaced through logs and metrics.
func (s *Service) Respond(ctx context.Context, req Request) (Response, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		// Prompt for input without touching the session.
		return Response{Reply: emptyMessagePrompt}, nil
	}

	sid := req.SessionID
	if sid == "" {
		sid = s.defaultSessionID
	}

	intent, classified := s.resolveIntent(ctx, req, msg)

	var reply string
	updated, err := s.store.Update(ctx, sid, func(sess *session.Session) error {
		sess.MessageIndex++
		if tag := DetectIndustry(msg); tag != "" {
			sess.SetIndustry(tag)
		}
		sess.HeatScore += ScoreHeat(msg)
		sess.LastIntent = string(intent)

		if !classified {
			// Classifier failure: scripted fallback, session still advances.
			reply = s.rotate(sess, listFallback)
			return nil
		}
		reply = s.route(ctx, sess, intent, msg)
		return nil
	})
	if err != nil {
		s.logger.Error("session update failed", "session_id", sid, "error", err)
		return Response{Reply: s.picker.Pick(fallbacks, "")}, nil
	}

	s.metrics.ObserveMessage(string(intent))
	s.record(updated, msg, reply, intent)

	return Response{Reply: reply}, nil
}

// resolveIntent returns the intent for msg and whether classification
// succeeded. Pre-classified requests and trivial greetings skip the
// classifier entirely.
func (s *Service) resolveIntent(ctx context.Context, req Request, msg string) (Intent, bool) {
	if req.Intent != "" {
		return ParseIntent(req.Intent), true
	}
	if isGreeting(msg) {
		return IntentSmalltalk, true
	}
	if s.classifier == nil {
		return IntentFallback, true
	}

	start := time.Now()
	intent, err := s.classifier.Classify(ctx, msg)
	s.metrics.ObserveClassifierLatency(time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveLLMFailure("classify")
		s.logger.Error("intent classification failed", "error", err)
		return IntentFallback, false
	}
	return intent, true
}

// route produces the base reply for an intent and applies CTA gating. Runs
// under the session lock.
func (s *Service) route(ctx context.Context, sess *session.Session, intent Intent, msg string) string {
	r, ok := routes[intent]
	if !ok {
		r = routes[IntentFallback]
	}

	switch r.kind {
	case routeRotating:
		return s.rotate(sess, r.list)

	case routeCTA:
		return s.composeCTA(sess, r.text, s.engine.Evaluate(sess, true, sess.MessageIndex))

	case routeBusinessNeed:
		return s.routeBusinessNeed(sess, msg)

	case routeGenerate:
		return s.routeGenerate(ctx, sess, intent, msg, r)

	default:
		return r.text
	}
}

// routeBusinessNeed implements the two-turn clarify-then-close script. The
// video branch is CTA-eligible already on the clarify turn; automation gets
// its own clarifying question.
func (s *Service) routeBusinessNeed(sess *session.Session, msg string) string {
	clarify, decision := s.engine.EvaluateBusinessNeed(sess, sess.MessageIndex)
	if !clarify {
		return s.composeCTA(sess, businessNeedCloseReply, decision)
	}

	switch DetectIndustry(msg) {
	case IndustryVideo:
		return s.composeCTA(sess, businessNeedVideoReply, s.engine.Evaluate(sess, true, sess.MessageIndex))
	case IndustryAutomation:
		return businessNeedAutomationReply
	default:
		return s.rotate(sess, listBusinessNeed)
	}
}

// routeGenerate delegates to the external generator. Its output is untrusted:
// an embedded booking marker becomes an eligibility signal for the engine
// rather than reaching the frontend raw.
func (s *Service) routeGenerate(ctx context.Context, sess *session.Session, intent Intent, msg string, r route) string {
	if s.generator == nil {
		return s.generateFallback(sess, r)
	}

	text, err := s.generate(ctx, sess, intent, msg)
	if err != nil {
		s.metrics.ObserveLLMFailure("generate")
		s.logger.Error("reply generation failed", "error", err, "intent", string(intent))
		return s.generateFallback(sess, r)
	}

	base := s.composer.StripToken(text)
	if !s.composer.ContainsToken(text) {
		return base
	}
	return s.composeCTA(sess, base, s.engine.Evaluate(sess, true, sess.MessageIndex))
}

func (s *Service) generateFallback(sess *session.Session, r route) string {
	if r.fallback != "" {
		return r.fallback
	}
	list := r.list
	if list == "" {
		list = listFallback
	}
	return s.rotate(sess, list)
}

func (s *Service) generate(ctx context.Context, sess *session.Session, intent Intent, msg string) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	contextPrompt := fmt.Sprintf("Kontext: intent=%s, bransch=%s, heat=%d",
		intent, orDash(sess.Industry), sess.HeatScore)

	start := time.Now()
	resp, err := s.generator.Complete(genCtx, LLMRequest{
		Model: s.generatorModel,
		Messages: []ChatMessage{
			{Role: ChatRoleSystem, Content: generatorSystemPrompt},
			{Role: ChatRoleSystem, Content: contextPrompt},
			{Role: ChatRoleUser, Content: msg},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	})
	s.metrics.ObserveGeneratorLatency(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

// composeCTA builds the final text for a gated reply, rotating the soft-pitch
// line on attach and counting the outcome.
func (s *Service) composeCTA(sess *session.Session, base string, d Decision) string {
	if !d.Attached() {
		s.metrics.ObserveCTASuppressed(string(s.engine.policy))
		return s.composer.Compose(base, d, "")
	}
	s.metrics.ObserveCTAAttached(string(s.engine.policy))
	return s.composer.Compose(base, d, s.rotate(sess, listCTA))
}

// rotate picks from a rotating list, never repeating the session's previous
// pick from that list.
func (s *Service) rotate(sess *session.Session, list string) string {
	out := s.picker.Pick(rotatingLists[list], sess.LastPick(list))
	sess.RecordPick(list, out)
	return out
}

func (s *Service) record(sess *session.Session, msg, reply string, intent Intent) {
	if s.recorder == nil || sess == nil {
		return
	}
	s.recorder.Record(chatlog.Entry{
		SessionID: sess.ID,
		Sender:    chatlog.SenderUser,
		Message:   msg,
		HeatScore: sess.HeatScore,
		Intent:    string(intent),
		Industry:  sess.Industry,
	})
	s.recorder.Record(chatlog.Entry{
		SessionID: sess.ID,
		Sender:    chatlog.SenderBot,
		Message:   reply,
		HeatScore: sess.HeatScore,
		Intent:    string(intent),
		Industry:  sess.Industry,
	})
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
