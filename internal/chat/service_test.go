package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/zenvia-world/zenvia-chat/internal/session"
	"github.com/zenvia-world/zenvia-chat/pkg/logging"
)

func newTestService(t *testing.T, classifierLLM, generatorLLM LLMClient) (*Service, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	var classifier *Classifier
	if classifierLLM != nil {
		classifier = NewClassifier(classifierLLM, "test-model", time.Second)
	}
	svc := NewService(ServiceConfig{
		Store:            store,
		Engine:           NewCTAEngine(PolicyCooldown, 3, 3),
		Composer:         NewComposer(""),
		Classifier:       classifier,
		Generator:        generatorLLM,
		GeneratorModel:   "test-model",
		LLMTimeout:       time.Second,
		DefaultSessionID: "default",
		Logger:           logging.NewWithWriter("error", io.Discard),
	})
	return svc, store
}

func TestRespondEmptyMessageLeavesSessionUntouched(t *testing.T) {
	svc, store := newTestService(t, &stubLLM{text: "SMALLTALK"}, nil)

	resp, err := svc.Respond(context.Background(), Request{Message: "   ", SessionID: "s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reply != emptyMessagePrompt {
		t.Fatalf("got %q, want %q", resp.Reply, emptyMessagePrompt)
	}
	if store.Len() != 0 {
		t.Fatalf("empty message must not create a session, store has %d", store.Len())
	}
}

func TestRespondBusinessNeedTwoStep(t *testing.T) {
	llm := &stubLLM{text: "BUSINESS_NEED"}
	svc, store := newTestService(t, llm, nil)
	ctx := context.Background()

	// First need turn: clarifying question, no booking token.
	resp, err := svc.Respond(ctx, Request{Message: "vi behöver marknadsföring", SessionID: "s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(resp.Reply, "{{BOOK_CALL}}") {
		t.Fatalf("clarify turn must not carry the token: %q", resp.Reply)
	}
	found := false
	for _, q := range businessNeedQuestions {
		if resp.Reply == q {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("clarify reply %q is not a business-need question", resp.Reply)
	}

	sess, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.PendingNeed {
		t.Fatalf("clarify turn must set PendingNeed")
	}
	if sess.CTACooldown != 0 {
		t.Fatalf("clarify turn must leave cooldown untouched, got %d", sess.CTACooldown)
	}

	// Second need turn: close with the token.
	resp, err = svc.Respond(ctx, Request{Message: "framförallt fler kunder", SessionID: "s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Reply, "{{BOOK_CALL}}") {
		t.Fatalf("close turn must carry the token: %q", resp.Reply)
	}
	if !strings.Contains(resp.Reply, businessNeedCloseReply) {
		t.Fatalf("close turn must use the close copy: %q", resp.Reply)
	}

	sess, _ = store.Get(ctx, "s1")
	if sess.PendingNeed {
		t.Fatalf("close turn must clear PendingNeed")
	}
}

func TestRespondBusinessNeedVideoClarifyGetsCTA(t *testing.T) {
	llm := &stubLLM{text: "BUSINESS_NEED"}
	svc, _ := newTestService(t, llm, nil)

	resp, err := svc.Respond(context.Background(), Request{Message: "vi behöver en reklamvideo", SessionID: "s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Reply, businessNeedVideoReply) {
		t.Fatalf("video need must use the video copy: %q", resp.Reply)
	}
	if !strings.Contains(resp.Reply, "{{BOOK_CALL}}") {
		t.Fatalf("video clarify turn is CTA-eligible: %q", resp.Reply)
	}
}

func TestRespondBusinessNeedAutomationClarify(t *testing.T) {
	llm := &stubLLM{text: "BUSINESS_NEED"}
	svc, _ := newTestService(t, llm, nil)

	resp, err := svc.Respond(context.Background(), Request{Message: "vi vill automatisera fakturering", SessionID: "s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reply != businessNeedAutomationReply {
		t.Fatalf("got %q, want %q", resp.Reply, businessNeedAutomationReply)
	}
}

func TestRespondCooldownCycle(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	ctx := context.Background()

	send := func() string {
		t.Helper()
		resp, err := svc.Respond(ctx, Request{
			Message:   "vad kostar det?",
			SessionID: "s1",
			Intent:    "PRICING_QUESTION",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return resp.Reply
	}

	if !strings.Contains(send(), "{{BOOK_CALL}}") {
		t.Fatalf("turn 1: expected CTA attached")
	}
	for turn := 2; turn <= 4; turn++ {
		if strings.Contains(send(), "{{BOOK_CALL}}") {
			t.Fatalf("turn %d: expected CTA suppressed during cooldown", turn)
		}
	}
	if !strings.Contains(send(), "{{BOOK_CALL}}") {
		t.Fatalf("turn 5: expected CTA attached after cooldown drained")
	}
}

func TestRespondGeneratedTokenAppearsExactlyOnce(t *testing.T) {
	generator := &stubLLM{text: "Vi hjälper gärna! {{BOOK_CALL}}\n\nHör av dig. {{BOOK_CALL}}"}
	svc, _ := newTestService(t, nil, generator)

	resp, err := svc.Respond(context.Background(), Request{
		Message:   "berätta mer om er",
		SessionID: "s1",
		Intent:    "FALLBACK",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(resp.Reply, "{{BOOK_CALL}}"); n != 1 {
		t.Fatalf("token must appear exactly once, got %d in %q", n, resp.Reply)
	}
}

func TestRespondGeneratedWithoutTokenPassesThrough(t *testing.T) {
	generator := &stubLLM{text: "Vi jobbar med AI och automation."}
	svc, store := newTestService(t, nil, generator)

	resp, err := svc.Respond(context.Background(), Request{
		Message:   "vad gör ni egentligen?",
		SessionID: "s1",
		Intent:    "FALLBACK",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reply != "Vi jobbar med AI och automation." {
		t.Fatalf("got %q", resp.Reply)
	}

	// No marker means no CTA evaluation, so cooldown state is untouched.
	sess, _ := store.Get(context.Background(), "s1")
	if sess.CTACooldown != 0 {
		t.Fatalf("no-marker generation must not touch cooldown, got %d", sess.CTACooldown)
	}
}

func TestRespondGeneratedTokenIsGated(t *testing.T) {
	generator := &stubLLM{text: "Absolut! {{BOOK_CALL}}"}
	svc, _ := newTestService(t, nil, generator)
	ctx := context.Background()

	send := func() string {
		t.Helper()
		resp, err := svc.Respond(ctx, Request{Message: "hjälp oss", SessionID: "s1", Intent: "FALLBACK"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return resp.Reply
	}

	if !strings.Contains(send(), "{{BOOK_CALL}}") {
		t.Fatalf("first marker-bearing generation should attach")
	}
	// Inside the cooldown the marker is stripped, not passed through.
	reply := send()
	if strings.Contains(reply, "{{BOOK_CALL}}") {
		t.Fatalf("generator marker must not bypass the engine: %q", reply)
	}
	if !strings.Contains(reply, "Absolut!") {
		t.Fatalf("base text must survive the strip: %q", reply)
	}
}

func TestRespondClassifierFailureDegradesToFallback(t *testing.T) {
	llm := &stubLLM{err: errors.New("upstream down")}
	svc, store := newTestService(t, llm, nil)

	resp, err := svc.Respond(context.Background(), Request{Message: "vad kostar en hemsida?", SessionID: "s1"})
	if err != nil {
		t.Fatalf("classifier failure must not fail the request: %v", err)
	}
	found := false
	for _, f := range fallbacks {
		if resp.Reply == f {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("reply %q is not a scripted fallback", resp.Reply)
	}

	// The session still advances on a failed classification.
	sess, _ := store.Get(context.Background(), "s1")
	if sess.MessageIndex != 1 {
		t.Fatalf("expected MessageIndex=1, got %d", sess.MessageIndex)
	}
}

func TestRespondGeneratorFailureUsesCannedFallback(t *testing.T) {
	generator := &stubLLM{err: errors.New("upstream down")}
	svc, _ := newTestService(t, nil, generator)

	resp, err := svc.Respond(context.Background(), Request{
		Message:   strings.Repeat("vi har många utmaningar. ", 20),
		SessionID: "s1",
		Intent:    "LONG_MESSAGE_SUMMARY",
	})
	if err != nil {
		t.Fatalf("generator failure must not fail the request: %v", err)
	}
	if resp.Reply != routes[IntentLongMessage].fallback {
		t.Fatalf("got %q, want canned long-message fallback", resp.Reply)
	}
}

func TestRespondGreetingSkipsClassifier(t *testing.T) {
	llm := &stubLLM{text: "OFF_TOPIC"}
	svc, _ := newTestService(t, llm, nil)

	resp, err := svc.Respond(context.Background(), Request{Message: "Hej!", SessionID: "s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if llm.calls != 0 {
		t.Fatalf("greeting must not reach the classifier, got %d calls", llm.calls)
	}
	if resp.Reply != routes[IntentSmalltalk].text {
		t.Fatalf("got %q, want smalltalk reply", resp.Reply)
	}
}

func TestRespondPreClassifiedSkipsClassifier(t *testing.T) {
	llm := &stubLLM{text: "OFF_TOPIC"}
	svc, _ := newTestService(t, llm, nil)

	resp, err := svc.Respond(context.Background(), Request{
		Message:   "boka möte",
		SessionID: "s1",
		Intent:    "CTA_DIRECT",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if llm.calls != 0 {
		t.Fatalf("pre-classified request must not reach the classifier, got %d calls", llm.calls)
	}
	if !strings.Contains(resp.Reply, "{{BOOK_CALL}}") {
		t.Fatalf("CTA_DIRECT on a fresh session must attach: %q", resp.Reply)
	}
}

func TestRespondDefaultSessionID(t *testing.T) {
	svc, store := newTestService(t, nil, nil)

	_, err := svc.Respond(context.Background(), Request{Message: "ok", Intent: "ACKNOWLEDGEMENT"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess, err := store.Get(context.Background(), "default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.MessageIndex != 1 {
		t.Fatalf("expected the default session to advance, got index %d", sess.MessageIndex)
	}
}

func TestRespondRotatingListNeverRepeats(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	ctx := context.Background()

	last := ""
	for i := 0; i < 50; i++ {
		resp, err := svc.Respond(ctx, Request{Message: "vad tycker du om vädret?", SessionID: "s1", Intent: "OFF_TOPIC"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Reply == last {
			t.Fatalf("iteration %d: off-topic reply repeated: %q", i, resp.Reply)
		}
		last = resp.Reply
	}
}

func TestRespondTracksIndustryAndHeat(t *testing.T) {
	svc, store := newTestService(t, nil, nil)
	ctx := context.Background()

	_, err := svc.Respond(ctx, Request{Message: "vad kostar en hemsida?", SessionID: "s1", Intent: "PRICING_QUESTION"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess, _ := store.Get(ctx, "s1")
	if sess.Industry != IndustryWebsite {
		t.Fatalf("expected industry %q, got %q", IndustryWebsite, sess.Industry)
	}
	if sess.HeatScore != 2 {
		t.Fatalf("expected heat 2 from %q, got %d", "kostar", sess.HeatScore)
	}
	if sess.LastIntent != string(IntentPricingQuestion) {
		t.Fatalf("expected last intent recorded, got %q", sess.LastIntent)
	}
}
