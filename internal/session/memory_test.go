package session

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStoreLazyCreate(t *testing.T) {
	store := NewMemoryStore()

	s, err := store.Get(context.Background(), "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.ID != "abc" {
		t.Errorf("ID = %q, want abc", s.ID)
	}
	if s.CTACooldown != 0 || s.PendingNeed || s.Industry != "" || s.MessageIndex != 0 {
		t.Errorf("expected all-default session, got %+v", s)
	}
	if s.LastBookingTurn >= 0 {
		t.Errorf("LastBookingTurn = %d, want far in the past", s.LastBookingTurn)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestMemoryStoreGetReturnsSnapshot(t *testing.T) {
	store := NewMemoryStore()

	s1, _ := store.Get(context.Background(), "abc")
	s1.CTACooldown = 99
	s1.RecordPick("fallback", "x")

	s2, _ := store.Get(context.Background(), "abc")
	if s2.CTACooldown != 0 {
		t.Errorf("mutating a snapshot leaked into the store: cooldown = %d", s2.CTACooldown)
	}
	if s2.LastPick("fallback") != "" {
		t.Error("mutating a snapshot's variation map leaked into the store")
	}
}

func TestMemoryStoreUpdatePersists(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Update(context.Background(), "abc", func(s *Session) error {
		s.MessageIndex++
		s.PendingNeed = true
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	s, _ := store.Get(context.Background(), "abc")
	if s.MessageIndex != 1 || !s.PendingNeed {
		t.Errorf("update not persisted: %+v", s)
	}
}

func TestMemoryStoreUpdateSerialized(t *testing.T) {
	store := NewMemoryStore()

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Update(context.Background(), "abc", func(s *Session) error {
				s.MessageIndex++
				return nil
			})
		}()
	}
	wg.Wait()

	s, _ := store.Get(context.Background(), "abc")
	if s.MessageIndex != workers {
		t.Errorf("MessageIndex = %d, want %d (lost updates)", s.MessageIndex, workers)
	}
}

func TestSetIndustryFirstWins(t *testing.T) {
	s := New("abc")
	s.SetIndustry("video")
	s.SetIndustry("crm")
	if s.Industry != "video" {
		t.Errorf("Industry = %q, want video (first detection wins)", s.Industry)
	}
}
