package store

import (
	"errors"
	"testing"
	"time"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

func newWebhook(id, account, event, url string) *domain.Webhook {
	now := time.Now().UTC()
	return &domain.Webhook{
		WebhookID: id,
		AccountID: account,
		Event:     event,
		URL:       url,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestWebhookStoreUpsertCreates(t *testing.T) {
	s := NewWebhookStore()

	created := s.Upsert(newWebhook("wh-1", "alice", domain.EventTradeExecuted, "https://a.example/hook"))
	if !created {
		t.Error("expected first upsert to create")
	}
	if got := s.GetByAccountEvent("alice", domain.EventTradeExecuted); got == nil || got.WebhookID != "wh-1" {
		t.Errorf("GetByAccountEvent = %+v", got)
	}
}

func TestWebhookStoreUpsertUpdatesURL(t *testing.T) {
	s := NewWebhookStore()
	s.Upsert(newWebhook("wh-1", "alice", domain.EventTradeExecuted, "https://a.example/hook"))

	created := s.Upsert(newWebhook("wh-2", "alice", domain.EventTradeExecuted, "https://b.example/hook"))
	if created {
		t.Error("expected upsert of existing pair to update, not create")
	}

	got := s.GetByAccountEvent("alice", domain.EventTradeExecuted)
	if got.WebhookID != "wh-1" {
		t.Errorf("webhook id changed to %q, want stable wh-1", got.WebhookID)
	}
	if got.URL != "https://b.example/hook" {
		t.Errorf("URL = %q, want updated", got.URL)
	}
}

func TestWebhookStoreListByAccount(t *testing.T) {
	s := NewWebhookStore()
	s.Upsert(newWebhook("wh-1", "alice", domain.EventTradeExecuted, "https://a.example/hook"))
	s.Upsert(newWebhook("wh-2", "alice", domain.EventOrderCancelled, "https://a.example/hook"))
	s.Upsert(newWebhook("wh-3", "bob", domain.EventTradeExecuted, "https://b.example/hook"))

	if got := s.ListByAccount("alice"); len(got) != 2 {
		t.Errorf("expected 2 webhooks for alice, got %d", len(got))
	}
	if got := s.ListByAccount("nobody"); len(got) != 0 {
		t.Errorf("expected 0 webhooks, got %d", len(got))
	}
}

func TestWebhookStoreDelete(t *testing.T) {
	s := NewWebhookStore()
	s.Upsert(newWebhook("wh-1", "alice", domain.EventTradeExecuted, "https://a.example/hook"))

	if err := s.Delete("wh-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.GetByAccountEvent("alice", domain.EventTradeExecuted); got != nil {
		t.Error("webhook still resolvable after delete")
	}
	if err := s.Delete("wh-1"); !errors.Is(err, domain.ErrWebhookNotFound) {
		t.Errorf("expected ErrWebhookNotFound, got %v", err)
	}
}
