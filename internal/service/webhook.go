package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/ledgermatch/internal/domain"
	"github.com/efreitasn/ledgermatch/internal/ledger"
	"github.com/efreitasn/ledgermatch/internal/store"
)

// Valid webhook event types.
var validWebhookEvents = map[string]bool{
	domain.EventOrderPlaced:    true,
	domain.EventTradeExecuted:  true,
	domain.EventOrderCancelled: true,
}

// UpsertWebhookRequest represents the input for webhook registration.
type UpsertWebhookRequest struct {
	AccountID string
	URL       string
	Events    []string
}

// WebhookService handles webhook CRUD and event dispatch.
type WebhookService struct {
	store  *store.WebhookStore
	ledger *ledger.Ledger
	client *http.Client
}

// NewWebhookService creates a new WebhookService with the given
// dispatch timeout.
func NewWebhookService(webhookStore *store.WebhookStore, l *ledger.Ledger, timeout time.Duration) *WebhookService {
	return &WebhookService{
		store:  webhookStore,
		ledger: l,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Upsert validates the request and creates or updates webhook
// subscriptions. Returns the resulting webhooks and whether any new
// subscriptions were created.
func (s *WebhookService) Upsert(req UpsertWebhookRequest) ([]*domain.Webhook, bool, error) {
	if !s.ledger.Exists(req.AccountID) {
		return nil, false, domain.ErrAccountNotFound
	}

	if req.URL == "" {
		return nil, false, &domain.ValidationError{Message: "url is required"}
	}
	if len(req.URL) > 2048 {
		return nil, false, &domain.ValidationError{Message: "url must be at most 2048 characters"}
	}
	parsed, err := url.ParseRequestURI(req.URL)
	if err != nil || !parsed.IsAbs() {
		return nil, false, &domain.ValidationError{Message: "url must be a valid absolute URL"}
	}
	if parsed.Scheme != "https" {
		return nil, false, &domain.ValidationError{Message: "url must use https scheme"}
	}

	if len(req.Events) == 0 {
		return nil, false, &domain.ValidationError{Message: "events must be a non-empty array"}
	}

	// Deduplicate events while preserving order and validating.
	seen := make(map[string]bool, len(req.Events))
	dedupedEvents := make([]string, 0, len(req.Events))
	for _, event := range req.Events {
		if !validWebhookEvents[event] {
			return nil, false, &domain.ValidationError{
				Message: "Unknown event type: " + event + ". Must be one of: order.placed, trade.executed, order.cancelled",
			}
		}
		if !seen[event] {
			seen[event] = true
			dedupedEvents = append(dedupedEvents, event)
		}
	}

	now := time.Now().UTC().Truncate(time.Second)
	anyCreated := false
	webhooks := make([]*domain.Webhook, 0, len(dedupedEvents))

	for _, event := range dedupedEvents {
		w := &domain.Webhook{
			WebhookID: uuid.New().String(),
			AccountID: req.AccountID,
			Event:     event,
			URL:       req.URL,
			CreatedAt: now,
			UpdatedAt: now,
		}

		created := s.store.Upsert(w)
		if created {
			anyCreated = true
			webhooks = append(webhooks, w)
		} else {
			existing := s.store.GetByAccountEvent(req.AccountID, event)
			if existing != nil {
				webhooks = append(webhooks, existing)
			}
		}
	}

	return webhooks, anyCreated, nil
}

// List validates the account exists and returns its webhook
// subscriptions.
func (s *WebhookService) List(accountID string) ([]*domain.Webhook, error) {
	if !s.ledger.Exists(accountID) {
		return nil, domain.ErrAccountNotFound
	}
	return s.store.ListByAccount(accountID), nil
}

// Delete removes a webhook subscription by ID.
func (s *WebhookService) Delete(webhookID string) error {
	return s.store.Delete(webhookID)
}

// eventPayload is the common webhook delivery envelope.
type eventPayload struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data"`
}

// DispatchOrderPlaced notifies the order's owner. Fire-and-forget.
func (s *WebhookService) DispatchOrderPlaced(event domain.OrderPlacedEvent) {
	s.dispatch(event.Owner, domain.EventOrderPlaced, event)
}

// DispatchTradeExecuted notifies both the buyer and the seller.
// Fire-and-forget.
func (s *WebhookService) DispatchTradeExecuted(event domain.TradeExecutedEvent) {
	s.dispatch(event.Buyer, domain.EventTradeExecuted, event)
	if event.Seller != event.Buyer {
		s.dispatch(event.Seller, domain.EventTradeExecuted, event)
	}
}

// DispatchOrderCancelled notifies the order's owner, including the
// refunded amount (zero for sells). Fire-and-forget.
func (s *WebhookService) DispatchOrderCancelled(event domain.OrderCancelledEvent) {
	s.dispatch(event.Owner, domain.EventOrderCancelled, event)
}

func (s *WebhookService) dispatch(accountID, event string, data any) {
	wh := s.store.GetByAccountEvent(accountID, event)
	if wh == nil {
		return
	}

	payload := eventPayload{
		Event:     event,
		Timestamp: time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		Data:      data,
	}

	go s.deliver(wh, event, payload)
}

// deliver sends the webhook payload via HTTP POST with the delivery
// headers. Errors are silently ignored (fire-and-forget).
func (s *WebhookService) deliver(wh *domain.Webhook, eventType string, payload eventPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", uuid.New().String())
	req.Header.Set("X-Webhook-Id", wh.WebhookID)
	req.Header.Set("X-Event-Type", eventType)

	resp, err := s.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
