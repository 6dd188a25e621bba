package sse

import (
	"time"

	"github.com/GTDGit/ecolux_api/internal/models"
)

// QuoteNotifier is the interface services use to emit quote events.
type QuoteNotifier interface {
	NotifyQuoteCreated(q *models.Quote)
	NotifyQuoteStatusChanged(q *models.Quote)
}

// HubNotifier implements QuoteNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
	now func() time.Time
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub, now: time.Now}
}

func (n *HubNotifier) NotifyQuoteCreated(q *models.Quote) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(n.quoteToEvent(EventQuoteCreated, q))
}

func (n *HubNotifier) NotifyQuoteStatusChanged(q *models.Quote) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(n.quoteToEvent(EventQuoteStatusChanged, q))
}

func (n *HubNotifier) quoteToEvent(eventType EventType, q *models.Quote) *QuoteEvent {
	ev := &QuoteEvent{
		Event:               eventType,
		QuoteID:             q.ID.String(),
		UserID:              q.UserID.String(),
		ProductID:           q.ProductID.String(),
		Status:              string(q.Status),
		TotalPrice:          q.TotalPrice,
		CO2Savings:          q.CO2Savings,
		SustainabilityScore: q.SustainabilityScore,
		Timestamp:           n.now(),
	}
	if q.Notes != "" {
		notes := q.Notes
		ev.Notes = &notes
	}
	return ev
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (NopNotifier) NotifyQuoteCreated(*models.Quote)       {}
func (NopNotifier) NotifyQuoteStatusChanged(*models.Quote) {}
