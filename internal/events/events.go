package events

import "context"

// Event types
const (
	EventCampaignStatusChanged = "campaign_status_changed"
	EventCampaignRenewed       = "campaign_renewed"
	EventInvoiceGenerated      = "invoice_generated"
	EventInvoiceOverdue        = "invoice_overdue"
	EventReconciliationGap     = "reconciliation_gap"
)

// StreamBilling is the pub/sub channel operator dashboards follow.
const StreamBilling = "events:billing"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
