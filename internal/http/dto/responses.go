package dto

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

// InvoiceResponse bundles an invoice with its line items.
type InvoiceResponse struct {
	Invoice any `json:"invoice"`
	Items   any `json:"items"`
}

// ReconciliationReport surfaces gap diagnostics next to a rendered
// document when the caller asks for them.
type ReconciliationReport struct {
	Regenerated bool `json:"regenerated"`
	Gaps        any  `json:"gaps,omitempty"`
}
