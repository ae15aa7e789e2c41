package render

import (
	"github.com/ooh-media/backend/internal/models"
)

// DocumentData is the fully assembled, reconciled input handed to a
// renderer. The renderer makes no storage calls of its own.
type DocumentData struct {
	Invoice  models.Invoice       `json:"invoice"`
	Client   models.Client        `json:"client"`
	Campaign models.Campaign      `json:"campaign"`
	Items    []models.InvoiceItem `json:"items"`
	Org      models.OrgSettings   `json:"org"`

	// LogoDataURI is resolved ahead of rendering (and cached); empty when
	// the organization has no logo.
	LogoDataURI string `json:"-"`
}

// Renderer turns an assembled document data object into an opaque artifact.
type Renderer interface {
	Render(data DocumentData, templateID string) ([]byte, error)
}
