package domain

import "time"

// Offering is an advertised catalog entry owned by a professional.
type Offering struct {
	ID             int64           `json:"id"`
	ProfessionalID string          `json:"professionalId"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       *string         `json:"category,omitempty"`
	Price          float64         `json:"price"`
	EstimatedTime  *string         `json:"estimatedTime,omitempty"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      *time.Time      `json:"updatedAt,omitempty"`
	Portfolio      []PortfolioItem `json:"portfolio,omitempty"`
}

// PortfolioKind classifies a portfolio item.
type PortfolioKind string

const (
	PortfolioImage        PortfolioKind = "image"
	PortfolioVideo        PortfolioKind = "video"
	PortfolioDocument     PortfolioKind = "document"
	PortfolioLink         PortfolioKind = "link"
	PortfolioPDF          PortfolioKind = "pdf"
	PortfolioPresentation PortfolioKind = "presentation"
)

// PortfolioItem is a work sample attached to an offering.
type PortfolioItem struct {
	ID             int64         `json:"id"`
	OfferingID     int64         `json:"offeringId"`
	ProfessionalID string        `json:"professionalId"`
	Title          string        `json:"title"`
	Description    *string       `json:"description,omitempty"`
	ImageURL       *string       `json:"imageUrl,omitempty"`
	ProjectLink    *string       `json:"projectLink,omitempty"`
	Kind           PortfolioKind `json:"kind"`
	ProjectDate    *time.Time    `json:"projectDate,omitempty"`
	Order          int           `json:"order"`
	Active         bool          `json:"active"`
	Featured       bool          `json:"featured"`
	CreatedAt      time.Time     `json:"createdAt"`
}
