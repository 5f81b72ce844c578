package domain

import "time"

// User is a marketplace account. A user with a non-nil Category acts as a
// professional and shows up in the public directory while active.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Location     *string    `json:"location,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Specialty    *string    `json:"specialty,omitempty"`
	BasePrice    *float64   `json:"basePrice,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	PhotoURL     *string    `json:"photoUrl,omitempty"`
	IsAdmin      bool       `json:"isAdmin"`
	IsPremium    bool       `json:"isPremium"`
	PremiumPlan  *string    `json:"premiumPlan,omitempty"`
	IsActive     bool       `json:"isActive"`
	RegisteredAt time.Time  `json:"registeredAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// IsProfessional reports whether the user is searchable in the directory.
func (u User) IsProfessional() bool {
	return u.Category != nil && u.IsActive
}

// Favorite marks a professional as bookmarked by a client.
type Favorite struct {
	ClientID       string    `json:"clientId"`
	ProfessionalID string    `json:"professionalId"`
	AddedAt        time.Time `json:"addedAt"`
}
