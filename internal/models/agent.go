package models

import "time"

// Agent is a referring real-estate agent record.
type Agent struct {
	ID           string    `json:"agentId" db:"id"`
	Slug         string    `json:"slug" db:"slug"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone,omitempty" db:"phone"`
	Brokerage    string    `json:"brokerage,omitempty" db:"brokerage"`
	Website      string    `json:"website,omitempty" db:"website"`
	Bio          string    `json:"bio,omitempty" db:"bio"`
	LogoURL      string    `json:"logoUrl,omitempty" db:"logo_url"`
	HeadshotURL  string    `json:"headshotUrl,omitempty" db:"headshot_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// FullName returns the agent's display name.
func (a *Agent) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
