package domain

import "time"

// RiskLevel buckets a server-computed risk score.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// Violation records a single customer infraction, server-owned.
type Violation struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RiskProfile is the server-computed risk view of a customer. The console
// displays it and can trigger a reset; it never computes scores.
type RiskProfile struct {
	UserID     string      `json:"userId"`
	FullName   string      `json:"fullname"`
	Email      string      `json:"email"`
	RiskScore  int         `json:"riskScore"`
	RiskLevel  RiskLevel   `json:"riskLevel"`
	Violations []Violation `json:"violations"`
}
