package domain

import "time"

// SubmissionAudit is a gateway-owned record of a staff creation attempt and
// how the reconciliation flow resolved it. Operational data, not part of the
// platform's system of record.
type SubmissionAudit struct {
	ID          string    `json:"id"`
	ActorID     string    `json:"actorId"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullname"`
	Phase       string    `json:"phase"`
	OutcomeKind string    `json:"outcomeKind"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}
