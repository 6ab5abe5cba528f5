package domain

import "time"

// Status of a proposal. Any status may change to any other; there is no
// transition graph, including for bulk changes.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Rank is the fixed sort order: pending < approved < rejected.
func (s Status) Rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusApproved:
		return 1
	case StatusRejected:
		return 2
	}
	return 3
}

// Known delivery channels for SentVia. Free text is allowed; these are the
// values the UI offers.
const (
	ChannelEmail     = "email"
	ChannelMessenger = "messenger"
	ChannelOther     = "other"
)

// Proposal is the domain entity for a sales proposal.
// Does not depend on Gin, Postgres or Redis.
type Proposal struct {
	ID                 int64
	UserID             int64
	ClientName         string
	SentDate           time.Time
	Value              float64
	Status             Status
	LastFollowUp       time.Time
	ExpectedReturnDate *time.Time
	SentVia            string
	Notes              string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
