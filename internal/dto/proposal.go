package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"propboard/internal/view"
)

// Date parses a JSON date as either date-only ("2006-01-02") or RFC3339.
// Date-only is stored as start of that day in UTC.
type Date struct{ t *time.Time }

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	t, err := ParseDate(*raw)
	if err != nil {
		return err
	}
	d.t = t
	return nil
}

// Ptr returns *time.Time for use in service/domain.
func (d Date) Ptr() *time.Time { return d.t }

// ParseDate parses "2006-01-02" or an RFC3339 datetime. Date-only values
// become start of day UTC.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("date: use YYYY-MM-DD or RFC3339 datetime")
}

type CreateProposalRequest struct {
	ClientName         string  `json:"client_name" binding:"required,min=1,max=200"`
	SentDate           Date    `json:"sent_date"` // defaults to today if empty
	Value              float64 `json:"value" binding:"gte=0"`
	Status             string  `json:"status" binding:"omitempty,oneof=pending approved rejected"`
	LastFollowUp       Date    `json:"last_follow_up"` // defaults to sent_date
	ExpectedReturnDate Date    `json:"expected_return_date"`
	SentVia            string  `json:"sent_via" binding:"omitempty,max=60"`
	Notes              string  `json:"notes" binding:"max=2000"`
}

type UpdateProposalRequest struct {
	ClientName         *string  `json:"client_name" binding:"omitempty,min=1,max=200"`
	SentDate           *Date    `json:"sent_date"`
	Value              *float64 `json:"value" binding:"omitempty,gte=0"`
	Status             *string  `json:"status" binding:"omitempty,oneof=pending approved rejected"`
	LastFollowUp       *Date    `json:"last_follow_up"`
	ExpectedReturnDate *Date    `json:"expected_return_date"` // nil = keep, empty string = clear
	SentVia            *string  `json:"sent_via" binding:"omitempty,max=60"`
	Notes              *string  `json:"notes" binding:"omitempty,max=2000"`
}

// SetStatusRequest changes one proposal's status.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

// BulkStatusRequest applies one status to every selected proposal.
type BulkStatusRequest struct {
	IDs    []int64 `json:"ids" binding:"required,min=1"`
	Status string  `json:"status" binding:"required,oneof=pending approved rejected"`
}

type ProposalResponse struct {
	ID                 int64      `json:"id"`
	ClientName         string     `json:"client_name"`
	SentDate           time.Time  `json:"sent_date"`
	Value              float64    `json:"value"`
	Status             string     `json:"status"`
	LastFollowUp       time.Time  `json:"last_follow_up"`
	ExpectedReturnDate *time.Time `json:"expected_return_date"`
	SentVia            string     `json:"sent_via,omitempty"`
	Notes              string     `json:"notes"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type ListProposalsResponse struct {
	Items []ProposalResponse `json:"items"`
}

// ViewResponse is the derived table view: one page of filtered/sorted
// records plus pagination metadata and per-row alert flags.
type ViewResponse struct {
	Items         []ProposalResponse    `json:"items"`
	Page          int                   `json:"page"`
	PageCount     int                   `json:"page_count"`
	TotalFiltered int                   `json:"total_filtered"`
	Alerts        map[int64]view.Alerts `json:"alerts"`
}

// StatsResponse is the dashboard header aggregate.
type StatsResponse struct {
	Total         int     `json:"total"`
	Pending       int     `json:"pending"`
	Approved      int     `json:"approved"`
	Rejected      int     `json:"rejected"`
	TotalValue    float64 `json:"total_value"`
	ApprovedValue float64 `json:"approved_value"`
	ApprovalRate  float64 `json:"approval_rate"`
	NeedsFollowUp int     `json:"needs_follow_up"`
	ReturnOverdue int     `json:"return_overdue"`
}

// BulkStatusResponse reports how many rows a bulk action touched.
type BulkStatusResponse struct {
	Updated int64 `json:"updated"`
}
