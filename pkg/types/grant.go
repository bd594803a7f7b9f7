package types

import "time"

type GrantStatus string

const (
	GrantStatusPending  GrantStatus = "PENDING"
	GrantStatusApproved GrantStatus = "APPROVED"
	GrantStatusFunded   GrantStatus = "FUNDED"
	GrantStatusRejected GrantStatus = "REJECTED"
)

// GrantStatuses lists every status in presentation order. Aggregations
// zero-fill over this slice so empty buckets still appear.
var GrantStatuses = []GrantStatus{
	GrantStatusPending,
	GrantStatusApproved,
	GrantStatusFunded,
	GrantStatusRejected,
}

// CanTransitionTo reports whether the lifecycle permits moving from s to
// next. The only legal edges are PENDING→APPROVED, PENDING→REJECTED,
// APPROVED→REJECTED and APPROVED→FUNDED; FUNDED and REJECTED are terminal.
func (s GrantStatus) CanTransitionTo(next GrantStatus) bool {
	switch s {
	case GrantStatusPending:
		return next == GrantStatusApproved || next == GrantStatusRejected
	case GrantStatusApproved:
		return next == GrantStatusRejected || next == GrantStatusFunded
	}
	return false
}

func (s GrantStatus) Terminal() bool {
	return s == GrantStatusFunded || s == GrantStatusRejected
}

type Grant struct {
	ID           int64       `db:"id" json:"id"`
	GivingFundID int64       `db:"giving_fund_id" json:"givingFundId"`
	MinistryID   int64       `db:"ministry_id" json:"ministryId"`
	Amount       Money       `db:"amount" json:"amount"`
	Status       GrantStatus `db:"status" json:"status"`
	Purpose      *string     `db:"purpose" json:"purpose,omitempty"`
	Notes        *string     `db:"notes" json:"notes,omitempty"`
	RequestedAt  time.Time   `db:"requested_at" json:"requestedAt"`
	ApprovedAt   *time.Time  `db:"approved_at" json:"approvedAt,omitempty"`
	FundedAt     *time.Time  `db:"funded_at" json:"fundedAt,omitempty"`
	RejectedAt   *time.Time  `db:"rejected_at" json:"rejectedAt,omitempty"`
}

// AppendRejectionReason returns notes with a formatted rejection line added,
// preserving any existing content.
func AppendRejectionReason(notes *string, reason string) *string {
	line := "Rejection reason: " + reason
	if notes == nil || *notes == "" {
		return &line
	}

	combined := *notes + "\n" + line
	return &combined
}
