package types

import "time"

// GivingFund is a donor-advised pool of money. Its balance never goes
// negative: every decrement happens inside the same transaction as the
// balance-sufficiency check and the grant status transition.
type GivingFund struct {
	ID          int64     `db:"id" json:"id"`
	DonorID     int64     `db:"donor_id" json:"donorId"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Balance     Money     `db:"balance" json:"balance"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
