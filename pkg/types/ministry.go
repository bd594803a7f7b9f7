package types

import (
	"regexp"
	"time"
)

type MinistryCategory string

const (
	MinistryCategoryChurch       MinistryCategory = "CHURCH"
	MinistryCategoryMissions     MinistryCategory = "MISSIONS"
	MinistryCategoryEducation    MinistryCategory = "EDUCATION"
	MinistryCategoryHumanitarian MinistryCategory = "HUMANITARIAN"
	MinistryCategoryMedia        MinistryCategory = "MEDIA"
	MinistryCategoryYouth        MinistryCategory = "YOUTH"
	MinistryCategoryOther        MinistryCategory = "OTHER"
)

func (c MinistryCategory) Valid() bool {
	switch c {
	case MinistryCategoryChurch, MinistryCategoryMissions, MinistryCategoryEducation,
		MinistryCategoryHumanitarian, MinistryCategoryMedia, MinistryCategoryYouth,
		MinistryCategoryOther:
		return true
	}
	return false
}

// einPattern matches an IRS employer identification number.
var einPattern = regexp.MustCompile(`^\d{2}-\d{7}$`)

func ValidEIN(ein string) bool {
	return einPattern.MatchString(ein)
}

type Ministry struct {
	ID          int64            `db:"id" json:"id"`
	Name        string           `db:"name" json:"name"`
	EIN         *string          `db:"ein" json:"ein,omitempty"`
	Category    MinistryCategory `db:"category" json:"category"`
	Description *string          `db:"description" json:"description,omitempty"`
	Mission     *string          `db:"mission" json:"mission,omitempty"`
	Website     *string          `db:"website" json:"website,omitempty"`
	City        *string          `db:"city" json:"city,omitempty"`
	State       *string          `db:"state" json:"state,omitempty"`
	Verified    bool             `db:"verified" json:"verified"`
	Active      bool             `db:"active" json:"active"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}

// MinistryFilter holds the optional listing predicates. Present fields are
// combined conjunctively; absent fields constrain nothing.
type MinistryFilter struct {
	Category *MinistryCategory `form:"category"`
	Verified *bool             `form:"verified"`
	Active   *bool             `form:"active"`
	State    *string           `form:"state"`
	Search   *string           `form:"search"`
}
