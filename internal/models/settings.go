package models

import "time"

// CompanySettingsID is the fixed primary key of the singleton settings row.
const CompanySettingsID = 1

// CompanySettings is the company-wide singleton record. Its approval
// status is persisted on the row so a process restart cannot silently
// reset an approved configuration back to DRAFT.
type CompanySettings struct {
	ID         int            `db:"id" json:"-"`
	PayDate    int            `db:"pay_date" json:"pay_date"`
	TimeZone   string         `db:"time_zone" json:"time_zone"`
	Currency   string         `db:"currency" json:"currency"`
	Status     ApprovalStatus `db:"status" json:"status"`
	UpdatedBy  *string        `db:"updated_by" json:"updated_by,omitempty"`
	ApprovedBy *string        `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt *time.Time     `db:"approved_at" json:"approved_at,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}
