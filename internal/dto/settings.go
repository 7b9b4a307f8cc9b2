package dto

// UpdateCompanySettingsRequest merge-updates the singleton settings row.
// Absent fields keep their stored values.
type UpdateCompanySettingsRequest struct {
	PayDate  *int    `json:"pay_date,omitempty" validate:"omitempty,min=1,max=31"`
	TimeZone *string `json:"time_zone,omitempty" validate:"omitempty,min=1"`
	Currency *string `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
}
