package update_venue_config

// UpdateConfigRequest HTTP request model.
// Частичное обновление - применяются только указанные поля.
type UpdateConfigRequest struct {
	GridStartHour       *int `json:"gridStartHour,omitempty"`
	GridEndHour         *int `json:"gridEndHour,omitempty"`
	GridEndMinute       *int `json:"gridEndMinute,omitempty"`
	GridIntervalMinutes *int `json:"gridIntervalMinutes,omitempty"`

	MinBookingMinutes *int `json:"minBookingMinutes,omitempty"`
	MaxBookingMinutes *int `json:"maxBookingMinutes,omitempty"`

	RequiresApproval *bool `json:"requiresApproval,omitempty"`
}
