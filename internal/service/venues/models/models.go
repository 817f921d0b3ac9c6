package models

import (
	"time"

	"github.com/m04kA/CHB-BookingService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление конфигурации слотов площадки.
// Поддерживает частичное обновление - применяются только указанные поля.
type UpdateConfigRequest struct {
	UserID int64 `json:"userId"`

	GridStartHour       *int `json:"gridStartHour,omitempty"`
	GridEndHour         *int `json:"gridEndHour,omitempty"`
	GridEndMinute       *int `json:"gridEndMinute,omitempty"`
	GridIntervalMinutes *int `json:"gridIntervalMinutes,omitempty"`

	MinBookingMinutes *int `json:"minBookingMinutes,omitempty"`
	MaxBookingMinutes *int `json:"maxBookingMinutes,omitempty"`

	RequiresApproval *bool `json:"requiresApproval,omitempty"`
}

// ApplyToConfig применяет частичное обновление к конфигурации
func (r *UpdateConfigRequest) ApplyToConfig(config *domain.VenueSlotsConfig) {
	if r.GridStartHour != nil {
		config.GridStartHour = *r.GridStartHour
	}
	if r.GridEndHour != nil {
		config.GridEndHour = *r.GridEndHour
	}
	if r.GridEndMinute != nil {
		config.GridEndMinute = *r.GridEndMinute
	}
	if r.GridIntervalMinutes != nil {
		config.GridIntervalMinutes = *r.GridIntervalMinutes
	}
	if r.MinBookingMinutes != nil {
		config.MinBookingMinutes = *r.MinBookingMinutes
	}
	if r.MaxBookingMinutes != nil {
		config.MaxBookingMinutes = *r.MaxBookingMinutes
	}
	if r.RequiresApproval != nil {
		config.RequiresApproval = *r.RequiresApproval
	}
}

// Response модели

// VenueResponse ответ с данными площадки
type VenueResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Location string `json:"location,omitempty"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VenueListResponse ответ со списком площадок
type VenueListResponse struct {
	Venues []VenueResponse `json:"venues"`
}

// ConfigResponse ответ с конфигурацией слотов площадки
type ConfigResponse struct {
	ID      int64  `json:"id,omitempty"`
	VenueID *int64 `json:"venueId,omitempty"` // nil = общая конфигурация кампуса

	GridStartHour       int `json:"gridStartHour"`
	GridEndHour         int `json:"gridEndHour"`
	GridEndMinute       int `json:"gridEndMinute"`
	GridIntervalMinutes int `json:"gridIntervalMinutes"`

	MinBookingMinutes int `json:"minBookingMinutes"`
	MaxBookingMinutes int `json:"maxBookingMinutes"`

	RequiresApproval bool `json:"requiresApproval"`
}

// Методы конвертации

// FromDomainVenue конвертирует domain модель в DTO
func FromDomainVenue(v *domain.Venue) *VenueResponse {
	if v == nil {
		return nil
	}

	return &VenueResponse{
		ID:        v.ID,
		Name:      v.Name,
		Kind:      string(v.Kind),
		Location:  v.Location,
		Capacity:  v.Capacity,
		IsActive:  v.IsActive,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// FromDomainVenueList конвертирует список domain моделей в DTO
func FromDomainVenueList(venues []*domain.Venue) *VenueListResponse {
	if venues == nil {
		return &VenueListResponse{
			Venues: []VenueResponse{},
		}
	}

	resp := &VenueListResponse{
		Venues: make([]VenueResponse, len(venues)),
	}

	for i, venue := range venues {
		if venueResp := FromDomainVenue(venue); venueResp != nil {
			resp.Venues[i] = *venueResp
		}
	}

	return resp
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.VenueSlotsConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                  c.ID,
		VenueID:             c.VenueID,
		GridStartHour:       c.GridStartHour,
		GridEndHour:         c.GridEndHour,
		GridEndMinute:       c.GridEndMinute,
		GridIntervalMinutes: c.GridIntervalMinutes,
		MinBookingMinutes:   c.MinBookingMinutes,
		MaxBookingMinutes:   c.MaxBookingMinutes,
		RequiresApproval:    c.RequiresApproval,
	}
}
