package dto

import (
	"time"

	"github.com/Kusalkumar06/eventia/internal/models"
)

type LocationResponse struct {
	City    string `json:"city,omitempty"`
	Venue   string `json:"venue,omitempty"`
	Address string `json:"address,omitempty"`
}

type EventResponse struct {
	ID                     string             `json:"id"`
	Slug                   string             `json:"slug"`
	Title                  string             `json:"title"`
	Description            string             `json:"description"`
	CategoryID             string             `json:"category_id"`
	CustomCategory         string             `json:"custom_category,omitempty"`
	Mode                   models.EventMode   `json:"mode"`
	Location               *LocationResponse  `json:"location,omitempty"`
	OnlineURL              string             `json:"online_url,omitempty"`
	StartDate              time.Time          `json:"start_date"`
	EndDate                time.Time          `json:"end_date"`
	OrganizerID            string             `json:"organizer_id"`
	Status                 models.EventStatus `json:"status"`
	RejectionReason        *string            `json:"rejection_reason,omitempty"`
	IsRegistrationRequired bool               `json:"is_registration_required"`
	MaxRegistrations       *int               `json:"max_registrations,omitempty"`
	RegistrationsCount     int                `json:"registrations_count"`
	SeatsLeft              *int               `json:"seats_left,omitempty"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

type RegistrationResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	EventID   string         `json:"event_id"`
	CreatedAt time.Time      `json:"created_at"`
	Event     *EventResponse `json:"event,omitempty"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ActivityResponse struct {
	ID         string                `json:"id"`
	ActorID    string                `json:"actor_id"`
	ActorRole  models.Role           `json:"actor_role"`
	Action     models.ActivityAction `json:"action"`
	EntityType models.EntityType     `json:"entity_type"`
	EntityID   string                `json:"entity_id"`
	Message    string                `json:"message"`
	CreatedAt  time.Time             `json:"created_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func ToEventResponse(e *models.Event) EventResponse {
	resp := EventResponse{
		ID:                     e.ID,
		Slug:                   e.Slug,
		Title:                  e.Title,
		Description:            e.Description,
		CategoryID:             e.CategoryID,
		CustomCategory:         e.CustomCategory,
		Mode:                   e.Mode,
		OnlineURL:              e.OnlineURL,
		StartDate:              e.StartDate,
		EndDate:                e.EndDate,
		OrganizerID:            e.OrganizerID,
		Status:                 e.Status,
		RejectionReason:        e.RejectionReason,
		IsRegistrationRequired: e.IsRegistrationRequired,
		MaxRegistrations:       e.MaxRegistrations,
		RegistrationsCount:     e.RegistrationsCount,
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
	if e.Mode == models.ModeOffline {
		resp.Location = &LocationResponse{City: e.Location.City, Venue: e.Location.Venue, Address: e.Location.Address}
	}
	if e.MaxRegistrations != nil {
		left := e.SeatsLeft()
		resp.SeatsLeft = &left
	}
	return resp
}

func ToEventResponses(events []models.Event) []EventResponse {
	resp := make([]EventResponse, len(events))
	for i := range events {
		resp[i] = ToEventResponse(&events[i])
	}
	return resp
}

func ToRegistrationResponse(r *models.Registration) RegistrationResponse {
	resp := RegistrationResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		EventID:   r.EventID,
		CreatedAt: r.CreatedAt,
	}
	if r.Event != nil {
		ev := ToEventResponse(r.Event)
		resp.Event = &ev
	}
	return resp
}

func ToRegistrationResponses(regs []models.Registration) []RegistrationResponse {
	resp := make([]RegistrationResponse, len(regs))
	for i := range regs {
		resp[i] = ToRegistrationResponse(&regs[i])
	}
	return resp
}

func ToCategoryResponses(cats []models.Category) []CategoryResponse {
	resp := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
	}
	return resp
}

func ToActivityResponses(acts []models.Activity) []ActivityResponse {
	resp := make([]ActivityResponse, len(acts))
	for i, a := range acts {
		resp[i] = ActivityResponse{
			ID:         a.ID,
			ActorID:    a.ActorID,
			ActorRole:  a.ActorRole,
			Action:     a.Action,
			EntityType: a.EntityType,
			EntityID:   a.EntityID,
			Message:    a.Message,
			CreatedAt:  a.CreatedAt,
		}
	}
	return resp
}
