package event

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/eventcal/internal/rest"
	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetEvents godoc
// @Summary List events of a date
// @Tags Event
// @Produce json
// @Param date path string true "Date in YYYY-MM-DD format"
// @Success 200 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Router /api/events/{date} [get]
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	dateKey := mux.Vars(r)["date"]
	log.Tracef("Getting events of %s", dateKey)

	events, err := h.service.GetEvents(dateKey)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, ToDTOs(events))
}

// CreateEvent godoc
// @Summary Add an event to a date
// @Tags Event
// @Accept json
// @Produce json
// @Param date path string true "Date in YYYY-MM-DD format"
// @Param event body EventDTO true "Event fields, id is ignored"
// @Success 201 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format or body"
// @Failure 422 {object} rest.ErrorResponse "Validation failed"
// @Router /api/events/{date} [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	dateKey := mux.Vars(r)["date"]

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.service.AddEvent(r.Context(), dateKey, dtoToFields(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, ToDTO(created))
}

// UpdateEvent godoc
// @Summary Replace an event of a date
// @Tags Event
// @Accept json
// @Produce json
// @Param date path string true "Date in YYYY-MM-DD format"
// @Param eventId path string true "Event id"
// @Param event body EventDTO true "New event fields"
// @Success 200 {object} EventDTO
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Failure 422 {object} rest.ErrorResponse "Validation failed"
// @Router /api/events/{date}/{eventId} [put]
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	updated, err := h.service.UpdateEvent(r.Context(), vars["date"], vars["eventId"], dtoToFields(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

// DeleteEvent godoc
// @Summary Delete an event of a date
// @Description Deleting an event that does not exist succeeds.
// @Tags Event
// @Param date path string true "Date in YYYY-MM-DD format"
// @Param eventId path string true "Event id"
// @Success 204
// @Router /api/events/{date}/{eventId} [delete]
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.service.DeleteEvent(r.Context(), vars["date"], vars["eventId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		rest.WriteError(w, http.StatusUnprocessableEntity, "Invalid event", validationErr.Reason)
	case errors.Is(err, ErrInvalidDateKey):
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "date must be in YYYY-MM-DD format")
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", err.Error())
	default:
		log.Errorf("event request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

func ToDTO(e Event) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Name:        e.Name,
		Type:        string(e.Type),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Description: e.Description,
	}
}

func ToDTOs(events []Event) []EventDTO {
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, ToDTO(e))
	}
	return dtos
}

func dtoToFields(dto EventDTO) Fields {
	return Fields{
		Name:        dto.Name,
		Type:        Type(dto.Type),
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		Description: dto.Description,
	}
}
