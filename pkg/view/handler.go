package view

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klokku/eventcal/internal/rest"
	"github.com/klokku/eventcal/pkg/calendar"
	"github.com/klokku/eventcal/pkg/event"
	log "github.com/sirupsen/logrus"
)

type StateDTO struct {
	Month          string `json:"month"`
	Title          string `json:"title"`
	SelectedDate   string `json:"selectedDate"`
	Category       string `json:"category"`
	Search         string `json:"search"`
	ExportBaseName string `json:"exportBaseName"`
}

type UpdateDTO struct {
	Month        *string `json:"month,omitempty"`
	Shift        *int    `json:"shift,omitempty"`
	SelectedDate *string `json:"selectedDate,omitempty"`
	Category     *string `json:"category,omitempty"`
	Search       *string `json:"search,omitempty"`
}

type Handler struct {
	session *Session
	events  func(dateKey string) []event.Event
}

func NewHandler(session *Session, events func(dateKey string) []event.Event) *Handler {
	return &Handler{session: session, events: events}
}

// GetState godoc
// @Summary Current view state
// @Tags View
// @Produce json
// @Success 200 {object} StateDTO
// @Router /api/view [get]
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, ToDTO(h.session.State()))
}

// UpdateState godoc
// @Summary Change the displayed month, the selection or the filters
// @Description Only the fields present in the body are changed. An empty selectedDate clears the selection.
// @Tags View
// @Accept json
// @Produce json
// @Param update body UpdateDTO true "View changes"
// @Success 200 {object} StateDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid body, month, date or category"
// @Failure 422 {object} rest.ErrorResponse "Date outside of the displayed month"
// @Router /api/view [patch]
func (h *Handler) UpdateState(w http.ResponseWriter, r *http.Request) {
	var dto UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	update := Update{
		Shift:        dto.Shift,
		SelectedDate: dto.SelectedDate,
		Search:       dto.Search,
	}
	if dto.Month != nil {
		month, err := calendar.ParseMonth(*dto.Month, h.session.DisplayedMonth().Location())
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid month format", err.Error())
			return
		}
		update.Month = &month
	}
	if dto.Category != nil {
		category := event.Type(*dto.Category)
		update.Category = &category
	}

	state, err := h.session.Apply(update)
	if err != nil {
		log.Debugf("view update rejected: %v", err)
		switch {
		case errors.Is(err, ErrDateOutsideMonth):
			rest.WriteError(w, http.StatusUnprocessableEntity, "Date not selectable", err.Error())
		case errors.Is(err, event.ErrInvalidDateKey):
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", err.Error())
		default:
			rest.WriteError(w, http.StatusBadRequest, "Invalid view update", err.Error())
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, ToDTO(state))
}

// GetVisibleEvents godoc
// @Summary Events of the selected date matching the active category and search
// @Tags View
// @Produce json
// @Success 200 {array} event.EventDTO
// @Router /api/view/events [get]
func (h *Handler) GetVisibleEvents(w http.ResponseWriter, r *http.Request) {
	state := h.session.State()
	if state.SelectedDate == "" {
		rest.WriteJSON(w, http.StatusOK, []event.EventDTO{})
		return
	}
	visible := state.Visible(h.events(state.SelectedDate))
	log.Tracef("%d visible %s events on %s", len(visible), state.ActiveCategory, state.SelectedDate)

	rest.WriteJSON(w, http.StatusOK, event.ToDTOs(visible))
}

func ToDTO(s State) StateDTO {
	return StateDTO{
		Month:          s.DisplayedMonth.Format(calendar.MonthLayout),
		Title:          s.DisplayedMonth.Format("January 2006"),
		SelectedDate:   s.SelectedDate,
		Category:       string(s.ActiveCategory),
		Search:         s.SearchKeyword,
		ExportBaseName: s.ExportBaseName(),
	}
}
