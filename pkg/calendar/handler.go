package calendar

import (
	"net/http"
	"time"

	"github.com/klokku/eventcal/internal/rest"
	"github.com/klokku/eventcal/internal/utils"
	log "github.com/sirupsen/logrus"
)

type DayDTO struct {
	Date      string `json:"date"`
	Day       int    `json:"day"`
	InMonth   bool   `json:"inMonth"`
	Today     bool   `json:"today"`
	Weekend   bool   `json:"weekend"`
	HasEvents bool   `json:"hasEvents"`
}

type GridDTO struct {
	Month    string     `json:"month"`
	Title    string     `json:"title"`
	Weekdays []string   `json:"weekdays"`
	Weeks    [][]DayDTO `json:"weeks"`
}

type Handler struct {
	datesWithEvents func() []string
	displayedMonth  func() time.Time
	clock           utils.Clock
}

func NewHandler(datesWithEvents func() []string, displayedMonth func() time.Time, clock utils.Clock) *Handler {
	return &Handler{
		datesWithEvents: datesWithEvents,
		displayedMonth:  displayedMonth,
		clock:           clock,
	}
}

// GetGrid godoc
// @Summary Month grid of the calendar
// @Description Complete weeks covering the month, days carrying events are flagged.
// @Tags Calendar
// @Produce json
// @Param month query string false "Month in YYYY-MM format, defaults to the displayed month"
// @Success 200 {object} GridDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid month format"
// @Router /api/calendar [get]
func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()

	month := h.displayedMonth()
	if param := r.URL.Query().Get("month"); param != "" {
		parsed, err := ParseMonth(param, now.Location())
		if err != nil {
			log.Debugf("invalid month requested: %v", err)
			rest.WriteError(w, http.StatusBadRequest, "Invalid month format", err.Error())
			return
		}
		month = parsed
	}
	log.Tracef("Building grid of %s", month.Format(MonthLayout))

	grid := MonthGrid(month, now)
	grid.MarkEvents(h.datesWithEvents())

	rest.WriteJSON(w, http.StatusOK, ToDTO(grid))
}

func ToDTO(g Grid) GridDTO {
	weeks := make([][]DayDTO, 0, len(g.Days)/7)
	for _, week := range g.Weeks() {
		row := make([]DayDTO, 0, len(week))
		for _, d := range week {
			row = append(row, DayDTO{
				Date:      d.Key,
				Day:       d.Date.Day(),
				InMonth:   d.InMonth,
				Today:     d.Today,
				Weekend:   d.Weekend,
				HasEvents: d.HasEvents,
			})
		}
		weeks = append(weeks, row)
	}
	return GridDTO{
		Month:    g.Month.Format(MonthLayout),
		Title:    g.Month.Format("January 2006"),
		Weekdays: Weekdays,
		Weeks:    weeks,
	}
}
