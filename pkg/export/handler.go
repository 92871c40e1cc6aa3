package export

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/eventcal/internal/rest"
	"github.com/klokku/eventcal/internal/utils"
	"github.com/klokku/eventcal/pkg/event"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	snapshot func() map[string][]event.Event
	baseName func() string
	clock    utils.Clock
}

func NewHandler(snapshot func() map[string][]event.Event, baseName func() string, clock utils.Clock) *Handler {
	return &Handler{snapshot: snapshot, baseName: baseName, clock: clock}
}

// Export godoc
// @Summary Download all events
// @Description The file is named after the displayed month, e.g. events-June-2024.csv.
// @Tags Export
// @Produce json
// @Produce text/csv
// @Produce text/calendar
// @Param format path string true "json, csv or ics"
// @Success 200 {file} file
// @Failure 400 {object} rest.ErrorResponse "Unknown format"
// @Router /api/export/{format} [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	renderer, err := NewRenderer(Format(mux.Vars(r)["format"]), h.clock)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Unknown export format", err.Error())
		return
	}

	body, err := renderer.Render(h.snapshot())
	if err != nil {
		log.Errorf("failed to render export: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Export failed", err.Error())
		return
	}

	fileName := FileName(h.baseName(), renderer)
	log.Debugf("Exporting %d bytes as %s", len(body), fileName)

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Errorf("failed to write export: %v", err)
	}
}
