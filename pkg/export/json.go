package export

import (
	"encoding/json"

	"github.com/klokku/eventcal/pkg/event"
)

type JsonRendererImpl struct{}

func NewJsonRenderer() *JsonRendererImpl {
	return &JsonRendererImpl{}
}

// Render writes the mapping as stored, indented with two spaces.
func (r *JsonRendererImpl) Render(events map[string][]event.Event) ([]byte, error) {
	if events == nil {
		events = map[string][]event.Event{}
	}
	return json.MarshalIndent(events, "", "  ")
}

func (r *JsonRendererImpl) ContentType() string {
	return "application/json"
}

func (r *JsonRendererImpl) Extension() string {
	return "json"
}
