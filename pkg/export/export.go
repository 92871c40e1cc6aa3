// Package export renders the whole event mapping into downloadable files.
package export

import (
	"errors"
	"fmt"
	"sort"

	"github.com/klokku/eventcal/internal/utils"
	"github.com/klokku/eventcal/pkg/event"
)

var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatICS  Format = "ics"
)

type Renderer interface {
	Render(events map[string][]event.Event) ([]byte, error)
	ContentType() string
	Extension() string
}

func NewRenderer(format Format, clock utils.Clock) (Renderer, error) {
	switch format {
	case FormatJSON:
		return NewJsonRenderer(), nil
	case FormatCSV:
		return NewCsvRenderer(), nil
	case FormatICS:
		return NewIcsRenderer(clock), nil
	}
	return nil, fmt.Errorf("%w %q: expected json, csv or ics", ErrUnknownFormat, format)
}

// FileName is the attachment name of an export, e.g. events-June-2024.csv.
func FileName(baseName string, r Renderer) string {
	return baseName + "." + r.Extension()
}

func sortedDateKeys(events map[string][]event.Event) []string {
	keys := make([]string, 0, len(events))
	for k := range events {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
