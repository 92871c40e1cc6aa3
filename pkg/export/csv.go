package export

import (
	"strings"

	"github.com/klokku/eventcal/pkg/event"
)

const csvHeader = "Date,Name,Type,Start Time,End Time,Description\n"

type CsvRendererImpl struct{}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

// Render writes one row per event, dates ascending and events in stored order.
// Name, type and description are always quoted, date and times never are.
// Rows are separated by a newline and the last row has none.
func (r *CsvRendererImpl) Render(events map[string][]event.Event) ([]byte, error) {
	rows := make([]string, 0, len(events))
	for _, dateKey := range sortedDateKeys(events) {
		for _, e := range events[dateKey] {
			rows = append(rows, strings.Join([]string{
				dateKey,
				quote(e.Name),
				quote(string(e.Type)),
				e.StartTime,
				e.EndTime,
				quote(e.Description),
			}, ","))
		}
	}
	return []byte(csvHeader + strings.Join(rows, "\n")), nil
}

func (r *CsvRendererImpl) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (r *CsvRendererImpl) Extension() string {
	return "csv"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
