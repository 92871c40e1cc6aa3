package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/eventcal/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*mux.Router, *Store, *storage.MemoryStorage) {
	t.Helper()
	service, store, _ := setupServiceTest(t)
	memory := store.storage.(*storage.MemoryStorage)
	handler := NewHandler(service)

	r := mux.NewRouter()
	r.HandleFunc("/api/events/{date}", handler.GetEvents).Methods("GET")
	r.HandleFunc("/api/events/{date}", handler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/events/{date}/{eventId}", handler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/events/{date}/{eventId}", handler.DeleteEvent).Methods("DELETE")
	return r, store, memory
}

func doRequest(t *testing.T, r http.Handler, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	reader := &bytes.Buffer{}
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	return errResponse.Error, errResponse.Details
}

func TestHandler_CreateAndGet(t *testing.T) {
	r, _, _ := setupHandlerTest(t)

	w := doRequest(t, r, http.MethodPost, "/api/events/2024-06-10", EventDTO{Name: "Standup", Type: "Work", StartTime: "09:00", EndTime: "09:30"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Standup", created.Name)

	w = doRequest(t, r, http.MethodGet, "/api/events/2024-06-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
	assert.Equal(t, []EventDTO{created}, listed)
}

func TestHandler_GetEmptyDateReturnsEmptyArray(t *testing.T) {
	r, _, _ := setupHandlerTest(t)

	w := doRequest(t, r, http.MethodGet, "/api/events/2024-06-10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandler_InvalidDate(t *testing.T) {
	r, _, _ := setupHandlerTest(t)

	w := doRequest(t, r, http.MethodGet, "/api/events/2024-13-01", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg, details := decodeError(t, w)
	assert.Equal(t, "Invalid date format", msg)
	assert.Contains(t, details, "YYYY-MM-DD")
}

func TestHandler_CreateInvalidBody(t *testing.T) {
	r, _, _ := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/events/2024-06-10", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateValidationFailure(t *testing.T) {
	r, store, _ := setupHandlerTest(t)

	w := doRequest(t, r, http.MethodPost, "/api/events/2024-06-10", EventDTO{Name: "Standup", Type: "Work", StartTime: "10:00", EndTime: "09:00"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	msg, details := decodeError(t, w)
	assert.Equal(t, "Invalid event", msg)
	assert.Equal(t, ReasonTimeOrder, details)
	assert.Empty(t, store.DateKeys())
}

func TestHandler_Update(t *testing.T) {
	r, store, _ := setupHandlerTest(t)
	added, err := store.Add(t.Context(), "2024-06-10", standup())
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodPut, "/api/events/2024-06-10/"+added.ID, EventDTO{Name: "Daily", Type: "Work", StartTime: "09:00", EndTime: "09:15"})

	require.Equal(t, http.StatusOK, w.Code)
	var updated EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, added.ID, updated.ID)
	assert.Equal(t, "Daily", store.Get("2024-06-10")[0].Name)
}

func TestHandler_UpdateNotFound(t *testing.T) {
	r, _, _ := setupHandlerTest(t)

	w := doRequest(t, r, http.MethodPut, "/api/events/2024-06-10/missing", EventDTO{Name: "Daily", Type: "Work", StartTime: "09:00", EndTime: "09:15"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Delete(t *testing.T) {
	r, store, _ := setupHandlerTest(t)
	added, err := store.Add(t.Context(), "2024-06-10", standup())
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodDelete, "/api/events/2024-06-10/"+added.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.Get("2024-06-10"))

	w = doRequest(t, r, http.MethodDelete, "/api/events/2024-06-10/"+added.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandler_PersistenceFailure(t *testing.T) {
	r, store, memory := setupHandlerTest(t)
	memory.FailWrites(errors.New("read-only file system"))

	w := doRequest(t, r, http.MethodPost, "/api/events/2024-06-10", EventDTO{Name: "Standup", Type: "Work", StartTime: "09:00", EndTime: "09:30"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	_, details := decodeError(t, w)
	assert.Contains(t, details, "read-only file system")
	assert.Empty(t, store.DateKeys())
}
