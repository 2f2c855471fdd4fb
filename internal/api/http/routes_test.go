package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-assistant/internal/store"
	"github.com/i474232898/weather-assistant/internal/weather"
)

type stubCompleter struct {
	replies map[*weather.Schema]string
	answer  string
	err     error
}

func (c *stubCompleter) Complete(_ context.Context, _ []weather.Message, schema *weather.Schema) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if schema == nil {
		return c.answer, nil
	}
	return c.replies[schema], nil
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func newTestApp(t *testing.T, completer weather.Completer) (*fiber.App, *store.MemoryStore) {
	t.Helper()
	memStore := store.NewMemoryStore()
	paris := weather.Record{City: "Paris", Temperature: "12°C", High: "15°C", Low: "8°C", Condition: "Rainy"}
	if err := memStore.Merge(context.Background(), paris.City, weather.UpdateFromRecord(paris)); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, weather.NewService(memStore, completer, stubEmbedder{}))
	return app, memStore
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("response is not a JSON object: %s", raw)
	}
	return resp.StatusCode, out
}

func TestWeatherQuery(t *testing.T) {
	app, _ := newTestApp(t, &stubCompleter{answer: "It is rainy in Paris."})

	status, body := postJSON(t, app, "/weather", `{"query":"What's the weather in Paris?"}`)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if body["answer"] != "It is rainy in Paris." {
		t.Fatalf("unexpected answer: %v", body["answer"])
	}
	if body["input"] != "What's the weather in Paris?" {
		t.Fatalf("unexpected input: %v", body["input"])
	}
}

func TestWeatherQueryProviderFailure(t *testing.T) {
	app, _ := newTestApp(t, &stubCompleter{err: errors.New("quota exceeded")})

	status, body := postJSON(t, app, "/weather", `{"query":"What's the weather in Paris?"}`)
	if status != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, status)
	}
	if _, ok := body["error"]; !ok {
		t.Fatalf("expected error field, got %v", body)
	}
}

func TestWeatherQueryRequiresQuery(t *testing.T) {
	app, _ := newTestApp(t, &stubCompleter{})

	status, _ := postJSON(t, app, "/weather", `{}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, status)
	}
}

func TestManageWeatherUpdate(t *testing.T) {
	app, memStore := newTestApp(t, &stubCompleter{replies: map[*weather.Schema]string{
		weather.OperationTypeSchema: `{"operationType":"update/add"}`,
		weather.WeatherUpdateSchema: `{"city":"Paris","high":"25°C"}`,
	}})

	status, body := postJSON(t, app, "/weather/manage-weather", `{"command":"Set the high in Paris to 25°C"}`)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if body["message"] != "Operation successful" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["city"] != "Paris" || data["high"] != "25°C" {
		t.Fatalf("unexpected data: %v", body["data"])
	}

	rec, err := memStore.Get(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.High != "25°C" || rec.Low != "8°C" {
		t.Fatalf("unexpected record after merge: %+v", rec)
	}
}

func TestManageWeatherInvalidOperation(t *testing.T) {
	app, _ := newTestApp(t, &stubCompleter{replies: map[*weather.Schema]string{
		weather.OperationTypeSchema: `{"operationType":"rename"}`,
	}})

	status, body := postJSON(t, app, "/weather/manage-weather", `{"command":"Rename Paris"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, status)
	}
	if body["error"] != "Error managing weather data" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
	if details, _ := body["details"].(string); !strings.Contains(details, "operation type") {
		t.Fatalf("unexpected details: %v", body["details"])
	}
}

func TestManageWeatherDeleteAbsentCity(t *testing.T) {
	app, _ := newTestApp(t, &stubCompleter{replies: map[*weather.Schema]string{
		weather.OperationTypeSchema: `{"operationType":"delete"}`,
		weather.DeleteTargetSchema:  `{"city":"Lima"}`,
	}})

	status, body := postJSON(t, app, "/weather/manage-weather", `{"command":"Delete Lima"}`)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if data, _ := body["data"].(map[string]any); data["city"] != "Lima" {
		t.Fatalf("unexpected data: %v", body["data"])
	}
}

func TestRecordEndpoints(t *testing.T) {
	app, _ := newTestApp(t, &stubCompleter{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather/records/Paris", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/weather/records/Atlantis", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/weather/records", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var records []weather.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(records) != 1 || records[0].City != "Paris" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestWelcome(t *testing.T) {
	app, _ := newTestApp(t, &stubCompleter{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if string(raw) != welcomeMessage {
		t.Fatalf("unexpected body: %q", raw)
	}
}

func TestManageWeatherRequiresCommand(t *testing.T) {
	app, _ := newTestApp(t, &stubCompleter{})

	status, body := postJSON(t, app, "/weather/manage-weather", `{}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, status)
	}
	if body["error"] != "Error managing weather data" {
		t.Fatalf("expected string error, got %v", body["error"])
	}
	if details, _ := body["details"].(string); !strings.Contains(details, "Command") {
		t.Fatalf("unexpected details: %v", body["details"])
	}
}

func TestManageWeatherInvalidCity(t *testing.T) {
	app, _ := newTestApp(t, &stubCompleter{replies: map[*weather.Schema]string{
		weather.OperationTypeSchema: `{"operationType":"update/add"}`,
		weather.WeatherUpdateSchema: `{"city":"","high":"","low":"","temperature":"","condition":""}`,
	}})

	status, body := postJSON(t, app, "/weather/manage-weather", `{"command":"Update the weather in Atlantis"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, status)
	}
	if body["details"] != "Invalid city" {
		t.Fatalf("unexpected details: %v", body["details"])
	}
}

func TestClientDetails(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{weather.ErrUnknownOperation, "Unknown operation type."},
		{fmt.Errorf("dispatch: %w", weather.ErrInvalidCity), "Invalid city"},
		{&weather.ValidationError{Shape: "city name", Err: weather.ErrInvalidCity}, "validation failed: incorrect format for city name"},
		{errors.New("store offline"), "store offline"},
	}
	for _, tt := range tests {
		if got := clientDetails(tt.err); got != tt.want {
			t.Fatalf("clientDetails(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
