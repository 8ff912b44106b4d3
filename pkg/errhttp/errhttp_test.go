package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/gardenhub/pkg/kernel"
	gudomain "github.com/ghuser/gardenhub/services/growingunit/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	unitID := kernel.NewGrowingUnitID()
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found category", kernel.ErrNotFound, http.StatusNotFound},
		{"typed not found", &gudomain.GrowingUnitNotFoundError{GrowingUnitID: unitID}, http.StatusNotFound},
		{"full capacity", &gudomain.GrowingUnitFullCapacityError{GrowingUnitID: unitID}, http.StatusBadRequest},
		{"invalid growing unit", fmt.Errorf("%w: name too long", gudomain.ErrInvalidGrowingUnit), http.StatusUnprocessableEntity},
		{"concurrent modification", fmt.Errorf("save: %w", kernel.ErrConcurrentModification), http.StatusConflict},
		{"wrapped not found", fmt.Errorf("get: %w", gudomain.ErrGrowingUnitNotFound), http.StatusNotFound},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	unitID := kernel.NewGrowingUnitID()
	w := httptest.NewRecorder()
	WriteError(w, &gudomain.GrowingUnitFullCapacityError{GrowingUnitID: unitID})

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	want := "Growing unit " + unitID.String() + " is at full capacity"
	if body["error"] != want {
		t.Fatalf("error = %q, want %q", body["error"], want)
	}
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("pq: password authentication failed"))

	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("internal error leaked: %q", body["error"])
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, kernel.ErrNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
