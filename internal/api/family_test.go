package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kindredgraph/kindred/internal/api"
	"github.com/kindredgraph/kindred/internal/kinship"
	"github.com/kindredgraph/kindred/internal/models"
)

func setupFamilyRouter(svc *mockFamilyService) *gin.Engine {
	h := api.NewFamilyHandler(svc, testLogger())
	r := gin.New()
	r.GET("/persons/:id/family", h.Get)

	return r
}

func TestFamilyHandler_Get(t *testing.T) {
	t.Parallel()

	svc := &mockFamilyService{
		familyViewFn: func(_ context.Context, personID string) (*models.FamilyView, error) {
			return &models.FamilyView{
				Person:  kinship.Person{ID: personID, FirstName: "Asha"},
				Parents: []kinship.Person{{ID: "p1"}, {ID: "p2"}},
			}, nil
		},
	}

	w := doRequest(setupFamilyRouter(svc), http.MethodGet, "/persons/a1/family", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var view models.FamilyView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if view.Person.ID != "a1" || len(view.Parents) != 2 {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestFamilyHandler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		svcErr   error
		wantCode int
		wantErr  string
	}{
		{"id too long", "/persons/" + strings.Repeat("x", 256) + "/family", nil, http.StatusBadRequest, "validation_error"},
		{"not found", "/persons/a1/family", fmt.Errorf("load: %w", kinship.ErrPersonNotFound), http.StatusNotFound, "not_found"},
		{"too large", "/persons/a1/family", models.ErrNeighborhoodTooLarge, http.StatusUnprocessableEntity, "neighborhood_too_large"},
		{"timeout", "/persons/a1/family", context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{"internal", "/persons/a1/family", errTest, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockFamilyService{
				familyViewFn: func(context.Context, string) (*models.FamilyView, error) {
					return nil, tt.svcErr
				},
			}

			w := doRequest(setupFamilyRouter(svc), http.MethodGet, tt.path, "")
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}

			if body["code"] != tt.wantErr {
				t.Errorf("code = %q, want %q", body["code"], tt.wantErr)
			}

			if tt.wantCode == http.StatusInternalServerError && strings.Contains(w.Body.String(), errTest.Error()) {
				t.Error("internal error text leaked to the caller")
			}
		})
	}
}
