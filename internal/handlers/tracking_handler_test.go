package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	track "github.com/BruksfildServices01/skin-clinic/internal/domain/tracking"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/middleware"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
	ucTracking "github.com/BruksfildServices01/skin-clinic/internal/usecase/tracking"
)

type directTx struct{}

func (directTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// packageRepo serves a single client package; other methods are unused here.
type packageRepo struct {
	track.Repository
	cp *models.ClientPackage
}

func (r *packageRepo) LockClientPackage(ctx context.Context, id uint) (*models.ClientPackage, error) {
	if r.cp.ID != id {
		return nil, httperr.ErrNotFound("client_package_not_found")
	}
	cp := *r.cp
	return &cp, nil
}

func (r *packageRepo) UpdateClientPackage(ctx context.Context, cp *models.ClientPackage) error {
	stored := *cp
	r.cp = &stored
	return nil
}

func newTrackingRouter(repo *packageRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTrackingHandler(nil, nil, ucTracking.NewCounters(repo, directTx{}, nil, time.UTC))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextActor, authz.Actor{UserID: 2, Role: authz.RoleStaff})
	})
	r.POST("/client-packages/:id/sessions", h.AddSession(ucTracking.KindPackage))
	r.PATCH("/client-packages/:id/sessions", h.Adjust(ucTracking.KindPackage))
	return r
}

func TestCompletedCounterRejectsMoreSessions(t *testing.T) {
	repo := &packageRepo{cp: &models.ClientPackage{
		ID:      7,
		Package: models.Package{TotalSessions: 2},
	}}
	r := newTrackingRouter(repo)

	cases := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"add", http.MethodPost, "", http.StatusOK},
		{"increment to target", http.MethodPatch, `{"action":"increment"}`, http.StatusOK},
		{"add on completed", http.MethodPost, "", http.StatusConflict},
		{"increment on completed", http.MethodPatch, `{"action":"increment"}`, http.StatusConflict},
		{"decrement", http.MethodPatch, `{"action":"decrement"}`, http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, "/client-packages/7/sessions", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d (%s)", tc.name, tc.status, w.Code, w.Body.String())
		}
		if tc.status == http.StatusConflict {
			var body httperr.HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Code != "already_completed" {
				t.Fatalf("%s: expected already_completed, got %s", tc.name, w.Body.String())
			}
		}
	}

	if repo.cp.SessionsCompleted != 1 || repo.cp.IsCompleted {
		t.Fatalf("expected counter reopened at 1, got %+v", repo.cp.SessionProgress)
	}
}
