package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/qmsdocs/backend/config"
	"github.com/qmsdocs/backend/internal/middleware"
	"github.com/qmsdocs/backend/internal/model"
	"github.com/qmsdocs/backend/internal/repository"
	"github.com/qmsdocs/backend/internal/service"
)

type mockManualRepo struct {
	GetBasicFunc func(id uint) (*model.Manual, error)
	SaveFunc     func(m *model.Manual) error
}

func (m *mockManualRepo) Create(manual *model.Manual) error {
	return nil
}

func (m *mockManualRepo) List(opts repository.ListOptions) ([]model.Manual, int64, error) {
	return nil, 0, nil
}

func (m *mockManualRepo) Get(id uint) (*model.Manual, error) {
	return nil, repository.ErrNotFound
}

func (m *mockManualRepo) GetBasic(id uint) (*model.Manual, error) {
	if m.GetBasicFunc != nil {
		return m.GetBasicFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockManualRepo) Save(manual *model.Manual) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(manual)
	}
	return nil
}

func (m *mockManualRepo) Delete(id uint) error {
	return nil
}

func (m *mockManualRepo) Search(q string, limit int) ([]model.Manual, error) {
	return nil, nil
}

type mockUserRepo struct{}

func (m *mockUserRepo) Create(u *model.User) error {
	return nil
}

func (m *mockUserRepo) Get(id uint) (*model.User, error) {
	return &model.User{ID: id, Name: "tester"}, nil
}

type mockRevisionRepo struct{}

func (m *mockRevisionRepo) Create(r *model.Revision) error {
	return nil
}

func (m *mockRevisionRepo) ListByEntity(kind model.EntityKind, entityID uint) ([]model.Revision, error) {
	return nil, nil
}

func newManualRouter(manualRepo *mockManualRepo) *gin.Engine {
	svc := service.NewManualService(&config.Config{}, manualRepo, &mockUserRepo{}, service.NewRevisionService(&mockRevisionRepo{}))
	h := NewManualHandler(&config.Config{}, svc)

	r := gin.New()
	r.Use(middleware.UserResolver())
	r.PUT("/manuals/:id", middleware.RequireUser(), h.Update)
	r.POST("/manuals/:id/approve", middleware.RequireUser(), h.Approve)
	r.GET("/manuals/:id", h.Get)
	return r
}

func TestManualHandlerApproveWrongState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newManualRouter(&mockManualRepo{
		GetBasicFunc: func(id uint) (*model.Manual, error) {
			return &model.Manual{ID: id, Title: "质量手册", Version: "1.0", Status: "draft"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/manuals/1/approve", nil)
	req.Header.Set("X-User-ID", "2")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestManualHandlerUpdateApprovedForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newManualRouter(&mockManualRepo{
		GetBasicFunc: func(id uint) (*model.Manual, error) {
			return &model.Manual{ID: id, Title: "质量手册", Version: "2.0", Status: "approved"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/manuals/1", strings.NewReader(`{"title":"新标题"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "2")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestManualHandlerMutationRequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newManualRouter(&mockManualRepo{
		GetBasicFunc: func(id uint) (*model.Manual, error) {
			return &model.Manual{ID: id, Title: "质量手册", Version: "1.0", Status: "review"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/manuals/1/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestManualHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newManualRouter(&mockManualRepo{})

	req := httptest.NewRequest(http.MethodGet, "/manuals/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestManualHandlerInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newManualRouter(&mockManualRepo{})

	req := httptest.NewRequest(http.MethodGet, "/manuals/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}
