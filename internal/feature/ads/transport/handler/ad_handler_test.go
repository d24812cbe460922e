package handler

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"adboard_backend/internal/feature/ads/domain/entity"
	"adboard_backend/internal/feature/ads/usecase"
	authentity "adboard_backend/internal/feature/auth/domain/entity"
	authusecase "adboard_backend/internal/feature/auth/usecase"
	jwtmw "adboard_backend/internal/platform/jwt"
)

// mockAdsUsecase is a mock implementation of the AdsUsecase interface.
type mockAdsUsecase struct {
	PostFunc       func(ctx context.Context, userID uint, title, desc string) (*entity.Advertisement, error)
	GetFunc        func(ctx context.Context, id uint) (*entity.Advertisement, error)
	ListFunc       func(ctx context.Context) ([]entity.Advertisement, error)
	ListByUserFunc func(ctx context.Context, userID uint) ([]entity.Advertisement, error)
}

func (m *mockAdsUsecase) Post(ctx context.Context, userID uint, title, desc string) (*entity.Advertisement, error) {
	if m.PostFunc != nil {
		return m.PostFunc(ctx, userID, title, desc)
	}
	return &entity.Advertisement{ID: 1, UserID: userID, Title: title, Desc: desc}, nil
}

func (m *mockAdsUsecase) Get(ctx context.Context, id uint) (*entity.Advertisement, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, usecase.ErrAdNotFound
}

func (m *mockAdsUsecase) List(ctx context.Context) ([]entity.Advertisement, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockAdsUsecase) ListByUser(ctx context.Context, userID uint) ([]entity.Advertisement, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

// mockUserDirectory is a mock implementation of the UserDirectory interface.
type mockUserDirectory struct {
	FindByIDFunc func(ctx context.Context, id uint) (*authentity.User, error)
}

func (m *mockUserDirectory) FindByID(ctx context.Context, id uint) (*authentity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, authusecase.ErrUserNotFound
}

// newTestRouter builds a router with stub templates for the page handlers.
func newTestRouter(h *AdHandler, authenticatedAs uint) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("t").Parse(
		`{{define "index.html"}}index:{{len .result}}{{end}}` +
			`{{define "note.html"}}note:{{.title}}:{{.result.Name}}{{end}}` +
			`{{define "advt.html"}}advt{{end}}` +
			`{{define "profile.html"}}profile:{{.name}}:{{len .note_result}}{{end}}`)))
	if authenticatedAs != 0 {
		r.Use(func(c *gin.Context) { c.Set(jwtmw.ContextUserID, authenticatedAs) })
	}
	r.GET("/", h.Index)
	r.GET("/note/:advt_id", h.Note)
	r.GET("/advt", h.NewAdPage)
	r.POST("/advt", h.CreateAd)
	r.GET("/profile/:user_id", h.Profile)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestAdHandler_Index(t *testing.T) {
	t.Run("renders all ads", func(t *testing.T) {
		mockAds := &mockAdsUsecase{
			ListFunc: func(ctx context.Context) ([]entity.Advertisement, error) {
				return []entity.Advertisement{
					{ID: 1, Title: "First"},
					{ID: 2, Title: "Second"},
				}, nil
			},
		}
		h := NewAdHandler(mockAds, &mockUserDirectory{})
		r := newTestRouter(h, 0)

		w := get(r, "/")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "index:2", w.Body.String())
	})

	t.Run("empty board", func(t *testing.T) {
		h := NewAdHandler(&mockAdsUsecase{}, &mockUserDirectory{})
		r := newTestRouter(h, 0)

		w := get(r, "/")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "index:0", w.Body.String())
	})
}

func TestAdHandler_Note(t *testing.T) {
	t.Run("renders ad with author", func(t *testing.T) {
		mockAds := &mockAdsUsecase{
			GetFunc: func(ctx context.Context, id uint) (*entity.Advertisement, error) {
				return &entity.Advertisement{ID: id, UserID: 7, Title: "Bike"}, nil
			},
		}
		mockUsers := &mockUserDirectory{
			FindByIDFunc: func(ctx context.Context, id uint) (*authentity.User, error) {
				return &authentity.User{ID: id, Name: "Alice"}, nil
			},
		}
		h := NewAdHandler(mockAds, mockUsers)
		r := newTestRouter(h, 0)

		w := get(r, "/note/3")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "note:Bike:Alice", w.Body.String())
	})

	t.Run("missing ad: 404", func(t *testing.T) {
		h := NewAdHandler(&mockAdsUsecase{}, &mockUserDirectory{})
		r := newTestRouter(h, 0)

		w := get(r, "/note/999999")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id: 404", func(t *testing.T) {
		h := NewAdHandler(&mockAdsUsecase{}, &mockUserDirectory{})
		r := newTestRouter(h, 0)

		w := get(r, "/note/abc")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdHandler_CreateAd(t *testing.T) {
	t.Run("authenticated: creates and redirects to note", func(t *testing.T) {
		mockAds := &mockAdsUsecase{
			PostFunc: func(ctx context.Context, userID uint, title, desc string) (*entity.Advertisement, error) {
				if userID != 42 {
					t.Errorf("expected userID 42, got %d", userID)
				}
				return &entity.Advertisement{ID: 5, UserID: userID, Title: title, Desc: desc}, nil
			},
		}
		h := NewAdHandler(mockAds, &mockUserDirectory{})
		r := newTestRouter(h, 42)

		form := url.Values{"title": {"Bike"}, "desc": {"Red bike"}}
		req, _ := http.NewRequest(http.MethodPost, "/advt", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/note/5", w.Header().Get("Location"))
	})

	t.Run("anonymous: redirect to login", func(t *testing.T) {
		h := NewAdHandler(&mockAdsUsecase{}, &mockUserDirectory{})
		r := newTestRouter(h, 0)

		form := url.Values{"title": {"Bike"}, "desc": {"Red bike"}}
		req, _ := http.NewRequest(http.MethodPost, "/advt", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("missing fields: 400", func(t *testing.T) {
		h := NewAdHandler(&mockAdsUsecase{}, &mockUserDirectory{})
		r := newTestRouter(h, 42)

		form := url.Values{"title": {"Bike"}}
		req, _ := http.NewRequest(http.MethodPost, "/advt", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("stale token for deleted user: cookie cleared, redirect to login", func(t *testing.T) {
		mockAds := &mockAdsUsecase{
			PostFunc: func(ctx context.Context, userID uint, title, desc string) (*entity.Advertisement, error) {
				return nil, usecase.ErrOwnerNotFound
			},
		}
		h := NewAdHandler(mockAds, &mockUserDirectory{})
		r := newTestRouter(h, 42)

		form := url.Values{"title": {"Bike"}, "desc": {"Red bike"}}
		req, _ := http.NewRequest(http.MethodPost, "/advt", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})
}

func TestAdHandler_Profile(t *testing.T) {
	t.Run("renders user with their ads", func(t *testing.T) {
		mockUsers := &mockUserDirectory{
			FindByIDFunc: func(ctx context.Context, id uint) (*authentity.User, error) {
				return &authentity.User{ID: id, Name: "Alice", Email: "a@x.com"}, nil
			},
		}
		mockAds := &mockAdsUsecase{
			ListByUserFunc: func(ctx context.Context, userID uint) ([]entity.Advertisement, error) {
				return []entity.Advertisement{{ID: 1, UserID: userID, Title: "Bike"}}, nil
			},
		}
		h := NewAdHandler(mockAds, mockUsers)
		r := newTestRouter(h, 0)

		w := get(r, "/profile/7")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "profile:Alice:1", w.Body.String())
	})

	t.Run("missing user: 404", func(t *testing.T) {
		h := NewAdHandler(&mockAdsUsecase{}, &mockUserDirectory{})
		r := newTestRouter(h, 0)

		w := get(r, "/profile/999999")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
