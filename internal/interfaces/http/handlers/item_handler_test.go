package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/interfaces/http/middleware"
	"maintenance-genie.backend/internal/usecases"
)

type itemServiceStub struct {
	addFn  func(ctx context.Context, userID uuid.UUID, input *entities.CreateItemInput, imageName string) (*entities.Item, error)
	listFn func(ctx context.Context, userID uuid.UUID) ([]*entities.Item, error)
	getFn  func(ctx context.Context, userID, itemID uuid.UUID) (*entities.Item, error)
}

func (s itemServiceStub) AddItem(ctx context.Context, userID uuid.UUID, input *entities.CreateItemInput, imageName string) (*entities.Item, error) {
	return s.addFn(ctx, userID, input, imageName)
}

func (s itemServiceStub) ListItems(ctx context.Context, userID uuid.UUID) ([]*entities.Item, error) {
	return s.listFn(ctx, userID)
}

func (s itemServiceStub) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*entities.Item, error) {
	return s.getFn(ctx, userID, itemID)
}

type uploadSaverStub struct {
	saveFn func(file *multipart.FileHeader) (string, error)
}

func (s uploadSaverStub) Save(file *multipart.FileHeader) (string, error) {
	return s.saveFn(file)
}

func itemForm(t *testing.T, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":          "Daily Driver",
		"brand":         "Toyota",
		"model":         "Corolla",
		"category":      "car",
		"purchase_date": "2023-05-10",
		"total_mileage": "42000",
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if withImage {
		fw, err := mw.CreateFormFile("img", "car.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte("jpeg-bytes")); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestItemHandler_AddItem(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()

	t.Run("with image", func(t *testing.T) {
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, userID) })
		h := NewItemHandler(itemServiceStub{
			addFn: func(_ context.Context, id uuid.UUID, input *entities.CreateItemInput, imageName string) (*entities.Item, error) {
				if id != userID {
					t.Fatalf("unexpected user id: %s", id)
				}
				if imageName != "stored.jpg" {
					t.Fatalf("unexpected image name: %s", imageName)
				}
				if input.Brand != "Toyota" {
					t.Fatalf("unexpected brand: %s", input.Brand)
				}
				return &entities.Item{ID: uuid.New(), UserID: id, Name: input.Name}, nil
			},
		}, uploadSaverStub{
			saveFn: func(file *multipart.FileHeader) (string, error) {
				if file.Filename != "car.jpg" {
					t.Fatalf("unexpected upload name: %s", file.Filename)
				}
				return "stored.jpg", nil
			},
		})
		r.POST("/api/items", h.AddItem)

		body, contentType := itemForm(t, true)
		req := httptest.NewRequest(http.MethodPost, "/api/items", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("without image", func(t *testing.T) {
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, userID) })
		h := NewItemHandler(itemServiceStub{
			addFn: func(_ context.Context, _ uuid.UUID, input *entities.CreateItemInput, imageName string) (*entities.Item, error) {
				if imageName != "" {
					t.Fatalf("expected empty image name, got %s", imageName)
				}
				return &entities.Item{ID: uuid.New(), Name: input.Name}, nil
			},
		}, uploadSaverStub{
			saveFn: func(*multipart.FileHeader) (string, error) {
				t.Fatal("should not be called")
				return "", nil
			},
		})
		r.POST("/api/items", h.AddItem)

		body, contentType := itemForm(t, false)
		req := httptest.NewRequest(http.MethodPost, "/api/items", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("enrichment failure surfaces 500", func(t *testing.T) {
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, userID) })
		h := NewItemHandler(itemServiceStub{
			addFn: func(context.Context, uuid.UUID, *entities.CreateItemInput, string) (*entities.Item, error) {
				return nil, domainerrors.ExternalService(usecases.MsgEnrichmentFailed, nil)
			},
		}, uploadSaverStub{})
		r.POST("/api/items", h.AddItem)

		body, contentType := itemForm(t, false)
		req := httptest.NewRequest(http.MethodPost, "/api/items", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d body=%s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), usecases.MsgEnrichmentFailed) {
			t.Fatalf("expected enrichment message, body=%s", w.Body.String())
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, userID) })
		h := NewItemHandler(itemServiceStub{
			addFn: func(context.Context, uuid.UUID, *entities.CreateItemInput, string) (*entities.Item, error) {
				t.Fatal("should not be called")
				return nil, nil
			},
		}, uploadSaverStub{})
		r.POST("/api/items", h.AddItem)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		_ = mw.WriteField("name", "Daily Driver")
		_ = mw.Close()
		req := httptest.NewRequest(http.MethodPost, "/api/items", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestItemHandler_ListItems(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, userID) })
	h := NewItemHandler(itemServiceStub{
		listFn: func(_ context.Context, id uuid.UUID) ([]*entities.Item, error) {
			return []*entities.Item{{ID: uuid.New(), UserID: id, Name: "Mower"}}, nil
		},
	}, uploadSaverStub{})
	r.GET("/api/items", h.ListItems)

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Mower") {
		t.Fatalf("expected items payload, body=%s", w.Body.String())
	}
}

func TestItemHandler_GetItem(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	itemID := uuid.New()

	t.Run("not found", func(t *testing.T) {
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, userID) })
		h := NewItemHandler(itemServiceStub{
			getFn: func(context.Context, uuid.UUID, uuid.UUID) (*entities.Item, error) {
				return nil, domainerrors.ErrNotFound
			},
		}, uploadSaverStub{})
		r.GET("/api/items/:id", h.GetItem)

		req := httptest.NewRequest(http.MethodGet, "/api/items/"+itemID.String(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("bad id", func(t *testing.T) {
		r := gin.New()
		h := NewItemHandler(itemServiceStub{}, uploadSaverStub{})
		r.GET("/api/items/:id", h.GetItem)

		req := httptest.NewRequest(http.MethodGet, "/api/items/not-a-uuid", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
