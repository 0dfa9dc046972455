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
	"github.com/volatiletech/null/v8"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/interfaces/http/middleware"
	"maintenance-genie.backend/pkg/utils"
)

type adminServiceStub struct {
	changePasswordFn func(ctx context.Context, adminID uuid.UUID, input *entities.ChangePasswordInput) error
	updateAvatarFn   func(ctx context.Context, adminID uuid.UUID, filename string) (*entities.User, error)
	updateDetailsFn  func(ctx context.Context, adminID uuid.UUID, input *entities.UpdateDetailsInput) (*entities.User, error)
	listAdminsFn     func(ctx context.Context) ([]*entities.User, error)
	listUsersFn      func(ctx context.Context, page, limit int) ([]*entities.User, utils.PaginationMeta, error)
	countUsersFn     func(ctx context.Context) (int64, error)
	deleteAdminFn    func(ctx context.Context, requesterID, targetID uuid.UUID) error
	inviteFn         func(ctx context.Context, input *entities.InviteAdminInput) (*entities.User, error)
	setStatusFn      func(ctx context.Context, userID uuid.UUID, status entities.AccountStatus) (*entities.User, error)
	createServiceFn  func(ctx context.Context, input *entities.CreateServiceInput) (*entities.Service, error)
	listServicesFn   func(ctx context.Context) ([]*entities.Service, error)
}

func (s adminServiceStub) ChangePassword(ctx context.Context, adminID uuid.UUID, input *entities.ChangePasswordInput) error {
	return s.changePasswordFn(ctx, adminID, input)
}

func (s adminServiceStub) UpdateAvatar(ctx context.Context, adminID uuid.UUID, filename string) (*entities.User, error) {
	return s.updateAvatarFn(ctx, adminID, filename)
}

func (s adminServiceStub) UpdateDetails(ctx context.Context, adminID uuid.UUID, input *entities.UpdateDetailsInput) (*entities.User, error) {
	return s.updateDetailsFn(ctx, adminID, input)
}

func (s adminServiceStub) ListAdmins(ctx context.Context) ([]*entities.User, error) {
	return s.listAdminsFn(ctx)
}

func (s adminServiceStub) ListUsers(ctx context.Context, page, limit int) ([]*entities.User, utils.PaginationMeta, error) {
	return s.listUsersFn(ctx, page, limit)
}

func (s adminServiceStub) CountUsers(ctx context.Context) (int64, error) {
	return s.countUsersFn(ctx)
}

func (s adminServiceStub) DeleteAdmin(ctx context.Context, requesterID, targetID uuid.UUID) error {
	return s.deleteAdminFn(ctx, requesterID, targetID)
}

func (s adminServiceStub) InviteAdmin(ctx context.Context, input *entities.InviteAdminInput) (*entities.User, error) {
	return s.inviteFn(ctx, input)
}

func (s adminServiceStub) SetUserStatus(ctx context.Context, userID uuid.UUID, status entities.AccountStatus) (*entities.User, error) {
	return s.setStatusFn(ctx, userID, status)
}

func (s adminServiceStub) CreateService(ctx context.Context, input *entities.CreateServiceInput) (*entities.Service, error) {
	return s.createServiceFn(ctx, input)
}

func (s adminServiceStub) ListServices(ctx context.Context) ([]*entities.Service, error) {
	return s.listServicesFn(ctx)
}

type adminAuthServiceStub struct {
	adminLoginFn func(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

func (s adminAuthServiceStub) AdminLogin(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	return s.adminLoginFn(ctx, input)
}

func (s adminAuthServiceStub) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.getByIDFn(ctx, id)
}

type mailTriageServiceStub struct {
	listFn   func(ctx context.Context) ([]*entities.Mail, error)
	toggleFn func(ctx context.Context, id uuid.UUID) (*entities.Mail, error)
}

func (s mailTriageServiceStub) ListMails(ctx context.Context) ([]*entities.Mail, error) {
	return s.listFn(ctx)
}

func (s mailTriageServiceStub) ToggleMailStatus(ctx context.Context, id uuid.UUID) (*entities.Mail, error) {
	return s.toggleFn(ctx, id)
}

func adminRouter(adminID uuid.UUID, h *AdminHandler, register func(r *gin.Engine)) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, adminID) })
	register(r)
	return r
}

func TestAdminHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unknown admin is 404", func(t *testing.T) {
		r := gin.New()
		h := NewAdminHandler(adminServiceStub{}, adminAuthServiceStub{
			adminLoginFn: func(context.Context, *entities.LoginInput) (*entities.AuthResponse, error) {
				return nil, domainerrors.NotFound("You are not registered as an admin")
			},
		}, mailTriageServiceStub{}, uploadSaverStub{})
		r.POST("/api/admin/login", h.Login)

		w := postJSON(t, r, "/api/admin/login", `{"email":"ghost@genie.io","password":"password123"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		r := gin.New()
		h := NewAdminHandler(adminServiceStub{}, adminAuthServiceStub{
			adminLoginFn: func(context.Context, *entities.LoginInput) (*entities.AuthResponse, error) {
				return &entities.AuthResponse{Token: "admin-session", User: &entities.User{Email: "ops@genie.io"}}, nil
			},
		}, mailTriageServiceStub{}, uploadSaverStub{})
		r.POST("/api/admin/login", h.Login)

		w := postJSON(t, r, "/api/admin/login", `{"email":"ops@genie.io","password":"password123"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "admin-session") {
			t.Fatalf("expected token, body=%s", w.Body.String())
		}
	})
}

func TestAdminHandler_ChangePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	adminID := uuid.New()

	t.Run("wrong old password", func(t *testing.T) {
		h := NewAdminHandler(adminServiceStub{
			changePasswordFn: func(context.Context, uuid.UUID, *entities.ChangePasswordInput) error {
				return domainerrors.Unauthorized("Old password is incorrect")
			},
		}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{})
		r := adminRouter(adminID, h, func(r *gin.Engine) {
			r.POST("/api/admin/change-password", h.ChangePassword)
		})

		w := postJSON(t, r, "/api/admin/change-password",
			`{"oldPassword":"wrong-password","newPassword":"new-password-1"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		h := NewAdminHandler(adminServiceStub{
			changePasswordFn: func(_ context.Context, id uuid.UUID, input *entities.ChangePasswordInput) error {
				if id != adminID {
					t.Fatalf("unexpected admin id: %s", id)
				}
				if input.NewPassword != "new-password-1" {
					t.Fatalf("unexpected new password: %s", input.NewPassword)
				}
				return nil
			},
		}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{})
		r := adminRouter(adminID, h, func(r *gin.Engine) {
			r.POST("/api/admin/change-password", h.ChangePassword)
		})

		w := postJSON(t, r, "/api/admin/change-password",
			`{"oldPassword":"password123","newPassword":"new-password-1"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
	})
}

func TestAdminHandler_UpdateImage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	adminID := uuid.New()
	h := NewAdminHandler(adminServiceStub{
		updateAvatarFn: func(_ context.Context, id uuid.UUID, filename string) (*entities.User, error) {
			if filename != "stored.png" {
				t.Fatalf("unexpected filename: %s", filename)
			}
			return &entities.User{ID: id, Avatar: null.StringFrom(filename)}, nil
		},
	}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{
		saveFn: func(file *multipart.FileHeader) (string, error) {
			return "stored.png", nil
		},
	})
	r := adminRouter(adminID, h, func(r *gin.Engine) {
		r.PUT("/api/admin/update-image", h.UpdateImage)
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("profilePicture", "avatar.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/admin/update-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "stored.png") {
		t.Fatalf("expected avatar payload, body=%s", w.Body.String())
	}
}

func TestAdminHandler_UpdateImage_MissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewAdminHandler(adminServiceStub{}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{})
	r := adminRouter(uuid.New(), h, func(r *gin.Engine) {
		r.PUT("/api/admin/update-image", h.UpdateImage)
	})

	req := httptest.NewRequest(http.MethodPut, "/api/admin/update-image", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAdminHandler_DeleteAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	adminID := uuid.New()
	targetID := uuid.New()

	t.Run("self deletion rejected", func(t *testing.T) {
		h := NewAdminHandler(adminServiceStub{
			deleteAdminFn: func(_ context.Context, requesterID, target uuid.UUID) error {
				return domainerrors.BadRequest("You cannot delete your own account")
			},
		}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{})
		r := adminRouter(adminID, h, func(r *gin.Engine) {
			r.DELETE("/api/admin/admins/:id", h.DeleteAdmin)
		})

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/admins/"+adminID.String(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		h := NewAdminHandler(adminServiceStub{
			deleteAdminFn: func(_ context.Context, requesterID, target uuid.UUID) error {
				if requesterID != adminID || target != targetID {
					t.Fatalf("unexpected ids: %s %s", requesterID, target)
				}
				return nil
			},
		}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{})
		r := adminRouter(adminID, h, func(r *gin.Engine) {
			r.DELETE("/api/admin/admins/:id", h.DeleteAdmin)
		})

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/admins/"+targetID.String(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
	})
}

func TestAdminHandler_SuspendAndActivate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	adminID := uuid.New()
	userID := uuid.New()
	var gotStatus entities.AccountStatus

	h := NewAdminHandler(adminServiceStub{
		setStatusFn: func(_ context.Context, id uuid.UUID, status entities.AccountStatus) (*entities.User, error) {
			gotStatus = status
			return &entities.User{ID: id, Status: status}, nil
		},
	}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{})
	r := adminRouter(adminID, h, func(r *gin.Engine) {
		r.PUT("/api/admin/users/:id/suspend", h.SuspendUser)
		r.PUT("/api/admin/users/:id/activate", h.ActivateUser)
	})

	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/"+userID.String()+"/suspend", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if gotStatus != entities.AccountStatusSuspended {
		t.Fatalf("expected suspended, got %s", gotStatus)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/admin/users/"+userID.String()+"/activate", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if gotStatus != entities.AccountStatusActive {
		t.Fatalf("expected active, got %s", gotStatus)
	}
}

func TestAdminHandler_Invite(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("conflict", func(t *testing.T) {
		h := NewAdminHandler(adminServiceStub{
			inviteFn: func(context.Context, *entities.InviteAdminInput) (*entities.User, error) {
				return nil, domainerrors.Conflict("Email already registered")
			},
		}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{})
		r := adminRouter(uuid.New(), h, func(r *gin.Engine) {
			r.POST("/api/admin/invite", h.Invite)
		})

		w := postJSON(t, r, "/api/admin/invite", `{"email":"taken@genie.io"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		h := NewAdminHandler(adminServiceStub{
			inviteFn: func(_ context.Context, input *entities.InviteAdminInput) (*entities.User, error) {
				return &entities.User{ID: uuid.New(), Email: input.Email, Type: entities.AccountTypeAdmin}, nil
			},
		}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{})
		r := adminRouter(uuid.New(), h, func(r *gin.Engine) {
			r.POST("/api/admin/invite", h.Invite)
		})

		w := postJSON(t, r, "/api/admin/invite", `{"email":"new@genie.io"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}
	})
}

func TestAdminHandler_ToggleMailStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mailID := uuid.New()
	h := NewAdminHandler(adminServiceStub{}, adminAuthServiceStub{}, mailTriageServiceStub{
		toggleFn: func(_ context.Context, id uuid.UUID) (*entities.Mail, error) {
			if id != mailID {
				t.Fatalf("unexpected mail id: %s", id)
			}
			return &entities.Mail{ID: id, Status: entities.MailStatusSolved}, nil
		},
	}, uploadSaverStub{})
	r := adminRouter(uuid.New(), h, func(r *gin.Engine) {
		r.PUT("/api/admin/mails/:id/status", h.ToggleMailStatus)
	})

	req := httptest.NewRequest(http.MethodPut, "/api/admin/mails/"+mailID.String()+"/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), string(entities.MailStatusSolved)) {
		t.Fatalf("expected solved mail, body=%s", w.Body.String())
	}
}

func TestAdminHandler_CreateService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewAdminHandler(adminServiceStub{
		createServiceFn: func(_ context.Context, input *entities.CreateServiceInput) (*entities.Service, error) {
			return &entities.Service{ID: uuid.New(), Name: input.Name, Plan: input.Plan, Price: input.Price}, nil
		},
	}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{})
	r := adminRouter(uuid.New(), h, func(r *gin.Engine) {
		r.POST("/api/admin/services", h.CreateService)
	})

	body := `{"name":"Premium Yearly","description":"Full year","price":89.99,"features":["AI forum suggestions"],"plan":"Yearly"}`
	w := postJSON(t, r, "/api/admin/services", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/api/admin/services",
		`{"name":"Bad","description":"x","price":1,"features":[],"plan":"Weekly"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad plan, got %d", w.Code)
	}
}

func TestAdminHandler_ListUsers_PassesPageAndLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotPage, gotLimit int
	h := NewAdminHandler(adminServiceStub{
		listUsersFn: func(_ context.Context, page, limit int) ([]*entities.User, utils.PaginationMeta, error) {
			gotPage, gotLimit = page, limit
			return []*entities.User{{Email: "user@example.com"}}, utils.PaginationMeta{
				Page:       page,
				Limit:      limit,
				TotalCount: 25,
				TotalPages: 3,
			}, nil
		},
	}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{})
	r := adminRouter(uuid.New(), h, func(r *gin.Engine) {
		r.GET("/api/admin/users", h.ListUsers)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users?page=2&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if gotPage != 2 || gotLimit != 10 {
		t.Fatalf("expected page=2 limit=10, got page=%d limit=%d", gotPage, gotLimit)
	}
	if !strings.Contains(w.Body.String(), `"totalCount":25`) {
		t.Fatalf("expected pagination meta in response, got %s", w.Body.String())
	}
}

func TestAdminHandler_ListUsers_DefaultsToAllUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotPage, gotLimit int
	h := NewAdminHandler(adminServiceStub{
		listUsersFn: func(_ context.Context, page, limit int) ([]*entities.User, utils.PaginationMeta, error) {
			gotPage, gotLimit = page, limit
			return nil, utils.PaginationMeta{Page: 1, TotalPages: 1}, nil
		},
	}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{})
	r := adminRouter(uuid.New(), h, func(r *gin.Engine) {
		r.GET("/api/admin/users", h.ListUsers)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if gotPage != 1 || gotLimit != 0 {
		t.Fatalf("expected defaults page=1 limit=0, got page=%d limit=%d", gotPage, gotLimit)
	}
}

func TestAdminHandler_CountUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewAdminHandler(adminServiceStub{
		countUsersFn: func(context.Context) (int64, error) { return 42, nil },
	}, adminAuthServiceStub{}, mailTriageServiceStub{}, uploadSaverStub{})
	r := adminRouter(uuid.New(), h, func(r *gin.Engine) {
		r.GET("/api/admin/users/count", h.CountUsers)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users/count", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"count":42`) {
		t.Fatalf("expected count payload, body=%s", w.Body.String())
	}
}
