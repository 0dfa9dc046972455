package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/interfaces/http/middleware"
	"maintenance-genie.backend/internal/interfaces/http/response"
	"maintenance-genie.backend/pkg/utils"
)

type AdminService interface {
	ChangePassword(ctx context.Context, adminID uuid.UUID, input *entities.ChangePasswordInput) error
	UpdateAvatar(ctx context.Context, adminID uuid.UUID, filename string) (*entities.User, error)
	UpdateDetails(ctx context.Context, adminID uuid.UUID, input *entities.UpdateDetailsInput) (*entities.User, error)
	ListAdmins(ctx context.Context) ([]*entities.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]*entities.User, utils.PaginationMeta, error)
	CountUsers(ctx context.Context) (int64, error)
	DeleteAdmin(ctx context.Context, requesterID, targetID uuid.UUID) error
	InviteAdmin(ctx context.Context, input *entities.InviteAdminInput) (*entities.User, error)
	SetUserStatus(ctx context.Context, userID uuid.UUID, status entities.AccountStatus) (*entities.User, error)
	CreateService(ctx context.Context, input *entities.CreateServiceInput) (*entities.Service, error)
	ListServices(ctx context.Context) ([]*entities.Service, error)
}

type AdminAuthService interface {
	AdminLogin(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

type MailTriageService interface {
	ListMails(ctx context.Context) ([]*entities.Mail, error)
	ToggleMailStatus(ctx context.Context, id uuid.UUID) (*entities.Mail, error)
}

// AdminHandler handles back-office endpoints
type AdminHandler struct {
	adminUsecase   AdminService
	authUsecase    AdminAuthService
	supportUsecase MailTriageService
	uploads        UploadSaver
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase AdminService, authUsecase AdminAuthService, supportUsecase MailTriageService, uploads UploadSaver) *AdminHandler {
	return &AdminHandler{
		adminUsecase:   adminUsecase,
		authUsecase:    authUsecase,
		supportUsecase: supportUsecase,
		uploads:        uploads,
	}
}

// Login authenticates an admin
// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.authUsecase.AdminLogin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Me returns the authenticated admin
// GET /api/admin/me
func (h *AdminHandler) Me(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	admin, err := h.authUsecase.GetUserByID(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": admin})
}

// ChangePassword replaces the admin's password
// POST /api/admin/change-password
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var input entities.ChangePasswordInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	if err := h.adminUsecase.ChangePassword(c.Request.Context(), adminID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}

// UpdateImage replaces the admin's avatar
// PUT /api/admin/update-image
func (h *AdminHandler) UpdateImage(c *gin.Context) {
	file, err := c.FormFile("profilePicture")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("profilePicture file is required"))
		return
	}

	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	filename, err := h.uploads.Save(file)
	if err != nil {
		response.Error(c, domainerrors.InternalServerError("Failed to store uploaded image"))
		return
	}

	admin, err := h.adminUsecase.UpdateAvatar(c.Request.Context(), adminID, filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true, "user": admin})
}

// UpdateDetails edits the admin's name and/or email
// PUT /api/admin/update-details
func (h *AdminHandler) UpdateDetails(c *gin.Context) {
	var input entities.UpdateDetailsInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	admin, err := h.adminUsecase.UpdateDetails(c.Request.Context(), adminID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true, "user": admin})
}

// ListAdmins lists admin accounts
// GET /api/admin/admins
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminUsecase.ListAdmins(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"admins": admins})
}

// ListUsers lists end-user accounts, paginated
// GET /api/admin/users?page=1&limit=20
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	users, meta, err := h.adminUsecase.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users, "pagination": meta})
}

// CountUsers counts end-user accounts
// GET /api/admin/users/count
func (h *AdminHandler) CountUsers(c *gin.Context) {
	count, err := h.adminUsecase.CountUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": count})
}

// DeleteAdmin removes another admin account
// DELETE /api/admin/admins/:id
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid admin ID"))
		return
	}

	requesterID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	if err := h.adminUsecase.DeleteAdmin(c.Request.Context(), requesterID, targetID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Admin not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true, "message": "Admin deleted successfully"})
}

// Invite creates a new admin account and mails the credentials
// POST /api/admin/invite
func (h *AdminHandler) Invite(c *gin.Context) {
	var input entities.InviteAdminInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	admin, err := h.adminUsecase.InviteAdmin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"success": true, "user": admin})
}

// SuspendUser suspends an end-user account
// PUT /api/admin/users/:id/suspend
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	h.setUserStatus(c, entities.AccountStatusSuspended)
}

// ActivateUser reactivates an end-user account
// PUT /api/admin/users/:id/activate
func (h *AdminHandler) ActivateUser(c *gin.Context) {
	h.setUserStatus(c, entities.AccountStatusActive)
}

func (h *AdminHandler) setUserStatus(c *gin.Context, status entities.AccountStatus) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	user, err := h.adminUsecase.SetUserStatus(c.Request.Context(), userID, status)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true, "user": user})
}

// ListMails lists support messages
// GET /api/admin/mails
func (h *AdminHandler) ListMails(c *gin.Context) {
	mails, err := h.supportUsecase.ListMails(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mails": mails})
}

// ToggleMailStatus flips a support message between Pending and Solved
// PUT /api/admin/mails/:id/status
func (h *AdminHandler) ToggleMailStatus(c *gin.Context) {
	mailID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid mail ID"))
		return
	}

	mail, err := h.supportUsecase.ToggleMailStatus(c.Request.Context(), mailID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Mail not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true, "mail": mail})
}

// CreateService adds a purchasable plan
// POST /api/admin/services
func (h *AdminHandler) CreateService(c *gin.Context) {
	var input entities.CreateServiceInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	service, err := h.adminUsecase.CreateService(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"success": true, "service": service})
}

// ListServices lists purchasable plans
// GET /api/admin/services
func (h *AdminHandler) ListServices(c *gin.Context) {
	services, err := h.adminUsecase.ListServices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"services": services})
}
