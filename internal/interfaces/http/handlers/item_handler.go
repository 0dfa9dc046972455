package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/interfaces/http/middleware"
	"maintenance-genie.backend/internal/interfaces/http/response"
)

type ItemService interface {
	AddItem(ctx context.Context, userID uuid.UUID, input *entities.CreateItemInput, imageName string) (*entities.Item, error)
	ListItems(ctx context.Context, userID uuid.UUID) ([]*entities.Item, error)
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (*entities.Item, error)
}

// UploadSaver stores an uploaded file under a server-generated name
type UploadSaver interface {
	Save(file *multipart.FileHeader) (string, error)
}

// ItemHandler handles item tracking endpoints
type ItemHandler struct {
	itemUsecase ItemService
	uploads     UploadSaver
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemUsecase ItemService, uploads UploadSaver) *ItemHandler {
	return &ItemHandler{itemUsecase: itemUsecase, uploads: uploads}
}

// AddItem creates an item from the multipart form and enriches it
// POST /api/items
func (h *ItemHandler) AddItem(c *gin.Context) {
	var input entities.CreateItemInput

	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var imageName string
	if file, err := c.FormFile("img"); err == nil {
		imageName, err = h.uploads.Save(file)
		if err != nil {
			response.Error(c, domainerrors.InternalServerError("Failed to store uploaded image"))
			return
		}
	}

	item, err := h.itemUsecase.AddItem(c.Request.Context(), userID, &input, imageName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"success": true, "item": item})
}

// ListItems lists the caller's items
// GET /api/items
func (h *ItemHandler) ListItems(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	items, err := h.itemUsecase.ListItems(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// GetItem returns one of the caller's items
// GET /api/items/:id
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid item ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	item, err := h.itemUsecase.GetItem(c.Request.Context(), userID, itemID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Item not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item": item})
}
