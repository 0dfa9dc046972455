package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/infrastructure/models"
)

// MailRepository implements support-message operations
type MailRepository struct {
	db *gorm.DB
}

// NewMailRepository creates a new mail repository
func NewMailRepository(db *gorm.DB) *MailRepository {
	return &MailRepository{db: db}
}

// Create stores a new support message
func (r *MailRepository) Create(ctx context.Context, mail *entities.Mail) error {
	m := &models.Mail{
		ID:      mail.ID,
		Name:    mail.Name,
		Email:   mail.Email,
		Subject: mail.Subject,
		Message: mail.Message,
		Status:  string(mail.Status),
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	mail.ID = m.ID
	mail.CreatedAt = m.CreatedAt
	mail.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a support message by ID
func (r *MailRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Mail, error) {
	var m models.Mail
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return mailToEntity(&m), nil
}

// List lists all support messages, newest first
func (r *MailRepository) List(ctx context.Context) ([]*entities.Mail, error) {
	var mailModels []models.Mail
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&mailModels).Error; err != nil {
		return nil, err
	}

	var mails []*entities.Mail
	for _, m := range mailModels {
		model := m
		mails = append(mails, mailToEntity(&model))
	}
	return mails, nil
}

// UpdateStatus sets the handled status of a message
func (r *MailRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MailStatus) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Mail{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func mailToEntity(m *models.Mail) *entities.Mail {
	return &entities.Mail{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Status:    entities.MailStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
