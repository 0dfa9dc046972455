package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name.Ptr(),
		PasswordHash: user.PasswordHash.Ptr(),
		Type:         string(user.Type),
		Role:         string(user.Role),
		Status:       string(user.Status),
		IsSubscribed: user.IsSubscribed,
		Avatar:       user.Avatar.Ptr(),
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmailAndType gets a user by email restricted to an account type
func (r *UserRepository) GetByEmailAndType(ctx context.Context, email string, accountType entities.AccountType) (*entities.User, error) {
	var m models.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND type = ?", email, string(accountType)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// Update updates the mutable fields of a user
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"email":         user.Email,
		"name":          user.Name.Ptr(),
		"password_hash": user.PasswordHash.Ptr(),
		"role":          string(user.Role),
		"status":        string(user.Status),
		"is_subscribed": user.IsSubscribed,
		"avatar":        user.Avatar.Ptr(),
		"updated_at":    time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a user
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByType lists accounts of one type, newest first
func (r *UserRepository) ListByType(ctx context.Context, accountType entities.AccountType) ([]*entities.User, error) {
	var userModels []models.User
	err := r.db.WithContext(ctx).
		Where("type = ?", string(accountType)).
		Order("created_at DESC").
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}

	var users []*entities.User
	for _, m := range userModels {
		model := m
		users = append(users, userToEntity(&model))
	}
	return users, nil
}

// ListByTypePaged lists a page of accounts of one type, newest first.
// A limit of zero returns everything.
func (r *UserRepository) ListByTypePaged(ctx context.Context, accountType entities.AccountType, offset, limit int) ([]*entities.User, error) {
	query := r.db.WithContext(ctx).
		Where("type = ?", string(accountType)).
		Order("created_at DESC").
		Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var userModels []models.User
	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	var users []*entities.User
	for _, m := range userModels {
		model := m
		users = append(users, userToEntity(&model))
	}
	return users, nil
}

// CountByType counts accounts of one type
func (r *UserRepository) CountByType(ctx context.Context, accountType entities.AccountType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("type = ?", string(accountType)).
		Count(&count).Error
	return count, err
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         null.StringFromPtr(m.Name),
		PasswordHash: null.StringFromPtr(m.PasswordHash),
		Type:         entities.AccountType(m.Type),
		Role:         entities.UserRole(m.Role),
		Status:       entities.AccountStatus(m.Status),
		IsSubscribed: m.IsSubscribed,
		Avatar:       null.StringFromPtr(m.Avatar),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// PendingRegistrationRepository implements OTP record operations
type PendingRegistrationRepository struct {
	db *gorm.DB
}

// NewPendingRegistrationRepository creates a new pending registration repository
func NewPendingRegistrationRepository(db *gorm.DB) *PendingRegistrationRepository {
	return &PendingRegistrationRepository{db: db}
}

// Create creates a new pending registration
func (r *PendingRegistrationRepository) Create(ctx context.Context, pending *entities.PendingRegistration) error {
	m := &models.PendingRegistration{
		ID:        pending.ID,
		Email:     pending.Email,
		Purpose:   string(pending.Purpose),
		Otp:       pending.Otp,
		ExpiresAt: pending.ExpiresAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	pending.ID = m.ID
	pending.CreatedAt = m.CreatedAt
	return nil
}

// GetByEmail gets the live pending record for an email and purpose
func (r *PendingRegistrationRepository) GetByEmail(ctx context.Context, email string, purpose entities.OtpPurpose) (*entities.PendingRegistration, error) {
	var m models.PendingRegistration
	err := r.db.WithContext(ctx).
		Where("email = ? AND purpose = ?", email, string(purpose)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.PendingRegistration{
		ID:        m.ID,
		Email:     m.Email,
		Otp:       m.Otp,
		Purpose:   entities.OtpPurpose(m.Purpose),
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

// Delete removes a pending registration
func (r *PendingRegistrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PendingRegistration{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
