package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/domain/repositories"
	"maintenance-genie.backend/internal/infrastructure/mail"
	"maintenance-genie.backend/pkg/crypto"
	"maintenance-genie.backend/pkg/logger"
	"maintenance-genie.backend/pkg/utils"
)

// AdminUsecase handles back-office account management
type AdminUsecase struct {
	userRepo    repositories.UserRepository
	serviceRepo repositories.ServiceRepository
	mailer      mail.Mailer
	uploads     UploadRemover
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	serviceRepo repositories.ServiceRepository,
	mailer mail.Mailer,
	uploads UploadRemover,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:    userRepo,
		serviceRepo: serviceRepo,
		mailer:      mailer,
		uploads:     uploads,
	}
}

// ChangePassword verifies the old password before storing the new one
func (u *AdminUsecase) ChangePassword(ctx context.Context, adminID uuid.UUID, input *entities.ChangePasswordInput) error {
	admin, err := u.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.OldPassword, admin.PasswordHash.String) {
		return domainerrors.Unauthorized("Old password is incorrect")
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	admin.PasswordHash = null.StringFrom(hash)
	return u.userRepo.Update(ctx, admin)
}

// UpdateAvatar stores the new avatar filename and removes the replaced file
func (u *AdminUsecase) UpdateAvatar(ctx context.Context, adminID uuid.UUID, filename string) (*entities.User, error) {
	admin, err := u.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	old := admin.Avatar.String
	admin.Avatar = null.StringFrom(filename)
	if err := u.userRepo.Update(ctx, admin); err != nil {
		return nil, err
	}

	if old != "" && old != filename {
		if err := u.uploads.Remove(old); err != nil {
			logger.Warn(ctx, "failed to remove replaced avatar", zap.String("file", old), zap.Error(err))
		}
	}
	return admin, nil
}

// UpdateDetails edits the optional profile fields. At least one must be set.
func (u *AdminUsecase) UpdateDetails(ctx context.Context, adminID uuid.UUID, input *entities.UpdateDetailsInput) (*entities.User, error) {
	if input.Name == "" && input.Email == "" {
		return nil, domainerrors.BadRequest("Nothing to update")
	}

	admin, err := u.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != admin.Email {
		if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
			return nil, domainerrors.Conflict(MsgEmailAlreadyRegistered)
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		admin.Email = input.Email
	}
	if input.Name != "" {
		admin.Name = null.StringFrom(input.Name)
	}

	if err := u.userRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// ListAdmins lists all admin accounts
func (u *AdminUsecase) ListAdmins(ctx context.Context) ([]*entities.User, error) {
	return u.userRepo.ListByType(ctx, entities.AccountTypeAdmin)
}

// ListUsers lists a page of end-user accounts, newest first
func (u *AdminUsecase) ListUsers(ctx context.Context, page, limit int) ([]*entities.User, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)

	total, err := u.userRepo.CountByType(ctx, entities.AccountTypeUser)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}

	users, err := u.userRepo.ListByTypePaged(ctx, entities.AccountTypeUser, params.CalculateOffset(), params.Limit)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return users, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// CountUsers counts end-user accounts
func (u *AdminUsecase) CountUsers(ctx context.Context) (int64, error) {
	return u.userRepo.CountByType(ctx, entities.AccountTypeUser)
}

// DeleteAdmin removes another admin account. Self-deletion is rejected.
func (u *AdminUsecase) DeleteAdmin(ctx context.Context, requesterID, targetID uuid.UUID) error {
	if requesterID == targetID {
		return domainerrors.BadRequest("You cannot delete your own account")
	}

	target, err := u.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Type != entities.AccountTypeAdmin {
		return domainerrors.ErrNotFound
	}
	return u.userRepo.SoftDelete(ctx, targetID)
}

// InviteAdmin creates an admin account with a generated password and mails
// the invitation.
func (u *AdminUsecase) InviteAdmin(ctx context.Context, input *entities.InviteAdminInput) (*entities.User, error) {
	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.Conflict(MsgEmailAlreadyRegistered)
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	password, err := crypto.GenerateInvitePassword()
	if err != nil {
		return nil, err
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &entities.User{
		Email:        input.Email,
		PasswordHash: null.StringFrom(hash),
		Type:         entities.AccountTypeAdmin,
		Role:         entities.UserRoleNormal,
		Status:       entities.AccountStatusActive,
	}
	if err := u.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	if err := u.mailer.SendAdminInvitation(ctx, admin.Email, password); err != nil {
		logger.Error(ctx, "failed to send admin invitation", zap.String("email", admin.Email), zap.Error(err))
	}
	return admin, nil
}

// SetUserStatus suspends or reactivates an end-user account
func (u *AdminUsecase) SetUserStatus(ctx context.Context, userID uuid.UUID, status entities.AccountStatus) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Type != entities.AccountTypeUser {
		return nil, domainerrors.ErrNotFound
	}

	user.Status = status
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateService adds a purchasable plan
func (u *AdminUsecase) CreateService(ctx context.Context, input *entities.CreateServiceInput) (*entities.Service, error) {
	service := &entities.Service{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Features:    input.Features,
		Plan:        input.Plan,
	}
	if err := u.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// ListServices lists the purchasable plans
func (u *AdminUsecase) ListServices(ctx context.Context) ([]*entities.Service, error) {
	return u.serviceRepo.List(ctx)
}
