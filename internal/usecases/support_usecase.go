package usecases

import (
	"context"

	"github.com/google/uuid"
	"maintenance-genie.backend/internal/domain/entities"
	"maintenance-genie.backend/internal/domain/repositories"
)

// SupportUsecase handles user-submitted support messages and their
// back-office triage.
type SupportUsecase struct {
	mailRepo repositories.MailRepository
}

// NewSupportUsecase creates a new support usecase
func NewSupportUsecase(mailRepo repositories.MailRepository) *SupportUsecase {
	return &SupportUsecase{mailRepo: mailRepo}
}

// SubmitMail stores a new support message in Pending state
func (u *SupportUsecase) SubmitMail(ctx context.Context, input *entities.CreateMailInput) (*entities.Mail, error) {
	mail := &entities.Mail{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
		Status:  entities.MailStatusPending,
	}
	if err := u.mailRepo.Create(ctx, mail); err != nil {
		return nil, err
	}
	return mail, nil
}

// ListMails lists all support messages for the back office
func (u *SupportUsecase) ListMails(ctx context.Context) ([]*entities.Mail, error) {
	return u.mailRepo.List(ctx)
}

// ToggleMailStatus flips a message between Pending and Solved
func (u *SupportUsecase) ToggleMailStatus(ctx context.Context, id uuid.UUID) (*entities.Mail, error) {
	mail, err := u.mailRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mail.Status = mail.Status.Toggle()
	if err := u.mailRepo.UpdateStatus(ctx, id, mail.Status); err != nil {
		return nil, err
	}
	return mail, nil
}
