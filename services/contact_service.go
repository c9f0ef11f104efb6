package services

import (
	"log/slog"
	"strings"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/pkg/mailer"
	"github.com/algrishin88/neurocoffee/repository"
)

type ContactService struct {
	Repo   *repository.ContactRepository
	Mailer *mailer.Mailer
	Log    *slog.Logger
}

func NewContactService(repo *repository.ContactRepository, m *mailer.Mailer, log *slog.Logger) *ContactService {
	return &ContactService{Repo: repo, Mailer: m, Log: log}
}

type ContactReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Submit stores the message first; the e-mail forward is best effort.
func (s *ContactService) Submit(req *ContactReq) (*entity.Contact, error) {
	contact := entity.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Message: strings.TrimSpace(req.Message),
		Status:  "new",
	}
	if err := s.Repo.Create(&contact); err != nil {
		return nil, err
	}

	if s.Mailer.Configured() {
		if err := s.Mailer.SendContact(contact.Name, contact.Email, contact.Message); err != nil {
			s.Log.Warn("contact mail forward failed", "contactId", contact.ID, "error", err)
		}
	}
	return &contact, nil
}
