package services

import (
	"errors"
	"strings"

	"github.com/algrishin88/neurocoffee/pkg/mailer"
	"github.com/algrishin88/neurocoffee/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTokenNotFound    = errors.New("unsubscribe token not found")
	ErrMailUnconfigured = errors.New("smtp is not configured")
)

type NewsletterService struct {
	Repo   *repository.NewsletterRepository
	Mailer *mailer.Mailer
}

func NewNewsletterService(repo *repository.NewsletterRepository, m *mailer.Mailer) *NewsletterService {
	return &NewsletterService{Repo: repo, Mailer: m}
}

func (s *NewsletterService) Subscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.Repo.Subscribe(email, uuid.NewString())
}

func (s *NewsletterService) Unsubscribe(token string) error {
	err := s.Repo.UnsubscribeByToken(token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTokenNotFound
	}
	return err
}

type BroadcastRes struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Broadcast sends a campaign to every active subscriber.
func (s *NewsletterService) Broadcast(subject, htmlContent string) (*BroadcastRes, error) {
	if !s.Mailer.Configured() {
		return nil, ErrMailUnconfigured
	}
	subs, err := s.Repo.ActiveSubscribers()
	if err != nil {
		return nil, err
	}
	recipients := make([]mailer.Recipient, 0, len(subs))
	for _, sub := range subs {
		recipients = append(recipients, mailer.Recipient{
			Email:            sub.Email,
			UnsubscribeToken: sub.UnsubscribeToken,
		})
	}
	sent, failed := s.Mailer.SendNewsletter(recipients, subject, htmlContent)
	return &BroadcastRes{Sent: sent, Failed: failed}, nil
}
