package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/pkg/telegram"
	"github.com/algrishin88/neurocoffee/repository"
)

const supportHistoryLimit = 10

// SupportService escalates a site-chat conversation to a human operator:
// the chat and its recent history are stored for the back office and the
// request is forwarded to the Telegram support channel.
type SupportService struct {
	Repo     *repository.SupportRepository
	Telegram *telegram.Client
	Log      *slog.Logger
}

func NewSupportService(repo *repository.SupportRepository, tg *telegram.Client, log *slog.Logger) *SupportService {
	return &SupportService{Repo: repo, Telegram: tg, Log: log}
}

type OperatorReq struct {
	Message   string        `json:"message" binding:"required"`
	UserName  string        `json:"userName"`
	UserEmail string        `json:"userEmail"`
	History   []ChatMessage `json:"history"`
}

type OperatorRes struct {
	ChatID uint `json:"chatId"`
}

// RequestOperator records the escalation and notifies staff. Telegram
// delivery is best effort: the chat row is the durable record.
func (s *SupportService) RequestOperator(ctx context.Context, userID *uint, req *OperatorReq) (*OperatorRes, error) {
	chat := entity.SupportChat{
		UserID:    userID,
		UserName:  strings.TrimSpace(req.UserName),
		UserEmail: strings.ToLower(strings.TrimSpace(req.UserEmail)),
		Status:    "operator",
	}
	if err := s.Repo.CreateChat(&chat); err != nil {
		return nil, err
	}

	history := req.History
	if len(history) > supportHistoryLimit {
		history = history[len(history)-supportHistoryLimit:]
	}
	for _, m := range history {
		role := "user"
		if m.Role == "assistant" {
			role = "assistant"
		}
		if err := s.Repo.AddMessage(&entity.SupportMessage{
			ChatID: chat.ID, Role: role, Message: m.Text,
		}); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.AddMessage(&entity.SupportMessage{
		ChatID: chat.ID, Role: "user", Message: req.Message,
	}); err != nil {
		return nil, err
	}
	if err := s.Repo.AddMessage(&entity.SupportMessage{
		ChatID: chat.ID, Role: "system", Message: "Запрошен оператор",
	}); err != nil {
		return nil, err
	}

	if s.Telegram.Configured() {
		name := chat.UserName
		if name == "" {
			name = "Гость"
		}
		if err := s.Telegram.NotifySupport(ctx, name, chat.UserEmail, req.Message); err != nil {
			s.Log.Warn("support escalation notify failed", "chatId", chat.ID, "error", err)
		}
	}
	return &OperatorRes{ChatID: chat.ID}, nil
}
