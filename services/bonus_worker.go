package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/repository"
	"gorm.io/gorm"
)

const (
	outboxPollInterval = 5 * time.Second
	outboxBatchSize    = 20
)

// BonusWorker drains the bonus outbox: rows written at checkout are turned
// into balance credits and ledger entries here, after the order transaction
// has committed. Processing is idempotent per order, so crashes between the
// credit and the mark leave no double earn behind.
type BonusWorker struct {
	DB    *gorm.DB
	Repo  *repository.BonusRepository
	Users *repository.UserRepository
	Log   *slog.Logger
}

func NewBonusWorker(db *gorm.DB, repo *repository.BonusRepository, users *repository.UserRepository, log *slog.Logger) *BonusWorker {
	return &BonusWorker{DB: db, Repo: repo, Users: users, Log: log}
}

// Run polls until ctx is cancelled.
func (w *BonusWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(outboxPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Log.Info("bonus worker stopped")
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain processes one batch of unprocessed outbox rows.
func (w *BonusWorker) Drain(ctx context.Context) {
	rows, err := w.Repo.UnprocessedOutbox(outboxBatchSize)
	if err != nil {
		w.Log.Error("bonus outbox poll failed", "error", err)
		return
	}

	for _, row := range rows {
		if ctx.Err() != nil {
			return
		}
		if err := w.process(&row); err != nil {
			w.Log.Error("bonus credit failed", "orderId", row.OrderID, "error", err)
			if err := w.Repo.BumpOutboxAttempts(row.ID); err != nil {
				w.Log.Error("bonus outbox attempt bump failed", "outboxId", row.ID, "error", err)
			}
		}
	}
}

func (w *BonusWorker) process(row *entity.BonusOutbox) error {
	return w.DB.Transaction(func(tx *gorm.DB) error {
		earned, err := w.Repo.HasEarnedForOrder(tx, row.OrderID)
		if err != nil {
			return err
		}
		if !earned {
			if err := w.Users.AddBonusPoints(tx, row.UserID, row.Points); err != nil {
				return err
			}
			if err := w.Repo.CreateTransaction(tx, &entity.BonusTransaction{
				UserID:      row.UserID,
				Amount:      row.Points,
				Type:        entity.BonusTypeEarned,
				Description: "Начисление за заказ",
				OrderID:     &row.OrderID,
			}); err != nil {
				return err
			}
		}
		if err := w.Repo.MarkOutboxProcessed(tx, row.ID); err != nil {
			return err
		}
		w.Log.Info("bonus credited", "orderId", row.OrderID, "userId", row.UserID, "points", row.Points)
		return nil
	})
}
