package services

import (
	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/repository"
)

type BonusService struct {
	Repo  *repository.BonusRepository
	Users *repository.UserRepository
}

func NewBonusService(repo *repository.BonusRepository, users *repository.UserRepository) *BonusService {
	return &BonusService{Repo: repo, Users: users}
}

type BonusOverview struct {
	Balance int64                     `json:"balance"`
	History []entity.BonusTransaction `json:"history"`
}

func (s *BonusService) Overview(userID uint) (*BonusOverview, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	history, err := s.Repo.ListForUser(userID, 50)
	if err != nil {
		return nil, err
	}
	return &BonusOverview{Balance: user.BonusPoints, History: history}, nil
}
