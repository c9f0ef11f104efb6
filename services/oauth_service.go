package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/pkg/tokenstore"
	"github.com/algrishin88/neurocoffee/pkg/yandex"
	"github.com/algrishin88/neurocoffee/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const oauthStateTTL = 10 * time.Minute

type OAuthService struct {
	Client *yandex.OAuthClient
	States tokenstore.Store
	Users  *repository.UserRepository
	Auth   *AuthService
}

func NewOAuthService(client *yandex.OAuthClient, states tokenstore.Store, users *repository.UserRepository, auth *AuthService) *OAuthService {
	return &OAuthService{Client: client, States: states, Users: users, Auth: auth}
}

func (s *OAuthService) Configured() bool {
	return s.Client.Configured()
}

// Begin mints a one-time state, stores it with a TTL and returns the Yandex
// authorization URL.
func (s *OAuthService) Begin(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.States.Set(ctx, "oauth:state:"+state, "1", oauthStateTTL); err != nil {
		return "", err
	}
	return s.Client.AuthorizationURL(state), nil
}

// Callback verifies and consumes the state, exchanges the code, then finds
// or creates the local account and returns a session token for it.
func (s *OAuthService) Callback(ctx context.Context, state, code string) (*AuthRes, error) {
	key := "oauth:state:" + state
	if _, err := s.States.Get(ctx, key); err != nil {
		if errors.Is(err, tokenstore.ErrNotFound) {
			return nil, ErrStateMismatch
		}
		return nil, err
	}
	// One-shot: a replayed callback with the same state must fail.
	if err := s.States.Delete(ctx, key); err != nil {
		return nil, err
	}

	info, err := s.Client.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.findOrCreate(info)
	if err != nil {
		return nil, err
	}

	token, err := s.Auth.TokenFor(user)
	if err != nil {
		return nil, err
	}
	return &AuthRes{Token: token, User: user}, nil
}

func (s *OAuthService) findOrCreate(info *yandex.UserInfo) (*entity.User, error) {
	user, err := s.Users.FindByYandexID(info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(info.DefaultEmail))
	if email != "" {
		// Link by email when the account pre-dates the OAuth login.
		user, err = s.Users.FindByEmail(email)
		if err == nil {
			if err := s.Users.Update(user.ID, map[string]any{"yandex_id": info.ID}); err != nil {
				return nil, err
			}
			yid := info.ID
			user.YandexID = &yid
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		email = fmt.Sprintf("yandex_%s@yandex.id", info.ID)
	}

	yid := info.ID
	created := entity.User{
		Email:     email,
		FirstName: info.FirstName,
		LastName:  info.LastName,
		YandexID:  &yid,
		Role:      "user",
	}
	if err := s.Users.Create(&created); err != nil {
		return nil, err
	}
	return &created, nil
}
