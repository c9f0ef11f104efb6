package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/algrishin88/neurocoffee/pkg/tokenstore"
	"github.com/algrishin88/neurocoffee/repository"
)

const (
	qrCodeTTL    = 5 * time.Minute
	qrCodeLength = 8
	qrPending    = "pending"
)

// qr codes avoid look-alike characters so they stay typeable.
const qrAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// QRService implements login by code: a signed-out device shows a short code,
// a signed-in phone confirms it, the first device polls until a token is
// ready. Codes live in the TTL store, one-shot.
type QRService struct {
	Store tokenstore.Store
	Users *repository.UserRepository
	Auth  *AuthService
}

func NewQRService(store tokenstore.Store, users *repository.UserRepository, auth *AuthService) *QRService {
	return &QRService{Store: store, Users: users, Auth: auth}
}

func (s *QRService) Generate(ctx context.Context) (code string, expiresIn int, err error) {
	code, err = randomCode(qrCodeLength)
	if err != nil {
		return "", 0, err
	}
	if err = s.Store.Set(ctx, qrKey(code), qrPending, qrCodeTTL); err != nil {
		return "", 0, err
	}
	return code, int(qrCodeTTL.Seconds()), nil
}

// Confirm binds an authenticated user to a pending code.
func (s *QRService) Confirm(ctx context.Context, code string, userID uint) error {
	val, err := s.Store.Get(ctx, qrKey(code))
	if errors.Is(err, tokenstore.ErrNotFound) {
		return ErrCodeNotFound
	}
	if err != nil {
		return err
	}
	if val != qrPending {
		return ErrCodeNotFound
	}
	return s.Store.Set(ctx, qrKey(code), strconv.FormatUint(uint64(userID), 10), qrCodeTTL)
}

// Poll reports whether the code was confirmed. On confirmation it consumes
// the code and returns a session.
func (s *QRService) Poll(ctx context.Context, code string) (*AuthRes, bool, error) {
	val, err := s.Store.Get(ctx, qrKey(code))
	if errors.Is(err, tokenstore.ErrNotFound) {
		return nil, false, ErrCodeNotFound
	}
	if err != nil {
		return nil, false, err
	}
	if val == qrPending {
		return nil, false, nil
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return nil, false, ErrCodeNotFound
	}
	user, err := s.Users.FindByID(uint(id))
	if err != nil {
		return nil, false, err
	}
	if err := s.Store.Delete(ctx, qrKey(code)); err != nil {
		return nil, false, err
	}
	token, err := s.Auth.TokenFor(user)
	if err != nil {
		return nil, false, err
	}
	return &AuthRes{Token: token, User: user}, true, nil
}

func qrKey(code string) string { return "qr:login:" + code }

func randomCode(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	for i := range buf {
		buf[i] = qrAlphabet[int(buf[i])%len(qrAlphabet)]
	}
	return string(buf), nil
}
