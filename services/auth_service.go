package services

import (
	"errors"
	"strings"
	"time"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/repository"
	"github.com/algrishin88/neurocoffee/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Repo      *repository.UserRepository
	JWTSecret string
	JWTTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, jwtSecret string, jwtTTL time.Duration) *AuthService {
	return &AuthService{Repo: repo, JWTSecret: jwtSecret, JWTTTL: jwtTTL}
}

type RegisterReq struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Phone      string `json:"phone"`
	Newsletter bool   `json:"newsletter"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthRes struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func (s *AuthService) Register(req *RegisterReq) (*AuthRes, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	count, err := s.Repo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	user := entity.User{
		Email:      email,
		Password:   string(hashed),
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Phone:      strings.TrimSpace(req.Phone),
		Role:       "user",
		Newsletter: req.Newsletter,
	}
	if err := s.Repo.Create(&user); err != nil {
		return nil, err
	}
	return s.issue(&user)
}

func (s *AuthService) Login(req *LoginReq) (*AuthRes, error) {
	user, err := s.Repo.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.Password == "" {
		// OAuth-only account, no password set
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthService) Profile(userID uint) (*entity.User, error) {
	user, err := s.Repo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

type UpdateProfileReq struct {
	FirstName          *string    `json:"firstName"`
	LastName           *string    `json:"lastName"`
	Phone              *string    `json:"phone"`
	BirthDate          *time.Time `json:"birthDate"`
	Preferences        *string    `json:"preferences"`
	Bio                *string    `json:"bio"`
	Newsletter         *bool      `json:"newsletter"`
	EmailNotifications *bool      `json:"emailNotifications"`
	SmsNotifications   *bool      `json:"smsNotifications"`
	OrderUpdates       *bool      `json:"orderUpdates"`
}

// UpdateProfile writes only the fields present in the request. Email, role
// and bonus balance are never writable here.
func (s *AuthService) UpdateProfile(userID uint, req *UpdateProfileReq) (*entity.User, error) {
	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.BirthDate != nil {
		updates["birth_date"] = *req.BirthDate
	}
	if req.Preferences != nil {
		updates["preferences"] = *req.Preferences
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Newsletter != nil {
		updates["newsletter"] = *req.Newsletter
	}
	if req.EmailNotifications != nil {
		updates["email_notifications"] = *req.EmailNotifications
	}
	if req.SmsNotifications != nil {
		updates["sms_notifications"] = *req.SmsNotifications
	}
	if req.OrderUpdates != nil {
		updates["order_updates"] = *req.OrderUpdates
	}
	if len(updates) > 0 {
		if err := s.Repo.Update(userID, updates); err != nil {
			return nil, err
		}
	}
	return s.Profile(userID)
}

// TokenFor issues a JWT for an already-authenticated user (OAuth, QR login).
func (s *AuthService) TokenFor(user *entity.User) (string, error) {
	return utils.GenerateToken(user.ID, user.Role, s.JWTSecret, s.JWTTTL)
}

func (s *AuthService) issue(user *entity.User) (*AuthRes, error) {
	token, err := s.TokenFor(user)
	if err != nil {
		return nil, err
	}
	return &AuthRes{Token: token, User: user}, nil
}
