package services

import "errors"

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrAddressRequired    = errors.New("delivery address is required")
	ErrItemNotFound       = errors.New("item not found or unavailable")
	ErrCartItemNotFound   = errors.New("item not found in cart")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyPaid   = errors.New("order already paid")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrGatewayUnavailable = errors.New("payment gateway is not configured")
	ErrStateMismatch      = errors.New("oauth state mismatch")
	ErrCodeNotFound       = errors.New("code not found or expired")
)
