// Package yandex wraps the two Yandex APIs the shop talks to: OAuth login
// and the YandexGPT completion endpoint.
package yandex

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	oayandex "golang.org/x/oauth2/yandex"
)

const userInfoURL = "https://login.yandex.ru/info"

type OAuthClient struct {
	oauth       *oauth2.Config
	http        *resty.Client
	userInfoURL string
}

func NewOAuthClient(clientID, clientSecret, redirectURI string) *OAuthClient {
	return &OAuthClient{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Endpoint:     oayandex.Endpoint,
		},
		http:        resty.New().SetTimeout(10 * time.Second),
		userInfoURL: userInfoURL,
	}
}

func (c *OAuthClient) Configured() bool {
	return c.oauth.ClientID != "" && c.oauth.ClientSecret != ""
}

// AuthorizationURL builds the redirect URL for the login button. state is a
// per-attempt CSRF token, stored server-side with a TTL.
func (c *OAuthClient) AuthorizationURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// UserInfo is the subset of the Yandex passport profile the shop needs.
type UserInfo struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	DefaultEmail string `json:"default_email"`
}

// Exchange swaps the authorization code for a token and fetches the user
// profile in one go.
func (c *OAuthClient) Exchange(ctx context.Context, code string) (*UserInfo, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("yandex token exchange: %w", err)
	}

	var info UserInfo
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "OAuth "+token.AccessToken).
		SetQueryParam("format", "json").
		SetResult(&info).
		Get(c.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("yandex user info: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("yandex user info: status %d", res.StatusCode())
	}
	if info.ID == "" {
		return nil, fmt.Errorf("yandex user info: empty profile")
	}
	return &info, nil
}

// SetUserInfoURL overrides the passport endpoint. Used by tests.
func (c *OAuthClient) SetUserInfoURL(u string) { c.userInfoURL = u }

// SetTokenURL overrides the token endpoint. Used by tests.
func (c *OAuthClient) SetTokenURL(u string) {
	ep := c.oauth.Endpoint
	ep.TokenURL = u
	c.oauth.Endpoint = ep
}
