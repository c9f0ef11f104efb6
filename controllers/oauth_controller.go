package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/gin-gonic/gin"
)

type OAuthController struct {
	Service     *services.OAuthService
	FrontendURL string
	Dev         bool
}

func NewOAuthController(service *services.OAuthService, frontendURL string, dev bool) *OAuthController {
	return &OAuthController{Service: service, FrontendURL: frontendURL, Dev: dev}
}

// Begin hands the frontend the Yandex authorization URL with a fresh
// one-time state.
func (ctl *OAuthController) Begin(c *gin.Context) {
	if !ctl.Service.Configured() {
		resp.ServerError(c, "Вход через Яндекс не настроен", nil, ctl.Dev)
		return
	}
	authURL, err := ctl.Service.Begin(c.Request.Context())
	if err != nil {
		resp.ServerError(c, "Ошибка авторизации", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"authUrl": authURL})
}

// Callback completes the flow. The GET form is the browser redirect from
// Yandex, answered with a redirect carrying the token; the POST form is the
// SPA exchanging code+state for a JSON session.
func (ctl *OAuthController) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if c.Request.Method == http.MethodPost && (state == "" || code == "") {
		var body struct {
			State string `json:"state"`
			Code  string `json:"code"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			state, code = body.State, body.Code
		}
	}
	if state == "" || code == "" {
		ctl.fail(c, "Не переданы параметры авторизации")
		return
	}

	res, err := ctl.Service.Callback(c.Request.Context(), state, code)
	if errors.Is(err, services.ErrStateMismatch) {
		ctl.fail(c, "Сессия авторизации истекла, попробуйте ещё раз")
		return
	}
	if err != nil {
		ctl.fail(c, "Ошибка входа через Яндекс")
		return
	}

	if c.Request.Method == http.MethodGet {
		c.Redirect(http.StatusFound, ctl.FrontendURL+"/auth/callback?token="+url.QueryEscape(res.Token))
		return
	}
	resp.OK(c, gin.H{"token": res.Token, "user": res.User})
}

func (ctl *OAuthController) fail(c *gin.Context, msg string) {
	if c.Request.Method == http.MethodGet {
		c.Redirect(http.StatusFound, ctl.FrontendURL+"/login?error=oauth")
		return
	}
	resp.BadRequest(c, msg)
}
