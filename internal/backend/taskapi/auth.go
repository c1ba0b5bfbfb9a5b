package taskapi

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"

	"taskman/internal/config"
	"taskman/internal/service"
)

// AuthClient implements service.Authenticator. Account operations run
// without a token.
type AuthClient struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// NewAuth creates an auth client bound to the configured base URL.
func NewAuth(cfg *config.Config, logger *log.Logger) *AuthClient {
	return &AuthClient{
		baseURL: cfg.APIURL(),
		http:    &http.Client{},
		logger:  logger,
	}
}

// NewAuthWithBaseURL creates an auth client against an explicit base URL
// (for testing).
func NewAuthWithBaseURL(baseURL string, logger *log.Logger) *AuthClient {
	return &AuthClient{
		baseURL: baseURL,
		http:    &http.Client{},
		logger:  logger,
	}
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register implements service.Authenticator.
func (a *AuthClient) Register(ctx context.Context, username, password string) error {
	body := credentialsBody{Username: username, Password: password}
	return doJSON(ctx, a.http, a.logger, http.MethodPost, a.baseURL+"/users/register", body, nil)
}

// Login implements service.Authenticator.
func (a *AuthClient) Login(ctx context.Context, username, password string) (service.Credentials, error) {
	body := credentialsBody{Username: username, Password: password}
	var creds service.Credentials
	if err := doJSON(ctx, a.http, a.logger, http.MethodPost, a.baseURL+"/users/login", body, &creds); err != nil {
		return service.Credentials{}, err
	}
	return creds, nil
}
