package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/fyyur/internal/server"
)

// AuthService configures Clerk, which verifies the bearer tokens sent to
// the JSON API's write endpoints.
type AuthService struct {
	server  *server.Server
	enabled bool
}

func NewAuthService(s *server.Server) *AuthService {
	enabled := s.Config.Auth.SecretKey != ""
	if enabled {
		clerk.SetKey(s.Config.Auth.SecretKey)
	} else {
		s.Logger.Warn().Msg("auth secret key not set, API write endpoints will reject every request")
	}

	return &AuthService{
		server:  s,
		enabled: enabled,
	}
}

// Enabled reports whether a Clerk secret key is configured.
func (a *AuthService) Enabled() bool {
	return a.enabled
}
