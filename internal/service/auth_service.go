package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/notify"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/roles"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAccountDisabled    = errors.New("account disabled")
)

type AuthService struct {
	users         repository.UserRepository
	profiles      repository.ProfileRepository
	notifier      notify.Notifier
	log           zerolog.Logger
	sessionSecret string
	siteURL       string
}

func NewAuthService(users repository.UserRepository, profiles repository.ProfileRepository,
	n notify.Notifier, log zerolog.Logger, sessionSecret, siteURL string) *AuthService {
	return &AuthService{
		users: users, profiles: profiles, notifier: n, log: log,
		sessionSecret: sessionSecret, siteURL: siteURL,
	}
}

// Register creates an account plus its profile. Self-registration always gets
// the "user" role; staff roles are granted through the admin users screen.
func (a *AuthService) Register(ctx context.Context, email, displayName, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)
	if email == "" || displayName == "" || len(password) < 8 {
		return nil, ErrInvalidInput
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	u, err := a.users.Create(ctx, email, hash, token)
	if err != nil {
		return nil, err
	}
	if err := a.profiles.Create(ctx, u.ID, displayName, roles.RoleUser); err != nil {
		return nil, err
	}

	a.sendVerification(u.Email, token)
	return u, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (token string, user *models.User, err error) {
	u, hash, err := a.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(hash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !u.Active {
		return "", nil, ErrAccountDisabled
	}
	tok, err := utils.SignJWT(a.sessionSecret, u.ID, u.Email, 24*time.Hour)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// ResendVerification rotates the token and re-sends the mail. It succeeds
// silently for unknown or already-verified accounts so the endpoint cannot be
// used to probe which emails exist.
func (a *AuthService) ResendVerification(ctx context.Context, email string) error {
	u, _, err := a.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if u == nil || u.Verified {
		return nil
	}
	token := uuid.NewString()
	if err := a.users.SetVerifyToken(ctx, u.ID, token); err != nil {
		return err
	}
	a.sendVerification(u.Email, token)
	return nil
}

func (a *AuthService) Verify(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidInput
	}
	return a.users.VerifyByToken(ctx, token)
}

// best-effort; a lost mail is recoverable through resend
func (a *AuthService) sendVerification(email, token string) {
	link := a.siteURL + "/auth/verify?token=" + token
	if err := a.notifier.Notify(email, "Confirma tu correo / Confirm your email",
		"Verifica tu cuenta: "+link); err != nil {
		a.log.Warn().Err(err).Msg("verification mail failed")
	}
}

// MapAuthError normalizes auth failures so responses never reveal whether an
// email is registered. The detailed cause is only logged, at debug level.
func MapAuthError(log zerolog.Logger, err error) string {
	log.Debug().Err(err).Msg("auth error")
	switch {
	case errors.Is(err, ErrAccountDisabled):
		return "account disabled"
	case errors.Is(err, ErrInvalidInput):
		return "invalid input"
	default:
		return "invalid credentials"
	}
}
