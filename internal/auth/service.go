package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	DefaultSessionTTL = 7 * 24 * time.Hour
)

type SignUpInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
	Phone           string `json:"phone"`
}

func (in SignUpInput) Validate() error {
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return domain.NewValidationError("email", "Please enter a valid email address.")
	}
	if len(in.Password) < minPasswordLength {
		return domain.NewValidationError("password", "Password must be at least 6 characters.")
	}
	if in.Password != in.ConfirmPassword {
		return domain.NewValidationError("confirm_password", "Passwords do not match.")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return domain.NewValidationError("full_name", "Please enter your name.")
	}
	return nil
}

type Session struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *domain.User `json:"user"`
}

type UserFilter struct {
	// Search matches id, name, email or phone.
	Search string
	// Role is "admin" or "user"; empty matches both.
	Role string
	// Status is "active" (signed in at least once) or "inactive".
	Status string
}

type Service struct {
	dir      Directory
	sessions SessionStore
	events   *Broadcaster
	secret   []byte
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(dir Directory, sessions SessionStore, events *Broadcaster, secret []byte, ttl time.Duration, logger *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if events == nil {
		events = NewBroadcaster()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		dir:      dir,
		sessions: sessions,
		events:   events,
		secret:   secret,
		ttl:      ttl,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Events() *Broadcaster {
	return s.events
}

func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		FullName:  strings.TrimSpace(in.FullName),
		Phone:     strings.TrimSpace(in.Phone),
		CreatedAt: s.now(),
	}
	if err := s.dir.Create(ctx, u, string(hash)); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("user_id", u.ID))
	return u, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	u, hash, err := s.dir.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	sid, err := s.sessions.Create(ctx, u.ID, s.ttl)
	if err != nil {
		return nil, err
	}
	token, expires, err := issueToken(s.secret, u.ID, u.Email, sid, now, s.ttl)
	if err != nil {
		return nil, err
	}

	if err := s.dir.TouchSignIn(ctx, u.ID, now); err != nil {
		s.logger.Warn("record sign in failed", zap.String("user_id", u.ID), zap.Error(err))
	} else {
		u.LastSignInAt = &now
	}

	s.events.Publish(Event{Type: EventSignedIn, UserID: u.ID, User: u, At: now})
	return &Session{AccessToken: token, ExpiresAt: expires, User: u}, nil
}

// SignOut revokes the session behind token. Signing out twice is not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := parseToken(s.secret, token, s.now())
	if err != nil {
		return err
	}
	if err := s.sessions.Revoke(ctx, claims.SessionID); err != nil {
		return err
	}
	s.events.Publish(Event{Type: EventSignedOut, UserID: claims.Subject, At: s.now()})
	return nil
}

// Session returns the live session for token.
func (s *Service) Session(ctx context.Context, token string) (*Session, error) {
	claims, err := parseToken(s.secret, token, s.now())
	if err != nil {
		return nil, err
	}
	userID, err := s.sessions.Valid(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if userID != claims.Subject {
		return nil, ErrInvalidToken
	}

	u, err := s.dir.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return &Session{AccessToken: token, ExpiresAt: claims.ExpiresAt.Time, User: u}, nil
}

// Authenticate resolves token to the current user.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	sess, err := s.Session(ctx, token)
	if err != nil {
		return nil, err
	}
	return sess.User, nil
}

func (s *Service) Users(ctx context.Context, f UserFilter) ([]*domain.User, error) {
	users, err := s.dir.List(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if search != "" && !matchesUser(u, search) {
			continue
		}
		switch strings.ToLower(f.Role) {
		case "admin":
			if !u.IsAdmin {
				continue
			}
		case "user":
			if u.IsAdmin {
				continue
			}
		}
		switch strings.ToLower(f.Status) {
		case "active":
			if !u.Active() {
				continue
			}
		case "inactive":
			if u.Active() {
				continue
			}
		}
		out = append(out, u)
	}
	return out, nil
}

func matchesUser(u *domain.User, search string) bool {
	for _, field := range []string{u.ID, u.FullName, u.Email, u.Phone} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// SetAdmin changes the admin capability of a user.
func (s *Service) SetAdmin(ctx context.Context, id string, admin bool) (*domain.User, error) {
	if err := s.dir.SetAdmin(ctx, id, admin); err != nil {
		return nil, err
	}
	u, err := s.dir.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("admin flag changed", zap.String("user_id", id), zap.Bool("is_admin", admin))
	s.events.Publish(Event{Type: EventUserUpdated, UserID: id, User: u, At: s.now()})
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.dir.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", id))
	s.events.Publish(Event{Type: EventUserUpdated, UserID: id, At: s.now()})
	return nil
}
