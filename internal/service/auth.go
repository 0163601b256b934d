package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/employee-polls/internal/domain"
	"github.com/msomdec/employee-polls/internal/state"
)

// AuthService handles signup, login, impersonation, and the session tokens
// used by the HTTP surface. The auth state slice is the system of record
// for the session; tokens only carry the authenticated user id between
// requests.
//
// Credentials are stored and compared in plaintext. These are demo
// accounts with nothing to protect, and the seed fixtures carry their
// passwords verbatim; do not reuse this service anywhere security
// matters.
type AuthService struct {
	state     *state.State
	jwtSecret []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(st *state.State, jwtSecret string) *AuthService {
	return &AuthService{state: st, jwtSecret: []byte(jwtSecret)}
}

// Signup creates a new user account and logs it in. The id must not be
// taken by any existing user, seeded or local; that check happens here,
// before the users slice is ever mutated.
func (s *AuthService) Signup(ctx context.Context, id, name, password string) (domain.User, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	password = strings.TrimSpace(password)

	if id == "" || name == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: all fields are required", domain.ErrInvalidInput)
	}

	if _, exists := s.state.Users.Get(id); exists {
		return domain.User{}, fmt.Errorf("%w: %q", domain.ErrDuplicateUser, id)
	}

	user := domain.NewUser(id, name, password)
	s.state.Users.Add(ctx, user)
	s.state.Auth.Login(ctx, id)

	return user, nil
}

// Login verifies credentials against the user collection and starts a
// session. Unknown ids and wrong passwords are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, id, password string) (domain.User, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(password) == "" {
		return domain.User{}, fmt.Errorf("%w: please provide both user id and password", domain.ErrInvalidInput)
	}

	user, ok := s.state.Users.Get(id)
	if !ok || user.Password != password {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	s.state.Auth.Login(ctx, id)
	return user, nil
}

// Logout ends the session and removes its durable entry.
func (s *AuthService) Logout(ctx context.Context) {
	s.state.Auth.Logout(ctx)
}

// Impersonate assumes the target identity on top of the authenticated
// session. The target must exist and must differ from the real logged-in
// user.
func (s *AuthService) Impersonate(ctx context.Context, targetUserID string) error {
	session := s.state.Auth.Session()
	if !session.IsAuthenticated {
		return domain.ErrUnauthorized
	}

	if _, ok := s.state.Users.Get(targetUserID); !ok {
		return fmt.Errorf("%w: user %q", domain.ErrNotFound, targetUserID)
	}

	if targetUserID == session.RealUserID() {
		return fmt.Errorf("%w: cannot impersonate yourself", domain.ErrInvalidInput)
	}

	s.state.Auth.StartImpersonation(ctx, targetUserID)
	return nil
}

// StopImpersonation restores the real identity.
func (s *AuthService) StopImpersonation(ctx context.Context) error {
	if !s.state.Auth.Session().Impersonation.Active {
		return fmt.Errorf("%w: not impersonating", domain.ErrInvalidInput)
	}
	s.state.Auth.StopImpersonation(ctx)
	return nil
}

// IssueToken returns a signed JWT whose subject is the user id.
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and validates a JWT token string and returns the
// user id from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrUnauthorized
	}

	return sub, nil
}
