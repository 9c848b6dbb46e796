package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

const minPasswordLen = 6

type AuthService struct {
	Repo          *repo.GormRepo
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	IsAdmin      bool
}

func (s *AuthService) CreateAccessToken(u *models.User, exp time.Time) (string, error) {
	return tokens.Sign(tokens.AccessClaims{
		Role:     u.Role,
		Username: u.Username,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}, s.AccessSecret)
}

func (s *AuthService) CreateRefreshToken(userID uuid.UUID, exp time.Time) (token, jti string, err error) {
	jti = uuid.NewString()
	token, err = tokens.Sign(tokens.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}, s.RefreshSecret)
	return token, jti, err
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	req.Username = strings.TrimSpace(req.Username)
	fields := map[string]string{}
	if req.Username == "" {
		fields["username"] = "is required"
	}
	if req.Password == "" {
		fields["password"] = "is required"
	} else if len(req.Password) < minPasswordLen {
		fields["password"] = fmt.Sprintf("must be at least %d characters", minPasswordLen)
	}
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        strings.TrimSpace(req.Email),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: pwHash,
		Role:         tokens.RoleUser,
	}
	if err := s.Repo.CreateUser(ctx, user, &models.UserProfile{Phone: req.Phone}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("username %q: %w", req.Username, ErrConflict)
		}
		return nil, err
	}

	l.Info("user_registered", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) issue(u *models.User) (*LoginResult, *models.RefreshToken, error) {
	now := time.Now()
	accessExp := now.Add(s.AccessTTL)
	access, err := s.CreateAccessToken(u, accessExp)
	if err != nil {
		return nil, nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshExp := now.Add(s.RefreshTTL)
	refresh, jti, err := s.CreateRefreshToken(u.ID, refreshExp)
	if err != nil {
		return nil, nil, fmt.Errorf("sign refresh token: %w", err)
	}

	stored := &models.RefreshToken{
		UserID:    u.ID,
		JTI:       jti,
		TokenHash: hash.Sha256Hex(refresh),
		ExpiresAt: refreshExp,
	}
	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		IsAdmin:      u.Role == tokens.RoleAdmin,
	}, stored, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fieldErrors(map[string]string{"credentials": "username and password are required"})
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "wrong password", "user_id", user.ID)
		return nil, ErrUnauthorized
	}

	res, stored, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.StoreRefreshToken(ctx, stored); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return res, nil
}

func (s *AuthService) parseRefresh(raw string) (*tokens.RefreshClaims, uuid.UUID, error) {
	if raw == "" {
		return nil, uuid.Nil, fmt.Errorf("refresh token is required: %w", ErrInvalidRefreshToken)
	}
	claims, err := tokens.RefreshClaimsFromToken(raw, s.RefreshSecret)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil || claims.ID == "" {
		return nil, uuid.Nil, fmt.Errorf("malformed claims: %w", ErrInvalidRefreshToken)
	}
	return claims, userID, nil
}

// Refresh rotates a valid refresh token: the old one is revoked and a new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*LoginResult, error) {
	claims, userID, err := s.parseRefresh(raw)
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("unknown user: %w", ErrInvalidRefreshToken)
		}
		return nil, err
	}

	res, next, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RotateRefreshToken(ctx, claims.ID, hash.Sha256Hex(raw), next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, repo.ErrTokenExpiredOrRevoked) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
		}
		return nil, err
	}
	return res, nil
}

// Logout blacklists the refresh token.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	claims, _, err := s.parseRefresh(raw)
	if err != nil {
		return err
	}
	if err := s.Repo.RevokeRefreshToken(ctx, claims.ID, hash.Sha256Hex(raw)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logInactiveRefresh(ctx, claims.ID)
			return fmt.Errorf("token not active: %w", ErrInvalidRefreshToken)
		}
		return err
	}
	return nil
}

func (s *AuthService) logInactiveRefresh(ctx context.Context, jti string) {
	l := logging.FromContext(ctx).With("svc", "auth.logout", "jti", jti)

	stored, err := s.Repo.FindRefreshByJTI(ctx, jti)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		l.Warn("refresh_unknown")
	case err != nil:
		l.Error("refresh_lookup_error", "error", err)
	case stored.Revoked:
		l.Warn("refresh_already_revoked")
	default:
		l.Warn("refresh_hash_mismatch")
	}
}

// PromoteAdmin grants the admin role to an existing user.
func (s *AuthService) PromoteAdmin(ctx context.Context, username string) error {
	if err := s.Repo.SetUserRole(ctx, strings.TrimSpace(username), tokens.RoleAdmin); err != nil {
		return translate(err, "user")
	}
	logging.FromContext(ctx).Info("user_promoted", "svc", "auth.promote_admin", "username", username)
	return nil
}
