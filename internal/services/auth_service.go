package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yoockh/showcase/internal/models"
	mongorepo "github.com/yoockh/showcase/internal/repositories/mongo"
	"github.com/yoockh/showcase/internal/utils"
)

const tokenIssuer = "showcase"

// Claims is the payload of dashboard tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// EnsureAdmin creates the account if no user has that email yet.
	EnsureAdmin(ctx context.Context, email, password string) (created bool, err error)
	ParseToken(raw string) (*Claims, error)
}

type authService struct {
	users  mongorepo.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users mongorepo.UserRepository, secret string, ttl time.Duration) AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{users: users, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "AuthService.Login"

	if strings.TrimSpace(email) == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if err := utils.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
	}

	now := s.now().UTC()
	exp := now.Add(s.ttl)
	claims := Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}

	return &LoginResult{Token: tok, ExpiresAt: exp, User: u}, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	const op = "AuthService.EnsureAdmin"

	if strings.TrimSpace(email) == "" || password == "" {
		return false, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return false, utils.E(utils.CodeInternal, op, "failed to look up admin", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}
	if err := s.users.Create(ctx, &models.User{Email: email, Name: "admin", PasswordHash: hash}); err != nil {
		return false, utils.E(utils.CodeInternal, op, "failed to create admin", err)
	}
	return true, nil
}

func (s *authService) ParseToken(raw string) (*Claims, error) {
	const op = "AuthService.ParseToken"

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || tok == nil || !tok.Valid {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid token", err)
	}
	if claims.Subject == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "missing subject", nil)
	}
	return claims, nil
}
