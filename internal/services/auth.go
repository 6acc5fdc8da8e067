package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/UPTUZOVER/iiv-talim/internal/data/repos/user"
	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
	"github.com/UPTUZOVER/iiv-talim/internal/requestdata"
)

type AuthService interface {
	Register(ctx context.Context, u *domain.User) (*domain.User, error)
	Login(ctx context.Context, hemisID, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     user.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo user.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

func (s *authService) Register(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u == nil || strings.TrimSpace(u.HemisID) == "" {
		return nil, fmt.Errorf("hemis_id is required: %w", apperr.ErrInvalidArgument)
	}
	if u.Password == "" {
		return nil, fmt.Errorf("password is required: %w", apperr.ErrInvalidArgument)
	}

	exists, err := s.userRepo.HemisIDExists(ctx, nil, u.HemisID)
	if err != nil {
		return nil, fmt.Errorf("check hemis_id: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("hemis_id already in use: %w", apperr.ErrInvalidArgument)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.ID = uuid.New()
	u.Password = string(hashed)
	if u.Role == "" {
		u.Role = domain.RoleStudent
	}

	created, err := s.userRepo.Create(ctx, nil, []*domain.User{u})
	if err != nil {
		s.log.Warn("Register: create user failed", "error", err, "hemis_id", u.HemisID)
		return nil, err
	}
	return created[0], nil
}

func (s *authService) Login(ctx context.Context, hemisID, password string) (string, string, error) {
	users, err := s.userRepo.GetByHemisIDs(ctx, nil, []string{strings.TrimSpace(hemisID)})
	if err != nil {
		return "", "", fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return "", "", apperr.ErrUnauthorized
	}
	u := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", "", apperr.ErrUnauthorized
	}
	return s.issueTokens(u)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return "", "", apperr.ErrUnauthorized
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", "", apperr.ErrUnauthorized
	}
	userID, err := uuid.Parse(fmt.Sprint(claims["sub"]))
	if err != nil {
		return "", "", apperr.ErrUnauthorized
	}
	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil || len(users) == 0 {
		return "", "", apperr.ErrUnauthorized
	}
	return s.issueTokens(users[0])
}

// SetContextFromToken validates an access token and stashes the caller's
// identity on the context for downstream services.
func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return ctx, apperr.ErrUnauthorized
	}
	if typ, _ := claims["typ"].(string); typ != "access" {
		return ctx, apperr.ErrUnauthorized
	}
	userID, err := uuid.Parse(fmt.Sprint(claims["sub"]))
	if err != nil {
		return ctx, apperr.ErrUnauthorized
	}
	role, _ := claims["role"].(string)

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Role:        role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (s *authService) issueTokens(u *domain.User) (string, string, error) {
	access, err := s.signToken(u, "access", s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.signToken(u, "refresh", s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *authService) signToken(u *domain.User, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID.String(),
		"role": u.Role,
		"typ":  typ,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

func (s *authService) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.ErrUnauthorized
	}
	return claims, nil
}
