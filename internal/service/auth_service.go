package service

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/report-card-api/internal/models"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
)

// AuthConfig carries the credentials and token settings the auth service
// needs. The single teacher account lives in configuration, not the store.
type AuthConfig struct {
	TeacherUsername string
	TeacherPassword string
	TokenSecret     string
	TokenExpiry     time.Duration
	Issuer          string
}

type accountReader interface {
	FindAccountByUsername(username string) (models.Account, bool)
}

// AuthService authenticates portal users and issues JWT access tokens.
type AuthService struct {
	cfg      AuthConfig
	accounts accountReader
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAuthService wires the auth service.
func NewAuthService(cfg AuthConfig, accounts accountReader, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		cfg:      cfg,
		accounts: accounts,
		validate: validator.New(),
		logger:   logger,
	}
}

// Login checks the teacher credentials first, then the student accounts.
// Student usernames match case-insensitively; passwords always match exactly.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "username and password are required")
	}

	if req.Username == s.cfg.TeacherUsername && req.Password == s.cfg.TeacherPassword {
		s.logger.Info("teacher login", zap.String("username", req.Username))
		return s.issueToken(models.UserInfo{ID: "teacher", Username: req.Username, Role: models.RoleTeacher})
	}

	account, ok := s.accounts.FindAccountByUsername(req.Username)
	if !ok || account.Password != req.Password {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Info("student login", zap.String("username", account.Username))
	return s.issueToken(models.UserInfo{
		ID:       strconv.Itoa(account.ID),
		Username: account.Username,
		Role:     models.RoleStudent,
	})
}

func (s *AuthService) issueToken(user models.UserInfo) (*models.LoginResponse, error) {
	now := time.Now()
	claims := models.JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not sign access token")
	}

	return &models.LoginResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.cfg.TokenExpiry.Seconds()),
		IssuedAt:    now,
		User:        user,
	}, nil
}

// ValidateToken parses and verifies an access token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return []byte(s.cfg.TokenSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}

// Logout is stateless with JWT; clients drop the token. Kept as an audit
// point so logouts still show up in the logs.
func (s *AuthService) Logout(username string) {
	s.logger.Info("logout", zap.String("username", username))
}
