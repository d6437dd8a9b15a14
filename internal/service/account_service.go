package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/report-card-api/internal/models"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
)

type accountStore interface {
	Accounts() []models.Account
	FindAccountByUsername(username string) (models.Account, bool)
	NextAccountID() int
	AddAccount(account models.Account) error
	DeleteAccountCascade(username string) (bool, bool, bool, error)
	FindProfileByName(name string) (models.Profile, bool)
	SaveProfile(profile models.Profile) error
}

// AccountRequest is the payload for creating a student login account.
type AccountRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RemovalSummary reports what a cascading account removal deleted.
type RemovalSummary struct {
	Username       string `json:"username"`
	AccountRemoved bool   `json:"account_removed"`
	ProfileRemoved bool   `json:"profile_removed"`
	ResultRemoved  bool   `json:"result_removed"`
}

// AccountService manages student login accounts. The teacher account lives in
// configuration and is never stored here.
type AccountService struct {
	store           accountStore
	guard           *ConfirmGuard
	teacherUsername string
	validate        *validator.Validate
	logger          *zap.Logger
}

// NewAccountService wires the account service.
func NewAccountService(store accountStore, guard *ConfirmGuard, teacherUsername string, logger *zap.Logger) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		store:           store,
		guard:           guard,
		teacherUsername: teacherUsername,
		validate:        validator.New(),
		logger:          logger,
	}
}

// List returns every student account.
func (s *AccountService) List() []models.Account {
	return s.store.Accounts()
}

// Add creates a student account and, when missing, an empty profile shell so
// the student shows up everywhere in the portal right away.
func (s *AccountService) Add(req AccountRequest) (*models.Account, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "username and password are required")
	}
	if strings.EqualFold(req.Username, s.teacherUsername) {
		return nil, apperrors.Clone(apperrors.ErrConflict, "this username is reserved")
	}
	if _, ok := s.store.FindAccountByUsername(req.Username); ok {
		return nil, apperrors.Clone(apperrors.ErrConflict, "an account with this username already exists")
	}

	account := models.Account{
		ID:       s.store.NextAccountID(),
		Username: req.Username,
		Password: req.Password,
	}
	if err := s.store.AddAccount(account); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not create account")
	}

	if _, ok := s.store.FindProfileByName(account.Username); !ok {
		if err := s.store.SaveProfile(models.Profile{StudentName: account.Username}); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not create student profile")
		}
	}

	s.logger.Info("student account created", zap.String("username", account.Username), zap.Int("id", account.ID))
	return &account, nil
}

// Remove deletes the account and cascades to the student's profile and result
// entry. Guarded by the two-step confirmation; the teacher username is never
// removable.
func (s *AccountService) Remove(username string, confirmed bool) (*RemovalSummary, error) {
	username = strings.TrimSpace(username)
	if strings.EqualFold(username, s.teacherUsername) {
		return nil, apperrors.Clone(apperrors.ErrForbidden, "the teacher account cannot be removed")
	}

	account, ok := s.store.FindAccountByUsername(username)
	if !ok {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "no account found for this username")
	}
	if !s.guard.Check("account", account.Username, confirmed) {
		return nil, apperrors.ErrConfirmRequired
	}

	accountRemoved, profileRemoved, resultRemoved, err := s.store.DeleteAccountCascade(account.Username)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not remove account")
	}

	s.logger.Info("student account removed",
		zap.String("username", account.Username),
		zap.Bool("profile_removed", profileRemoved),
		zap.Bool("result_removed", resultRemoved))

	return &RemovalSummary{
		Username:       account.Username,
		AccountRemoved: accountRemoved,
		ProfileRemoved: profileRemoved,
		ResultRemoved:  resultRemoved,
	}, nil
}
