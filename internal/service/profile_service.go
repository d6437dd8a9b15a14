package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/report-card-api/internal/models"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
)

type profileStore interface {
	Profiles() []models.Profile
	FindProfileByName(name string) (models.Profile, bool)
	SaveProfile(profile models.Profile) error
	DeleteProfile(name string) (bool, error)
	FindAccountByUsername(username string) (models.Account, bool)
	NextAccountID() int
	AddAccount(account models.Account) error
}

// ProfileRequest is the create/update payload for a student profile.
type ProfileRequest struct {
	StudentName   string `json:"student_name" validate:"required"`
	Age           int    `json:"age" validate:"gte=0,lte=120"`
	RegNumber     string `json:"reg_number"`
	ParentName    string `json:"parent_name"`
	ParentPhone   string `json:"parent_phone"`
	ParentAddress string `json:"parent_address"`
	Session       string `json:"session"`
	Term          string `json:"term"`
}

// ProfileService manages student bio-data profiles.
type ProfileService struct {
	store           profileStore
	guard           *ConfirmGuard
	defaultPassword string
	validate        *validator.Validate
	logger          *zap.Logger
}

// NewProfileService wires the profile service.
func NewProfileService(store profileStore, guard *ConfirmGuard, defaultPassword string, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		store:           store,
		guard:           guard,
		defaultPassword: defaultPassword,
		validate:        validator.New(),
		logger:          logger,
	}
}

// List returns all profiles.
func (s *ProfileService) List() []models.Profile {
	return s.store.Profiles()
}

// Get returns the named profile, matching case-insensitively.
func (s *ProfileService) Get(name string) (*models.Profile, error) {
	profile, ok := s.store.FindProfileByName(name)
	if !ok {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "no profile found for this student")
	}
	return &profile, nil
}

// Create adds a new profile. Students without a login account get one with
// the default password so the profile is immediately usable in the portal.
func (s *ProfileService) Create(req ProfileRequest) (*models.Profile, bool, error) {
	req.StudentName = strings.TrimSpace(req.StudentName)
	if err := s.validate.Struct(req); err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid profile payload")
	}

	if _, ok := s.store.FindProfileByName(req.StudentName); ok {
		return nil, false, apperrors.Clone(apperrors.ErrConflict, "a profile for this student already exists")
	}

	profile := req.toProfile()
	if err := s.store.SaveProfile(profile); err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not save profile")
	}

	accountCreated := false
	if _, ok := s.store.FindAccountByUsername(profile.StudentName); !ok {
		account := models.Account{
			ID:       s.store.NextAccountID(),
			Username: profile.StudentName,
			Password: s.defaultPassword,
		}
		if err := s.store.AddAccount(account); err != nil {
			return nil, false, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not create student account")
		}
		accountCreated = true
		s.logger.Info("created account alongside profile", zap.String("username", account.Username))
	}

	return &profile, accountCreated, nil
}

// Update replaces the named profile. The stored student name keeps its
// original casing; the payload cannot rename a student.
func (s *ProfileService) Update(name string, req ProfileRequest) (*models.Profile, error) {
	existing, ok := s.store.FindProfileByName(name)
	if !ok {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "no profile found for this student")
	}

	req.StudentName = existing.StudentName
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid profile payload")
	}

	profile := req.toProfile()
	if err := s.store.SaveProfile(profile); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not save profile")
	}
	return &profile, nil
}

// Delete removes the named profile behind the two-step confirmation guard.
func (s *ProfileService) Delete(name string, confirmed bool) error {
	if _, ok := s.store.FindProfileByName(name); !ok {
		return apperrors.Clone(apperrors.ErrNotFound, "no profile found for this student")
	}
	if !s.guard.Check("profile", name, confirmed) {
		return apperrors.ErrConfirmRequired
	}

	removed, err := s.store.DeleteProfile(name)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not delete profile")
	}
	if !removed {
		return apperrors.Clone(apperrors.ErrNotFound, "no profile found for this student")
	}
	s.logger.Info("profile deleted", zap.String("student", name))
	return nil
}

func (r ProfileRequest) toProfile() models.Profile {
	return models.Profile{
		StudentName:   r.StudentName,
		Age:           models.FlexInt(r.Age),
		RegNumber:     r.RegNumber,
		ParentName:    r.ParentName,
		ParentPhone:   r.ParentPhone,
		ParentAddress: r.ParentAddress,
		Session:       r.Session,
		Term:          r.Term,
	}
}
