package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
)

func newTestProfileService(t *testing.T) (*ProfileService, *ConfirmGuard) {
	t.Helper()
	guard := NewConfirmGuard(30 * time.Second)
	svc := NewProfileService(newTestStore(t, nil), guard, "123456", zap.NewNop())
	return svc, guard
}

func TestProfileCreateAndGet(t *testing.T) {
	svc, _ := newTestProfileService(t)

	profile, accountCreated, err := svc.Create(ProfileRequest{
		StudentName: "Chinedu",
		Age:         14,
		RegNumber:   "UMC/2024/005",
		Session:     "2024/2025",
		Term:        "First Term",
	})
	require.NoError(t, err)
	assert.True(t, accountCreated)
	assert.Equal(t, "Chinedu", profile.StudentName)

	got, err := svc.Get("chinedu")
	require.NoError(t, err)
	assert.Equal(t, "UMC/2024/005", got.RegNumber)
	assert.Equal(t, 14, int(got.Age))
}

func TestProfileCreateDuplicate(t *testing.T) {
	svc, _ := newTestProfileService(t)

	_, _, err := svc.Create(ProfileRequest{StudentName: "Chinedu"})
	require.NoError(t, err)

	_, _, err = svc.Create(ProfileRequest{StudentName: "CHINEDU"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict.Code, apperrors.FromError(err).Code)
}

func TestProfileUpdateKeepsCanonicalName(t *testing.T) {
	svc, _ := newTestProfileService(t)

	_, _, err := svc.Create(ProfileRequest{StudentName: "Chinedu", Age: 14})
	require.NoError(t, err)

	updated, err := svc.Update("chinedu", ProfileRequest{StudentName: "Renamed", Age: 15, Term: "Second Term"})
	require.NoError(t, err)
	assert.Equal(t, "Chinedu", updated.StudentName, "updates cannot rename the student")
	assert.Equal(t, 15, int(updated.Age))
	assert.Equal(t, "Second Term", updated.Term)

	assert.Len(t, svc.List(), 1)
}

func TestProfileUpdateMissing(t *testing.T) {
	svc, _ := newTestProfileService(t)

	_, err := svc.Update("nobody", ProfileRequest{StudentName: "nobody"})
	assert.Equal(t, apperrors.ErrNotFound.Code, apperrors.FromError(err).Code)
}

func TestProfileDeleteNeedsConfirmation(t *testing.T) {
	svc, _ := newTestProfileService(t)

	_, _, err := svc.Create(ProfileRequest{StudentName: "Chinedu"})
	require.NoError(t, err)

	err = svc.Delete("Chinedu", false)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConfirmRequired.Code, apperrors.FromError(err).Code)

	require.NoError(t, svc.Delete("Chinedu", true))

	_, err = svc.Get("Chinedu")
	assert.Equal(t, apperrors.ErrNotFound.Code, apperrors.FromError(err).Code)
}

func TestProfileDeleteMissing(t *testing.T) {
	svc, _ := newTestProfileService(t)

	err := svc.Delete("nobody", true)
	assert.Equal(t, apperrors.ErrNotFound.Code, apperrors.FromError(err).Code)
}
