package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/report-card-api/internal/models"
)

func openTestStore(t *testing.T, dir string, seed []models.Account) *Store {
	t.Helper()
	s, err := Open(dir, seed, zap.NewNop(), nil)
	require.NoError(t, err)
	return s
}

func TestOpenSeedsEmptyStore(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir, DefaultSeedAccounts)

	accounts := s.Accounts()
	require.Len(t, accounts, 3)
	assert.Equal(t, "Adams", accounts[0].Username)
	assert.Empty(t, s.Profiles())
	assert.Empty(t, s.Results())
}

func TestOpenMergesSeedIntoExistingStore(t *testing.T) {
	dir := t.TempDir()
	existing := []models.Account{{ID: 7, Username: "Zara", Password: "pw"}}
	data, err := json.MarshalIndent(existing, "", "    ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "students.json"), data, 0o644))

	s := openTestStore(t, dir, DefaultSeedAccounts)
	accounts := s.Accounts()
	require.Len(t, accounts, 4)
	// merged set is persisted sorted by id
	assert.Equal(t, []int{1, 2, 3, 7}, []int{accounts[0].ID, accounts[1].ID, accounts[2].ID, accounts[3].ID})

	reloaded := openTestStore(t, dir, nil)
	assert.Len(t, reloaded.Accounts(), 4)
}

func TestCorruptFileResets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "results.json"), []byte("{not json"), 0o644))

	s := openTestStore(t, dir, nil)
	assert.Empty(t, s.Results())
}

func TestAccountRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir, nil)
	require.NoError(t, s.AddAccount(models.Account{ID: 1, Username: "Adaeze", Password: "123456"}))
	require.NoError(t, s.AddAccount(models.Account{ID: 2, Username: "Emeka", Password: "secret"}))

	reloaded := openTestStore(t, dir, nil)
	assert.Equal(t, s.Accounts(), reloaded.Accounts())
}

func TestProfileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir, nil)
	profile := models.Profile{
		StudentName:   "Adaeze",
		Age:           12,
		RegNumber:     "REG/001",
		ParentName:    "Mrs Obi",
		ParentPhone:   "0801",
		ParentAddress: "12 School Road",
		Session:       "2024/2025",
		Term:          "First Term",
	}
	require.NoError(t, s.SaveProfile(profile))

	reloaded := openTestStore(t, dir, nil)
	got, ok := reloaded.FindProfileByName("adaeze")
	require.True(t, ok)
	assert.Equal(t, profile, got)
}

func TestProfileBlankAgeInLegacyFileLoads(t *testing.T) {
	dir := t.TempDir()
	legacy := `[{"student_name": "Bala", "age": "", "reg_number": "", "parent_name": "",
		"parent_phone": "", "parent_address": "", "session": "", "term": ""}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "student_profiles.json"), []byte(legacy), 0o644))

	s := openTestStore(t, dir, nil)
	got, ok := s.FindProfileByName("Bala")
	require.True(t, ok)
	assert.Equal(t, models.FlexInt(0), got.Age)
}

func TestResultRoundTripAndUpsert(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir, nil)
	entry := models.ResultEntry{
		StudentName: "Adaeze",
		TotalScore:  150,
		Results: []models.SubjectScore{
			{Subject: "Maths", CA1: 20, CA2: 20, Exam: 40, Final: 80, Grade: "A", Remark: "Excellent"},
			{Subject: "English", CA1: 20, CA2: 20, Exam: 30, Final: 70, Grade: "B", Remark: "Very Good"},
		},
	}
	require.NoError(t, s.UpsertResult(entry))

	reloaded := openTestStore(t, dir, nil)
	got, ok := reloaded.FindResultByName("ADAEZE")
	require.True(t, ok)
	assert.Equal(t, entry, got)

	entry.TotalScore = 90
	entry.Results = entry.Results[:1]
	require.NoError(t, s.UpsertResult(entry))
	assert.Len(t, s.Results(), 1)
	got, _ = s.FindResultByName("Adaeze")
	assert.Equal(t, 90.0, got.TotalScore)
}

func TestDeleteAccountCascade(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir, nil)
	require.NoError(t, s.AddAccount(models.Account{ID: 1, Username: "Adaeze", Password: "x"}))
	require.NoError(t, s.AddAccount(models.Account{ID: 2, Username: "Emeka", Password: "x"}))
	require.NoError(t, s.SaveProfile(models.Profile{StudentName: "Adaeze"}))
	require.NoError(t, s.SaveProfile(models.Profile{StudentName: "Emeka"}))
	require.NoError(t, s.UpsertResult(models.ResultEntry{StudentName: "Adaeze", TotalScore: 10, Results: []models.SubjectScore{}}))
	require.NoError(t, s.UpsertResult(models.ResultEntry{StudentName: "Emeka", TotalScore: 20, Results: []models.SubjectScore{}}))

	removedAccount, removedProfile, removedResult, err := s.DeleteAccountCascade("adaeze")
	require.NoError(t, err)
	assert.True(t, removedAccount)
	assert.True(t, removedProfile)
	assert.True(t, removedResult)

	reloaded := openTestStore(t, dir, nil)
	assert.Len(t, reloaded.Accounts(), 1)
	assert.Len(t, reloaded.Profiles(), 1)
	assert.Len(t, reloaded.Results(), 1)
	_, ok := reloaded.FindAccountByUsername("Emeka")
	assert.True(t, ok)
}

func TestDeleteProfileOnly(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir, nil)
	require.NoError(t, s.AddAccount(models.Account{ID: 1, Username: "Adaeze", Password: "x"}))
	require.NoError(t, s.SaveProfile(models.Profile{StudentName: "Adaeze"}))

	removed, err := s.DeleteProfile("Adaeze")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Len(t, s.Accounts(), 1)

	removed, err = s.DeleteProfile("Adaeze")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestNextAccountID(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir, nil)
	assert.Equal(t, 1, s.NextAccountID())
	require.NoError(t, s.AddAccount(models.Account{ID: 5, Username: "Adaeze", Password: "x"}))
	assert.Equal(t, 6, s.NextAccountID())
}

func TestPersistedFilesArePrettyPrinted(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir, nil)
	require.NoError(t, s.AddAccount(models.Account{ID: 1, Username: "Adaeze", Password: "123456"}))

	data, err := os.ReadFile(filepath.Join(dir, "students.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    ")
	// no stray temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}
