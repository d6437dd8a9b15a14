// Package store implements the flat-file data layer: three JSON collections
// loaded whole into memory at startup, mutated under a single mutex, and
// rewritten to disk in full on every change.
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/report-card-api/internal/models"
)

const (
	accountsFile = "students.json"
	resultsFile  = "results.json"
	profilesFile = "student_profiles.json"
)

// PersistObserver receives timing for collection rewrites. Satisfied by the
// metrics service; optional.
type PersistObserver interface {
	ObservePersist(collection string, d time.Duration)
}

// Store owns the in-memory copy of the three collections. One mutex guards
// every read-modify-write so concurrent portal sessions within this process
// cannot clobber each other's whole-collection rewrite. Separate processes
// sharing the same data directory still race; that is a known limitation.
type Store struct {
	mu       sync.Mutex
	dir      string
	logger   *zap.Logger
	observer PersistObserver

	accounts []models.Account
	profiles []models.Profile
	results  []models.ResultEntry
}

// Open loads all three collections from dir, creating it if needed. A missing
// or empty accounts file is initialised from seed; seed accounts missing from
// an existing file are merged in by username and the merged set persisted
// sorted by id. A file that fails to parse is reported and reset to its
// seed/empty state rather than aborting startup.
func Open(dir string, seed []models.Account, logger *zap.Logger, observer PersistObserver) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	s := &Store{dir: dir, logger: logger, observer: observer}

	accounts, loaded, err := loadCollection[models.Account](s.path(accountsFile), logger)
	if err != nil {
		return nil, err
	}
	if !loaded {
		accounts = append([]models.Account(nil), seed...)
		if len(seed) > 0 {
			logger.Info("initialising student accounts from seed", zap.Int("count", len(seed)))
		}
	} else if merged := mergeSeed(&accounts, seed, logger); merged {
		sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
		if err := s.writeCollection(accountsFile, accounts); err != nil {
			return nil, err
		}
	}
	s.accounts = accounts

	if s.profiles, _, err = loadCollection[models.Profile](s.path(profilesFile), logger); err != nil {
		return nil, err
	}
	if s.results, _, err = loadCollection[models.ResultEntry](s.path(resultsFile), logger); err != nil {
		return nil, err
	}

	return s, nil
}

// mergeSeed appends seed accounts whose username is absent from the loaded
// set. Returns true when anything was added.
func mergeSeed(accounts *[]models.Account, seed []models.Account, logger *zap.Logger) bool {
	existing := make(map[string]struct{}, len(*accounts))
	for _, a := range *accounts {
		existing[strings.ToLower(a.Username)] = struct{}{}
	}
	merged := false
	for _, a := range seed {
		if _, ok := existing[strings.ToLower(a.Username)]; ok {
			continue
		}
		*accounts = append(*accounts, a)
		logger.Info("adding seed account to existing store", zap.String("username", a.Username))
		merged = true
	}
	return merged
}

// Accounts returns a copy of the account collection.
func (s *Store) Accounts() []models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Account(nil), s.accounts...)
}

// FindAccountByUsername looks an account up case-insensitively.
func (s *Store) FindAccountByUsername(username string) (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.Username, username) {
			return a, true
		}
	}
	return models.Account{}, false
}

// NextAccountID returns max(id)+1 over the current collection.
func (s *Store) NextAccountID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextAccountIDLocked()
}

func (s *Store) nextAccountIDLocked() int {
	maxID := 0
	for _, a := range s.accounts {
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	return maxID + 1
}

// AddAccount appends the account and rewrites students.json.
func (s *Store) AddAccount(account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, account)
	return s.writeCollection(accountsFile, s.accounts)
}

// DeleteAccountCascade removes the account plus any profile and result entry
// carrying the same name (case-insensitive). Each touched collection is
// persisted; untouched collections are left alone.
func (s *Store) DeleteAccountCascade(username string) (removedAccount, removedProfile, removedResult bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := s.accounts[:0:0]
	for _, a := range s.accounts {
		if strings.EqualFold(a.Username, username) {
			removedAccount = true
			continue
		}
		accounts = append(accounts, a)
	}
	if removedAccount {
		s.accounts = accounts
		if err = s.writeCollection(accountsFile, s.accounts); err != nil {
			return
		}
	}

	profiles := s.profiles[:0:0]
	for _, p := range s.profiles {
		if strings.EqualFold(p.StudentName, username) {
			removedProfile = true
			continue
		}
		profiles = append(profiles, p)
	}
	if removedProfile {
		s.profiles = profiles
		if err = s.writeCollection(profilesFile, s.profiles); err != nil {
			return
		}
	}

	results := s.results[:0:0]
	for _, r := range s.results {
		if strings.EqualFold(r.StudentName, username) {
			removedResult = true
			continue
		}
		results = append(results, r)
	}
	if removedResult {
		s.results = results
		err = s.writeCollection(resultsFile, s.results)
	}
	return
}

// Profiles returns a copy of the profile collection.
func (s *Store) Profiles() []models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Profile(nil), s.profiles...)
}

// FindProfileByName looks a profile up case-insensitively.
func (s *Store) FindProfileByName(name string) (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if strings.EqualFold(p.StudentName, name) {
			return p, true
		}
	}
	return models.Profile{}, false
}

// SaveProfile inserts or replaces the profile matching the given student name
// and rewrites student_profiles.json.
func (s *Store) SaveProfile(profile models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i, p := range s.profiles {
		if strings.EqualFold(p.StudentName, profile.StudentName) {
			s.profiles[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		s.profiles = append(s.profiles, profile)
	}
	return s.writeCollection(profilesFile, s.profiles)
}

// DeleteProfile removes the named profile. Returns false when absent.
func (s *Store) DeleteProfile(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.profiles[:0:0]
	removed := false
	for _, p := range s.profiles {
		if strings.EqualFold(p.StudentName, name) {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return false, nil
	}
	s.profiles = kept
	return true, s.writeCollection(profilesFile, s.profiles)
}

// Results returns a copy of the result collection in insertion order. Rank
// tie-breaking relies on this order being stable.
func (s *Store) Results() []models.ResultEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ResultEntry(nil), s.results...)
}

// FindResultByName looks a result entry up case-insensitively.
func (s *Store) FindResultByName(name string) (models.ResultEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.results {
		if strings.EqualFold(r.StudentName, name) {
			return r, true
		}
	}
	return models.ResultEntry{}, false
}

// UpsertResult inserts or replaces the entry for the student and rewrites
// results.json.
func (s *Store) UpsertResult(entry models.ResultEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i, r := range s.results {
		if strings.EqualFold(r.StudentName, entry.StudentName) {
			s.results[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		s.results = append(s.results, entry)
	}
	return s.writeCollection(resultsFile, s.results)
}
