package store

import "github.com/noah-isme/report-card-api/internal/models"

// DefaultSeedAccounts is the starter roster written on first run and merged
// into existing stores that are missing any of these usernames.
var DefaultSeedAccounts = []models.Account{
	{ID: 1, Username: "Adams", Password: "123456"},
	{ID: 2, Username: "Bala", Password: "123456"},
	{ID: 3, Username: "Ngozi", Password: "123456"},
}
