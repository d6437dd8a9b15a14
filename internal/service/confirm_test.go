package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfirmGuardTwoStep(t *testing.T) {
	guard := NewConfirmGuard(30 * time.Second)

	assert.False(t, guard.Check("account", "Bala", false), "first call only arms")
	assert.True(t, guard.Check("account", "bala", true), "confirmed follow-up proceeds, case-insensitive")
	assert.False(t, guard.Check("account", "Bala", true), "confirmation is consumed")
}

func TestConfirmGuardRequiresArming(t *testing.T) {
	guard := NewConfirmGuard(30 * time.Second)

	assert.False(t, guard.Check("profile", "Adams", true), "confirm without a pending request re-arms")
	assert.True(t, guard.Check("profile", "Adams", true))
}

func TestConfirmGuardExpiry(t *testing.T) {
	guard := NewConfirmGuard(30 * time.Second)
	current := time.Now()
	guard.now = func() time.Time { return current }

	assert.False(t, guard.Check("account", "Ngozi", false))

	current = current.Add(31 * time.Second)
	assert.False(t, guard.Check("account", "Ngozi", true), "expired confirmation re-arms")
	assert.True(t, guard.Check("account", "Ngozi", true))
}

func TestConfirmGuardScopesByKind(t *testing.T) {
	guard := NewConfirmGuard(30 * time.Second)

	assert.False(t, guard.Check("account", "Adams", false))
	assert.False(t, guard.Check("profile", "Adams", true), "arming one kind does not confirm another")
	assert.True(t, guard.Check("account", "Adams", true))
}
