package gamify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateBadges_Thresholds(t *testing.T) {
	assert.Empty(t, UpdateBadges(nil, 6))
	assert.Equal(t, []string{"starter"}, UpdateBadges(nil, 7))
	assert.Equal(t, []string{"starter", "committed"}, UpdateBadges(nil, 14))
	assert.Equal(t, []string{"starter", "committed", "grinder", "legend"}, UpdateBadges(nil, 30))
}

func TestUpdateBadges_Monotonic(t *testing.T) {
	earned := UpdateBadges(nil, 7)
	assert.Contains(t, earned, "starter")

	// Streak reset to zero: the badge stays.
	after := UpdateBadges(earned, 0)
	assert.Contains(t, after, "starter")
}

func TestUpdateBadges_NoDuplicates(t *testing.T) {
	earned := UpdateBadges([]string{"starter"}, 7)
	assert.Equal(t, []string{"starter"}, earned)
}

func TestUpdateBadges_DoesNotMutateInput(t *testing.T) {
	current := []string{"starter"}
	_ = UpdateBadges(current, 30)
	assert.Equal(t, []string{"starter"}, current)
}
