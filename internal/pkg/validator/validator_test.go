package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty("  x  "))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2024-01-15")
	assert.True(t, ok)

	_, ok = IsValidDate("2024-13-01")
	assert.False(t, ok)

	_, ok = IsValidDate("15-01-2024")
	assert.False(t, ok)

	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidDateRange(t *testing.T) {
	assert.True(t, IsValidDateRange("2024-01-01", "2024-01-02"))
	assert.True(t, IsValidDateRange("2024-01-01", "2024-01-01"))
	assert.False(t, IsValidDateRange("2024-01-02", "2024-01-01"))
	assert.False(t, IsValidDateRange("", "2024-01-01"))
	assert.False(t, IsValidDateRange("2024-01-01", "not-a-date"))
}

func TestIsInSlice(t *testing.T) {
	statuses := []string{"none", "study", "personal-leave"}
	assert.True(t, IsInSlice("study", statuses))
	assert.False(t, IsInSlice("vacation-leave", statuses))
	assert.False(t, IsInSlice("", statuses))
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("somsak.w"))
	assert.True(t, IsValidUsername("user_01"))
	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername("has space"))
}
