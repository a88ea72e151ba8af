package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("S3cret!pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "S3cret!pass", hashed)

	assert.True(t, CheckPassword(hashed, "S3cret!pass"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}

func TestHashPasswordProducesUniqueHashes(t *testing.T) {
	first, err := HashPassword("S3cret!pass")
	assert.NoError(t, err)
	second, err := HashPassword("S3cret!pass")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
