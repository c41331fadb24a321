package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	j := New("test-secret")

	tok, err := j.Sign("alice", time.Hour)
	require.NoError(t, err)

	sub, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := New("secret-one").Sign("alice", time.Hour)
	require.NoError(t, err)

	_, err = New("secret-two").Verify(tok)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tok, err := New("test-secret").Sign("alice", -time.Minute)
	require.NoError(t, err)

	_, err = New("test-secret").Verify(tok)
	assert.Error(t, err)
}

func TestSignEmptyUsername(t *testing.T) {
	_, err := New("test-secret").Sign("", time.Hour)
	assert.Error(t, err)
}
