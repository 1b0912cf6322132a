package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbuddy/internal/db"
)

func newTestAuth(t *testing.T) (*Service, *db.ProfileService) {
	t.Helper()
	gdb, err := db.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	profiles := db.NewProfileService(gdb)
	tokens := NewTokenManager([]byte("test-secret"))
	sessionPath := filepath.Join(t.TempDir(), "session")
	return NewService(gdb, profiles, tokens, sessionPath), profiles
}

func TestSignUpOpensSession(t *testing.T) {
	svc, profiles := newTestAuth(t)

	user, err := svc.SignUp("Alice@Example.com", "correct-horse", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	current, err := svc.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)

	// Signing up also created the profile row.
	profile, err := profiles.GetProfile(user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Alice", profile.FullName)
}

func TestSignUpValidation(t *testing.T) {
	svc, _ := newTestAuth(t)

	_, err := svc.SignUp("", "correct-horse", "")
	assert.ErrorContains(t, err, "email")

	_, err = svc.SignUp("bob@example.com", "short", "")
	assert.ErrorContains(t, err, "8 characters")

	_, err = svc.SignUp("bob@example.com", "correct-horse", "Bob")
	require.NoError(t, err)

	_, err = svc.SignUp("bob@example.com", "another-pass", "Bob")
	assert.ErrorContains(t, err, "already exists")
}

func TestSignInChecksCredentials(t *testing.T) {
	svc, _ := newTestAuth(t)

	_, err := svc.SignUp("bob@example.com", "correct-horse", "Bob")
	require.NoError(t, err)

	user, err := svc.SignIn("BOB@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)

	_, err = svc.SignIn("bob@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn("nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOutDiscardsSession(t *testing.T) {
	svc, _ := newTestAuth(t)

	_, err := svc.SignUp("bob@example.com", "correct-horse", "Bob")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut())
	_, err = svc.CurrentUser()
	assert.ErrorIs(t, err, ErrNoSession)

	// Signing out twice is fine.
	assert.NoError(t, svc.SignOut())
}

func TestCurrentUserRejectsTamperedToken(t *testing.T) {
	svc, _ := newTestAuth(t)

	_, err := svc.SignUp("bob@example.com", "correct-horse", "Bob")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(svc.sessionPath, []byte("not-a-token"), 0600))
	_, err = svc.CurrentUser()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager([]byte("test-secret"))

	token, err := tokens.Generate("user-1", "bob@example.com")
	require.NoError(t, err)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "bob@example.com", claims.Email)

	// A different secret must not validate the token.
	other := NewTokenManager([]byte("other-secret"))
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Validate("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLoadOrCreateSecretPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")

	first, err := LoadOrCreateSecret(path)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := LoadOrCreateSecret(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct-horse", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}
