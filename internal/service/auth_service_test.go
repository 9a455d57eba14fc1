package service

import (
	"context"
	"testing"

	"notes-web/internal/dto"
	"notes-web/internal/model"
	"notes-web/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_SignupThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, user := f.signup(t, "alice", "  A@Example.com ")
	assert.Equal(t, "a@example.com", user.Email)
	assert.Equal(t, "alice", user.FullName)
	require.True(t, session.IsAuthenticated())
	assert.Equal(t, user.Id, *session.UserId)

	var stored model.User
	require.NoError(t, f.db.First(&stored, "email = ?", "a@example.com").Error)
	assert.NotEqual(t, "pw123456", stored.PasswordHash)

	loginSession := f.anonymousSession(t)
	loggedIn, err := f.auth.Login(ctx, loginSession, &dto.LoginRequest{Email: "a@example.com", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, user.Id, loggedIn.Id)
	assert.True(t, loginSession.IsAuthenticated())

	assert.Equal(t, []string{dto.ActivityUserSignedUp, dto.ActivityUserLoggedIn}, f.publisher.types())
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signup(t, "alice", "a@example.com")

	wrongPassword := f.anonymousSession(t)
	_, errWrong := f.auth.Login(ctx, wrongPassword, &dto.LoginRequest{Email: "a@example.com", Password: "nope12345"})

	unknownUser := f.anonymousSession(t)
	_, errUnknown := f.auth.Login(ctx, unknownUser, &dto.LoginRequest{Email: "ghost@example.com", Password: "pw123456"})

	require.Error(t, errWrong)
	require.Error(t, errUnknown)
	assert.ErrorIs(t, errWrong, apperror.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, apperror.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
	assert.Equal(t, "Invalid email or password.", apperror.Message(errWrong, ""))

	assert.False(t, wrongPassword.IsAuthenticated())
	assert.False(t, unknownUser.IsAuthenticated())
}

func TestAuthService_LoginRequiresBothFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Login(context.Background(), f.anonymousSession(t), &dto.LoginRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAuthService_SignupRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice", "a@example.com")

	session := f.anonymousSession(t)
	_, err := f.auth.Signup(context.Background(), session, &dto.SignupRequest{
		Email:           "A@EXAMPLE.COM",
		FullName:        "alice2",
		Password:        "pw123456",
		ConfirmPassword: "pw123456",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, "Email already exists. Try logging in instead.", apperror.Message(err, ""))
	assert.False(t, session.IsAuthenticated())

	var count int64
	f.db.Model(&model.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_SignupValidationPersistsNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Signup(context.Background(), f.anonymousSession(t), &dto.SignupRequest{
		Email:           "a@example.com",
		FullName:        "alice",
		Password:        "pw123456",
		ConfirmPassword: "pw654321",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	var count int64
	f.db.Model(&model.User{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, f.publisher.types())
}

func TestAuthService_LogoutRotatesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, _ := f.signup(t, "alice", "a@example.com")
	_, err := f.sessions.Persist(ctx, session)
	require.NoError(t, err)
	oldId := session.Id

	require.NoError(t, f.auth.Logout(ctx, session))
	assert.False(t, session.IsAuthenticated())
	assert.NotEqual(t, oldId, session.Id)

	// The old token no longer resolves to the logged in session.
	resolved, err := f.sessions.Resolve(ctx, oldId)
	require.NoError(t, err)
	assert.False(t, resolved.IsAuthenticated())
	assert.NotEqual(t, oldId, resolved.Id)

	// A second logout is a no-op.
	require.NoError(t, f.auth.Logout(ctx, session))
	assert.Equal(t, []string{dto.ActivityUserSignedUp, dto.ActivityUserLoggedOut}, f.publisher.types())
}

func TestAuthService_CurrentUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	anonymous, err := f.auth.CurrentUser(ctx, f.anonymousSession(t))
	require.NoError(t, err)
	assert.Nil(t, anonymous)

	session, user := f.signup(t, "alice", "a@example.com")
	current, err := f.auth.CurrentUser(ctx, session)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, user.Id, current.Id)
	assert.Equal(t, "alice", current.FullName)
}

func TestAuthService_PublishFailureDoesNotFailSignup(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errBusDown

	session, user := f.signup(t, "alice", "a@example.com")
	assert.NotNil(t, user)
	assert.True(t, session.IsAuthenticated())
}
