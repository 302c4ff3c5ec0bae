package service

import (
	"testing"

	"urban-explorer/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpAndCheckUser(t *testing.T) {
	db, _ := setupTest(t)
	svc := NewUserService(db, NewSettingService(db))

	user, err := svc.SignUp("alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	assert.NotNil(t, svc.CheckUser("alice@example.com", "s3cret"))
	assert.Nil(t, svc.CheckUser("alice@example.com", "wrong"))
	assert.Nil(t, svc.CheckUser("nobody@example.com", "s3cret"))
}

func TestSignUpRespectsGate(t *testing.T) {
	db, _ := setupTest(t)
	settingService := NewSettingService(db)
	svc := NewUserService(db, settingService)

	_, err := settingService.SetAllowSignup(false)
	require.NoError(t, err)

	_, err = svc.SignUp("alice@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrSignupClosed)

	// the admin path ignores the gate
	_, err = svc.CreateUser("bob@example.com", "s3cret", model.RoleAdmin)
	assert.NoError(t, err)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	db, _ := setupTest(t)
	svc := NewUserService(db, NewSettingService(db))

	_, err := svc.SignUp("alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.SignUp("alice@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUserValidation(t *testing.T) {
	db, _ := setupTest(t)
	svc := NewUserService(db, NewSettingService(db))

	_, err := svc.CreateUser("", "s3cret", model.RoleUser)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser("alice@example.com", "", model.RoleUser)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser("alice@example.com", "s3cret", "moderator")
	assert.ErrorIs(t, err, ErrValidation)

	// empty role defaults to user
	user, err := svc.CreateUser("alice@example.com", "s3cret", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
}

func TestUpdateUserRole(t *testing.T) {
	db, _ := setupTest(t)
	svc := NewUserService(db, NewSettingService(db))

	user, err := svc.CreateUser("alice@example.com", "s3cret", model.RoleUser)
	require.NoError(t, err)

	updated, err := svc.UpdateUserRole(user.Id, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	_, err = svc.UpdateUserRole(user.Id, "moderator")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateUserRole(99999, model.RoleUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	db, _ := setupTest(t)
	svc := NewUserService(db, NewSettingService(db))

	user, err := svc.CreateUser("alice@example.com", "s3cret", model.RoleUser)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(user.Id))
	assert.ErrorIs(t, svc.DeleteUser(user.Id), ErrNotFound)
}

func TestResetPassword(t *testing.T) {
	db, _ := setupTest(t)
	svc := NewUserService(db, NewSettingService(db))

	_, err := svc.CreateUser("alice@example.com", "old", model.RoleUser)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword("alice@example.com", "new"))
	assert.Nil(t, svc.CheckUser("alice@example.com", "old"))
	assert.NotNil(t, svc.CheckUser("alice@example.com", "new"))

	assert.ErrorIs(t, svc.ResetPassword("nobody@example.com", "x"), ErrNotFound)
}
