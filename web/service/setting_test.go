package service

import (
	"testing"

	"urban-explorer/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowSignupDefaultsToTrue(t *testing.T) {
	db, _ := setupTest(t)
	svc := NewSettingService(db)

	allow, err := svc.GetAllowSignup()
	require.NoError(t, err)
	assert.True(t, allow)
}

func TestSetAllowSignupRoundTrip(t *testing.T) {
	db, _ := setupTest(t)
	svc := NewSettingService(db)

	setting, err := svc.SetAllowSignup(false)
	require.NoError(t, err)
	assert.False(t, setting.AllowSignup)

	allow, err := svc.GetAllowSignup()
	require.NoError(t, err)
	assert.False(t, allow)

	_, err = svc.SetAllowSignup(true)
	require.NoError(t, err)
	allow, err = svc.GetAllowSignup()
	require.NoError(t, err)
	assert.True(t, allow)
}

func TestSettingStaysSingleton(t *testing.T) {
	db, _ := setupTest(t)
	svc := NewSettingService(db)

	for i := 0; i < 5; i++ {
		_, err := svc.SetAllowSignup(i%2 == 0)
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(model.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
