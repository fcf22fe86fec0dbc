package service_test

import (
	"testing"

	"vidtube-go/internal/apperr"
	"vidtube-go/internal/config"
	"vidtube-go/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireAppErr(t *testing.T, err error, status int, message string) {
	t.Helper()
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, status, appErr.Status)
	assert.Equal(t, message, appErr.Message)
}

func newTokenManager() *utils.TokenManager {
	return utils.NewTokenManager(&config.JWTConfig{
		Issuer:              "vidtube-test",
		AccessSecret:        "access-secret",
		AccessExpireMinutes: 15,
		RefreshSecret:       "refresh-secret",
		RefreshExpireHours:  24,
	})
}
