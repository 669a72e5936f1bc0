package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maheshrc27/socialdash/internal/models"
	"github.com/maheshrc27/socialdash/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEnsureValidToken_ProbeSucceeds(t *testing.T) {
	gc := new(mockGraphClient)
	tr := new(mockTokenRefreshRepository)
	s := NewTokenService(gc, tr)

	gc.On("WhoAmI", mock.Anything, "good-token").
		Return(&transfer.GraphIdentity{ID: "42", Name: "Page"}, nil)

	token, err := s.EnsureValidToken(context.Background(), 1, models.PlatformFacebook, "good-token")
	assert.NoError(t, err)
	assert.Equal(t, "good-token", token)

	tr.AssertNotCalled(t, "GetValid", mock.Anything, mock.Anything, mock.Anything)
	gc.AssertNotCalled(t, "ExchangeToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureValidToken_UsesCachedRefresh(t *testing.T) {
	gc := new(mockGraphClient)
	tr := new(mockTokenRefreshRepository)
	s := NewTokenService(gc, tr)

	gc.On("WhoAmI", mock.Anything, "stale-token").
		Return(nil, &GraphError{StatusCode: 401, Code: 190, Message: "token expired"})
	tr.On("GetValid", mock.Anything, int64(1), models.PlatformFacebook).
		Return(&models.TokenRefresh{
			UserID:    1,
			Platform:  models.PlatformFacebook,
			Token:     "cached-token",
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)

	token, err := s.EnsureValidToken(context.Background(), 1, models.PlatformFacebook, "stale-token")
	assert.NoError(t, err)
	assert.Equal(t, "cached-token", token)

	gc.AssertNotCalled(t, "ExchangeToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureValidToken_ExchangesAndCaches(t *testing.T) {
	gc := new(mockGraphClient)
	tr := new(mockTokenRefreshRepository)
	s := NewTokenService(gc, tr)

	gc.On("WhoAmI", mock.Anything, "stale-token").
		Return(nil, &GraphError{StatusCode: 401, Message: "token expired"})
	tr.On("GetValid", mock.Anything, int64(1), models.PlatformInstagram).Return(nil, nil)
	gc.On("ExchangeToken", mock.Anything, models.PlatformInstagram, "stale-token").
		Return(&transfer.GraphTokenResponse{
			AccessToken: "fresh-token",
			TokenType:   "bearer",
			ExpiresIn:   5184000,
		}, nil)
	tr.On("Save", mock.Anything, mock.MatchedBy(func(r *models.TokenRefresh) bool {
		return r.UserID == 1 &&
			r.Platform == models.PlatformInstagram &&
			r.Token == "fresh-token" &&
			r.ExpiresAt.After(time.Now())
	})).Return(int64(10), nil)

	token, err := s.EnsureValidToken(context.Background(), 1, models.PlatformInstagram, "stale-token")
	assert.NoError(t, err)
	assert.Equal(t, "fresh-token", token)

	tr.AssertExpectations(t)
}

func TestEnsureValidToken_ExchangeRejectsToken(t *testing.T) {
	gc := new(mockGraphClient)
	tr := new(mockTokenRefreshRepository)
	s := NewTokenService(gc, tr)

	gc.On("WhoAmI", mock.Anything, "dead-token").
		Return(nil, &GraphError{StatusCode: 401, Message: "token expired"})
	tr.On("GetValid", mock.Anything, int64(1), models.PlatformFacebook).Return(nil, nil)
	gc.On("ExchangeToken", mock.Anything, models.PlatformFacebook, "dead-token").
		Return(nil, &GraphError{StatusCode: 400, Code: 190, Message: "invalid exchange"})

	_, err := s.EnsureValidToken(context.Background(), 1, models.PlatformFacebook, "dead-token")
	assert.True(t, errors.Is(err, ErrTokenInvalid))

	tr.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEnsureValidToken_ExchangeFails(t *testing.T) {
	gc := new(mockGraphClient)
	tr := new(mockTokenRefreshRepository)
	s := NewTokenService(gc, tr)

	gc.On("WhoAmI", mock.Anything, "dead-token").
		Return(nil, &GraphError{StatusCode: 401, Message: "token expired"})
	tr.On("GetValid", mock.Anything, int64(1), models.PlatformFacebook).Return(nil, nil)
	gc.On("ExchangeToken", mock.Anything, models.PlatformFacebook, "dead-token").
		Return(nil, &GraphError{StatusCode: 500, Message: "server error"})

	_, err := s.EnsureValidToken(context.Background(), 1, models.PlatformFacebook, "dead-token")
	assert.True(t, errors.Is(err, ErrTokenRefreshFailed))

	tr.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEnsureValidToken_CacheLookupError(t *testing.T) {
	gc := new(mockGraphClient)
	tr := new(mockTokenRefreshRepository)
	s := NewTokenService(gc, tr)

	dbErr := errors.New("connection refused")
	gc.On("WhoAmI", mock.Anything, "token").
		Return(nil, &GraphError{StatusCode: 401, Message: "token expired"})
	tr.On("GetValid", mock.Anything, int64(1), models.PlatformFacebook).Return(nil, dbErr)

	_, err := s.EnsureValidToken(context.Background(), 1, models.PlatformFacebook, "token")
	assert.Equal(t, dbErr, err)
}
