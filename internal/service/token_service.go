package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/maheshrc27/socialdash/internal/models"
	"github.com/maheshrc27/socialdash/internal/repository"
)

type TokenService interface {
	// EnsureValidToken probes the candidate token against the platform
	// and, when the probe fails, falls back to the cached refresh or a
	// fresh exchange. Every failure is terminal for the current request;
	// a later user action re-runs the whole sequence.
	EnsureValidToken(ctx context.Context, userID int64, platform, candidate string) (string, error)
}

type tokenService struct {
	gc GraphClient
	tr repository.TokenRefreshRepository
}

func NewTokenService(gc GraphClient, tr repository.TokenRefreshRepository) TokenService {
	return &tokenService{
		gc: gc,
		tr: tr,
	}
}

func (s *tokenService) EnsureValidToken(ctx context.Context, userID int64, platform, candidate string) (string, error) {
	identity, err := s.gc.WhoAmI(ctx, candidate)
	if err == nil && identity.ID != "" {
		// Validity is whether the probe succeeds right now; no refresh
		// even when expiry is close.
		return candidate, nil
	}

	cached, err := s.tr.GetValid(ctx, userID, platform)
	if err != nil {
		return "", err
	}
	if cached != nil {
		return cached.Token, nil
	}

	exchanged, err := s.gc.ExchangeToken(ctx, platform, candidate)
	if err != nil {
		slog.Info(err.Error())
		// A 4xx from the exchange means the platform rejected the token
		// itself; anything else is the exchange call failing.
		var graphErr *GraphError
		if errors.As(err, &graphErr) &&
			graphErr.StatusCode >= http.StatusBadRequest && graphErr.StatusCode < http.StatusInternalServerError {
			return "", ErrTokenInvalid
		}
		return "", ErrTokenRefreshFailed
	}

	refresh := &models.TokenRefresh{
		UserID:    userID,
		Platform:  platform,
		Token:     exchanged.AccessToken,
		ExpiresAt: GetExpiresAt(exchanged.ExpiresIn),
	}
	if _, err := s.tr.Save(ctx, refresh); err != nil {
		return "", err
	}

	return exchanged.AccessToken, nil
}
