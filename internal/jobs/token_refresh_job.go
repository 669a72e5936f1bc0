package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	config "github.com/maheshrc27/socialdash/configs"
	"github.com/maheshrc27/socialdash/internal/models"
	"github.com/maheshrc27/socialdash/internal/repository"
	"github.com/maheshrc27/socialdash/internal/service"
	"github.com/maheshrc27/socialdash/pkg/utils"
)

type TokenRefreshJob struct {
	cfg config.Config
	ar  repository.AccountRepository
	tr  repository.TokenRefreshRepository
	ts  service.TokenService
}

func NewTokenRefreshJob(
	cfg config.Config,
	ar repository.AccountRepository,
	tr repository.TokenRefreshRepository,
	ts service.TokenService) *TokenRefreshJob {
	return &TokenRefreshJob{
		cfg: cfg,
		ar:  ar,
		tr:  tr,
		ts:  ts,
	}
}

// RefreshTokens exchanges tokens for accounts expiring within the next
// 30 minutes and prunes cached exchanges that already lapsed.
func (c *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	currentTime := time.Now()
	timeIn30Minutes := currentTime.Add(30 * time.Minute)

	accounts, err := c.ar.ListByTimeInterval(ctx, currentTime, timeIn30Minutes)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, acc := range accounts {

		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.Account) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := c.refreshAccount(ctx, acc); err != nil {
				slog.Info("Unable to refresh token", "platform", acc.Platform, "account_id", acc.ID)
			}
		}(acc)
	}
	wg.Wait()

	if err := c.tr.DeleteExpired(ctx); err != nil {
		slog.Info(err.Error())
	}
}

func (c *TokenRefreshJob) refreshAccount(ctx context.Context, acc *models.Account) error {
	stored, err := utils.Decrypt(acc.AccessToken, []byte(c.cfg.SecretKey))
	if err != nil {
		return err
	}

	valid, err := c.ts.EnsureValidToken(ctx, acc.UserID, acc.Platform, stored)
	if err != nil {
		return err
	}

	if valid == stored {
		return nil
	}

	encrypted, err := utils.Encrypt([]byte(valid), []byte(c.cfg.SecretKey))
	if err != nil {
		return err
	}

	expiresAt := acc.TokenExpiresAt
	if refresh, err := c.tr.GetValid(ctx, acc.UserID, acc.Platform); err == nil && refresh != nil {
		expiresAt = refresh.ExpiresAt
	}

	return c.ar.SetToken(ctx, acc.ID, encrypted, expiresAt)
}
