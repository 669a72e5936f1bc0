package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	config "github.com/maheshrc27/socialdash/configs"
	"github.com/maheshrc27/socialdash/internal/models"
	"github.com/maheshrc27/socialdash/internal/repository"
	"github.com/maheshrc27/socialdash/internal/transfer"
	"github.com/maheshrc27/socialdash/pkg/utils"
)

// PlatformService owns the account connect/disconnect flow.
type PlatformService interface {
	Connect(ctx context.Context, userID int64, req *transfer.ConnectAccountRequest) (*models.Account, error)
	ListAvailable(ctx context.Context, userID int64, platform, accessToken string) ([]*transfer.GraphAccount, error)
	List(ctx context.Context, userID int64) ([]*models.Account, error)
	Delete(ctx context.Context, userID, accountID int64) error
}

type platformService struct {
	cfg config.Config
	gc  GraphClient
	ts  TokenService
	ar  repository.AccountRepository
}

func NewPlatformService(cfg config.Config, gc GraphClient, ts TokenService, ar repository.AccountRepository) PlatformService {
	return &platformService{
		cfg: cfg,
		gc:  gc,
		ts:  ts,
		ar:  ar,
	}
}

// Connect validates the submitted token, resolves the external account
// identity and stores the account with the token encrypted at rest.
func (s *platformService) Connect(ctx context.Context, userID int64, req *transfer.ConnectAccountRequest) (*models.Account, error) {
	if userID == 0 {
		err := errors.New("UserID is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	if !models.SupportedPlatform(req.Platform) {
		return nil, fmt.Errorf("platform %q is not supported", req.Platform)
	}

	validToken, err := s.ts.EnsureValidToken(ctx, userID, req.Platform, req.AccessToken)
	if err != nil {
		return nil, err
	}

	externalID := req.AccountID
	name := req.AccountName
	if externalID == "" {
		identity, err := s.gc.WhoAmI(ctx, validToken)
		if err != nil {
			return nil, err
		}
		externalID = identity.ID
		if name == "" {
			name = identity.Name
		}
	}

	encryptedToken, err := utils.Encrypt([]byte(validToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		UserID:      userID,
		Platform:    req.Platform,
		AccountID:   externalID,
		AccountName: name,
		AccessToken: encryptedToken,
		IsActive:    true,
	}

	id, err := s.ar.Create(ctx, nil, account)
	if err != nil {
		return nil, err
	}

	account.ID = id
	return account, nil
}

// ListAvailable returns the pages/accounts a user token can manage, so
// the UI can offer them for connection. First page only.
func (s *platformService) ListAvailable(ctx context.Context, userID int64, platform, accessToken string) ([]*transfer.GraphAccount, error) {
	if !models.SupportedPlatform(platform) {
		return nil, fmt.Errorf("platform %q is not supported", platform)
	}

	validToken, err := s.ts.EnsureValidToken(ctx, userID, platform, accessToken)
	if err != nil {
		return nil, err
	}

	accounts, err := s.gc.ListAccounts(ctx, validToken)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (s *platformService) List(ctx context.Context, userID int64) ([]*models.Account, error) {
	if userID == 0 {
		err := errors.New("UserID is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	accounts, err := s.ar.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting social accounts")
	}

	return accounts, nil
}

func (s *platformService) Delete(ctx context.Context, userID, accountID int64) error {
	if userID == 0 || accountID == 0 {
		err := errors.New("UserID or AccountID is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.ar.CheckByUserID(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		return ErrNotFound
	}

	if err := s.ar.Remove(ctx, accountID); err != nil {
		return fmt.Errorf("error removing account: %w", err)
	}

	return nil
}
