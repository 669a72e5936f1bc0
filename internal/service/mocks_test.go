package service

import (
	"context"
	"database/sql"
	"mime/multipart"
	"time"

	"github.com/maheshrc27/socialdash/internal/models"
	"github.com/maheshrc27/socialdash/internal/transfer"
	"github.com/stretchr/testify/mock"
)

type mockGraphClient struct {
	mock.Mock
}

func (m *mockGraphClient) WhoAmI(ctx context.Context, token string) (*transfer.GraphIdentity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.GraphIdentity), args.Error(1)
}

func (m *mockGraphClient) ExchangeToken(ctx context.Context, platform, token string) (*transfer.GraphTokenResponse, error) {
	args := m.Called(ctx, platform, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.GraphTokenResponse), args.Error(1)
}

func (m *mockGraphClient) ListAccounts(ctx context.Context, token string) ([]*transfer.GraphAccount, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transfer.GraphAccount), args.Error(1)
}

func (m *mockGraphClient) ListPosts(ctx context.Context, accountID, token string) ([]*transfer.GraphPost, error) {
	args := m.Called(ctx, accountID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transfer.GraphPost), args.Error(1)
}

func (m *mockGraphClient) ListComments(ctx context.Context, postID, token string) ([]*transfer.GraphComment, error) {
	args := m.Called(ctx, postID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transfer.GraphComment), args.Error(1)
}

func (m *mockGraphClient) CreatePost(ctx context.Context, accountID, token, message, mediaURL string) (*transfer.GraphPost, error) {
	args := m.Called(ctx, accountID, token, message, mediaURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.GraphPost), args.Error(1)
}

func (m *mockGraphClient) CreateComment(ctx context.Context, postID, token, message string) (*transfer.GraphComment, error) {
	args := m.Called(ctx, postID, token, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.GraphComment), args.Error(1)
}

func (m *mockGraphClient) HideComment(ctx context.Context, commentID, token string) error {
	args := m.Called(ctx, commentID, token)
	return args.Error(0)
}

func (m *mockGraphClient) DeleteComment(ctx context.Context, commentID, token string) error {
	args := m.Called(ctx, commentID, token)
	return args.Error(0)
}

func (m *mockGraphClient) ListConversations(ctx context.Context, accountID, token string) ([]*transfer.GraphConversation, error) {
	args := m.Called(ctx, accountID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transfer.GraphConversation), args.Error(1)
}

func (m *mockGraphClient) SendMessage(ctx context.Context, accountID, token, recipientID, text string) (*transfer.GraphMessage, error) {
	args := m.Called(ctx, accountID, token, recipientID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.GraphMessage), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) EnsureValidToken(ctx context.Context, userID int64, platform, candidate string) (string, error) {
	args := m.Called(ctx, userID, platform, candidate)
	return args.String(0), args.Error(1)
}

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Create(ctx context.Context, tx *sql.Tx, a *models.Account) (int64, error) {
	args := m.Called(ctx, tx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *mockAccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *mockAccountRepository) ListByTimeInterval(ctx context.Context, initialTime, finalTime time.Time) ([]*models.Account, error) {
	args := m.Called(ctx, initialTime, finalTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *mockAccountRepository) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	args := m.Called(ctx, accountID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccountRepository) SetToken(ctx context.Context, accountID int64, accessToken string, expiresAt time.Time) error {
	args := m.Called(ctx, accountID, accessToken, expiresAt)
	return args.Error(0)
}

func (m *mockAccountRepository) SetLastMessageAt(ctx context.Context, accountID int64, lastMessageAt time.Time) error {
	args := m.Called(ctx, accountID, lastMessageAt)
	return args.Error(0)
}

func (m *mockAccountRepository) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) ReplaceForAccount(ctx context.Context, accountID int64, posts []*models.Post) error {
	args := m.Called(ctx, accountID, posts)
	return args.Error(0)
}

func (m *mockPostRepository) ListByAccountID(ctx context.Context, accountID int64) ([]*models.Post, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *mockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) Create(ctx context.Context, tx *sql.Tx, p *models.Post) error {
	args := m.Called(ctx, tx, p)
	return args.Error(0)
}

func (m *mockPostRepository) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) Create(ctx context.Context, c *models.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *mockCommentRepository) ListByPostID(ctx context.Context, postID string) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *mockCommentRepository) SetHidden(ctx context.Context, id string, hidden bool) error {
	args := m.Called(ctx, id, hidden)
	return args.Error(0)
}

func (m *mockCommentRepository) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockTokenRefreshRepository struct {
	mock.Mock
}

func (m *mockTokenRefreshRepository) GetValid(ctx context.Context, userID int64, platform string) (*models.TokenRefresh, error) {
	args := m.Called(ctx, userID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenRefresh), args.Error(1)
}

func (m *mockTokenRefreshRepository) Save(ctx context.Context, tr *models.TokenRefresh) (int64, error) {
	args := m.Called(ctx, tr)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTokenRefreshRepository) DeleteExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockMediaService struct {
	mock.Mock
}

func (m *mockMediaService) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) List(ctx context.Context, userID int64) ([]*models.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *mockNotificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *mockNotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockNotificationService) NotifyNewComment(ctx context.Context, userID, accountID int64, postID string, comment *models.Comment) {
	m.Called(ctx, userID, accountID, postID, comment)
}

func (m *mockNotificationService) NotifyNewMessage(ctx context.Context, userID int64, sender, message string) {
	m.Called(ctx, userID, sender, message)
}
