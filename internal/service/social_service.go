package service

import (
	"context"
	"mime/multipart"
	"sync"
	"time"

	config "github.com/maheshrc27/socialdash/configs"
	"github.com/maheshrc27/socialdash/internal/models"
	"github.com/maheshrc27/socialdash/internal/repository"
	"github.com/maheshrc27/socialdash/internal/transfer"
	"github.com/maheshrc27/socialdash/pkg/utils"
)

// SocialService runs the sync and publish flows against the platform:
// token check, Graph calls, payload mapping, persistence.
type SocialService interface {
	SyncPosts(ctx context.Context, userID, accountID int64) ([]*models.Post, error)
	ListPosts(ctx context.Context, userID, accountID int64) ([]*models.Post, error)
	CreatePost(ctx context.Context, userID, accountID int64, content string, files []*multipart.FileHeader) (*models.Post, error)
	AddComment(ctx context.Context, userID, accountID int64, postID, message string) (*models.Comment, error)
	HideComment(ctx context.Context, userID, accountID int64, commentID string) error
	DeleteComment(ctx context.Context, userID, accountID int64, commentID string) error
	ListMessages(ctx context.Context, userID, accountID int64) ([]*transfer.GraphConversation, error)
	SendMessage(ctx context.Context, userID, accountID int64, recipientID, text string) (*transfer.GraphMessage, error)
	CheckNewMessages(ctx context.Context, userID, accountID int64) error
}

type socialService struct {
	cfg config.Config
	gc  GraphClient
	ts  TokenService
	ar  repository.AccountRepository
	pr  repository.PostRepository
	cr  repository.CommentRepository
	tr  repository.TokenRefreshRepository
	ms  MediaService
	ns  NotificationService
}

func NewSocialService(
	cfg config.Config,
	gc GraphClient,
	ts TokenService,
	ar repository.AccountRepository,
	pr repository.PostRepository,
	cr repository.CommentRepository,
	tr repository.TokenRefreshRepository,
	ms MediaService,
	ns NotificationService) SocialService {
	return &socialService{
		cfg: cfg,
		gc:  gc,
		ts:  ts,
		ar:  ar,
		pr:  pr,
		cr:  cr,
		tr:  tr,
		ms:  ms,
		ns:  ns,
	}
}

// commentFetchConcurrency bounds the per-post comment fan-out during a
// sync. Result order still mirrors the platform's post order.
const commentFetchConcurrency = 5

// SyncPosts fetches the account's current posts and comments from the
// platform, maps them and replaces the whole local copy. Any failure
// aborts the sync and leaves the previous copy untouched.
func (s *socialService) SyncPosts(ctx context.Context, userID, accountID int64) ([]*models.Post, error) {
	acc, token, err := s.accountToken(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	rawPosts, err := s.gc.ListPosts(ctx, acc.AccountID, token)
	if err != nil {
		return nil, err
	}

	posts := make([]*models.Post, len(rawPosts))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, commentFetchConcurrency)

	var mu sync.Mutex
	var firstErr error

	for i, raw := range rawPosts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(i int, raw *transfer.GraphPost) {
			defer wg.Done()
			defer func() { <-semaphore }()

			post, err := s.fetchAndMapPost(ctx, acc, raw, token)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			posts[i] = post
		}(i, raw)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	if err := s.pr.ReplaceForAccount(ctx, acc.ID, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (s *socialService) fetchAndMapPost(ctx context.Context, acc *models.Account, raw *transfer.GraphPost, token string) (*models.Post, error) {
	post, err := MapPost(raw, acc.ID)
	if err != nil {
		return nil, err
	}

	rawComments, err := s.gc.ListComments(ctx, raw.ID, token)
	if err != nil {
		return nil, err
	}

	comments := make([]*models.Comment, 0, len(rawComments))
	for _, rc := range rawComments {
		c, err := MapComment(rc, raw.ID)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	post.Comments = comments

	return post, nil
}

func (s *socialService) ListPosts(ctx context.Context, userID, accountID int64) ([]*models.Post, error) {
	acc, err := s.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	return s.pr.ListByAccountID(ctx, acc.ID)
}

func (s *socialService) CreatePost(ctx context.Context, userID, accountID int64, content string, files []*multipart.FileHeader) (*models.Post, error) {
	acc, token, err := s.accountToken(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	var mediaURL string
	if len(files) > 0 {
		mediaURL, err = s.ms.Upload(ctx, files[0])
		if err != nil {
			return nil, err
		}
	}

	raw, err := s.gc.CreatePost(ctx, acc.AccountID, token, content, mediaURL)
	if err != nil {
		return nil, err
	}

	post, err := MapPost(raw, acc.ID)
	if err != nil {
		return nil, err
	}

	// The create endpoint returns little more than the id; fill the
	// fields the caller already knows.
	if post.Content == "" {
		post.Content = content
	}
	if post.MediaURL == "" {
		post.MediaURL = mediaURL
	}
	if post.PostedAt.IsZero() {
		post.PostedAt = time.Now()
	}

	if err := s.pr.Create(ctx, nil, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *socialService) AddComment(ctx context.Context, userID, accountID int64, postID, message string) (*models.Comment, error) {
	acc, token, err := s.accountToken(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	raw, err := s.gc.CreateComment(ctx, postID, token, message)
	if err != nil {
		return nil, err
	}

	comment, err := MapComment(raw, postID)
	if err != nil {
		return nil, err
	}
	if comment.Content == "" {
		comment.Content = message
	}
	if comment.CreatedTime.IsZero() {
		comment.CreatedTime = time.Now()
	}

	if err := s.cr.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.ns.NotifyNewComment(ctx, userID, acc.ID, postID, comment)

	return comment, nil
}

func (s *socialService) HideComment(ctx context.Context, userID, accountID int64, commentID string) error {
	_, token, err := s.accountToken(ctx, userID, accountID)
	if err != nil {
		return err
	}

	if err := s.gc.HideComment(ctx, commentID, token); err != nil {
		return err
	}

	return s.cr.SetHidden(ctx, commentID, true)
}

func (s *socialService) DeleteComment(ctx context.Context, userID, accountID int64, commentID string) error {
	_, token, err := s.accountToken(ctx, userID, accountID)
	if err != nil {
		return err
	}

	if err := s.gc.DeleteComment(ctx, commentID, token); err != nil {
		return err
	}

	return s.cr.Remove(ctx, commentID)
}

func (s *socialService) ListMessages(ctx context.Context, userID, accountID int64) ([]*transfer.GraphConversation, error) {
	acc, token, err := s.accountToken(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	return s.gc.ListConversations(ctx, acc.AccountID, token)
}

func (s *socialService) SendMessage(ctx context.Context, userID, accountID int64, recipientID, text string) (*transfer.GraphMessage, error) {
	acc, token, err := s.accountToken(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	return s.gc.SendMessage(ctx, acc.AccountID, token, recipientID, text)
}

// CheckNewMessages scans the account's conversations for inbound
// messages newer than the watermark and raises a notification for each.
// The platform has no push channel for page messages, so the sync
// worker polls here.
func (s *socialService) CheckNewMessages(ctx context.Context, userID, accountID int64) error {
	acc, token, err := s.accountToken(ctx, userID, accountID)
	if err != nil {
		return err
	}

	conversations, err := s.gc.ListConversations(ctx, acc.AccountID, token)
	if err != nil {
		return err
	}

	latest := acc.LastMessageAt
	for _, conv := range conversations {
		if conv.Messages == nil {
			continue
		}
		for _, msg := range conv.Messages.Data {
			createdAt := parseGraphTime(msg.CreatedTime)
			if !createdAt.After(acc.LastMessageAt) {
				continue
			}
			// The account's own replies are not inbound messages.
			if msg.From == nil || msg.From.ID == acc.AccountID {
				continue
			}

			sender := msg.From.Name
			if sender == "" {
				sender = UnknownAuthor
			}
			s.ns.NotifyNewMessage(ctx, userID, sender, msg.Message)

			if createdAt.After(latest) {
				latest = createdAt
			}
		}
	}

	if latest.After(acc.LastMessageAt) {
		if err := s.ar.SetLastMessageAt(ctx, acc.ID, latest); err != nil {
			return err
		}
	}

	return nil
}

func (s *socialService) ownedAccount(ctx context.Context, userID, accountID int64) (*models.Account, error) {
	isOwned, err := s.ar.CheckByUserID(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}
	if !isOwned {
		return nil, ErrNotFound
	}

	acc, err := s.ar.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrNotFound
	}

	return acc, nil
}

// accountToken loads the account, decrypts its stored token and runs it
// through the lifecycle manager. A refreshed token is written back to
// the account row so the next request starts from it.
func (s *socialService) accountToken(ctx context.Context, userID, accountID int64) (*models.Account, string, error) {
	acc, err := s.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, "", err
	}

	stored, err := utils.Decrypt(acc.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, "", err
	}

	valid, err := s.ts.EnsureValidToken(ctx, userID, acc.Platform, stored)
	if err != nil {
		return nil, "", err
	}

	if valid != stored {
		if err := s.persistRefreshedToken(ctx, acc, valid); err != nil {
			return nil, "", err
		}
	}

	return acc, valid, nil
}

func (s *socialService) persistRefreshedToken(ctx context.Context, acc *models.Account, token string) error {
	encrypted, err := utils.Encrypt([]byte(token), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	expiresAt := acc.TokenExpiresAt
	if refresh, err := s.tr.GetValid(ctx, acc.UserID, acc.Platform); err == nil && refresh != nil {
		expiresAt = refresh.ExpiresAt
	}

	if err := s.ar.SetToken(ctx, acc.ID, encrypted, expiresAt); err != nil {
		return err
	}

	acc.AccessToken = encrypted
	acc.TokenExpiresAt = expiresAt
	return nil
}
