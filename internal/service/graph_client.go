package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	config "github.com/maheshrc27/socialdash/configs"
	"github.com/maheshrc27/socialdash/internal/models"
	"github.com/maheshrc27/socialdash/internal/transfer"
)

// GraphClient wraps every outbound call to the Graph API. One
// implementation serves both Facebook and Instagram; the platform only
// matters where the API semantics differ (token exchange). Each call is
// a single request with the access token in the query string; no
// pagination cursors are followed, so list calls return the first page
// only.
type GraphClient interface {
	WhoAmI(ctx context.Context, token string) (*transfer.GraphIdentity, error)
	ExchangeToken(ctx context.Context, platform, token string) (*transfer.GraphTokenResponse, error)
	ListAccounts(ctx context.Context, token string) ([]*transfer.GraphAccount, error)
	ListPosts(ctx context.Context, accountID, token string) ([]*transfer.GraphPost, error)
	ListComments(ctx context.Context, postID, token string) ([]*transfer.GraphComment, error)
	CreatePost(ctx context.Context, accountID, token, message, mediaURL string) (*transfer.GraphPost, error)
	CreateComment(ctx context.Context, postID, token, message string) (*transfer.GraphComment, error)
	HideComment(ctx context.Context, commentID, token string) error
	DeleteComment(ctx context.Context, commentID, token string) error
	ListConversations(ctx context.Context, accountID, token string) ([]*transfer.GraphConversation, error)
	SendMessage(ctx context.Context, accountID, token, recipientID, text string) (*transfer.GraphMessage, error)
}

type graphClient struct {
	cfg     config.Config
	baseURL string
	http    *http.Client
}

func NewGraphClient(cfg config.Config) GraphClient {
	return &graphClient{
		cfg:     cfg,
		baseURL: cfg.GraphAPIBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *graphClient) WhoAmI(ctx context.Context, token string) (*transfer.GraphIdentity, error) {
	params := url.Values{}
	params.Set("access_token", token)
	params.Set("fields", "id,name")

	var identity transfer.GraphIdentity
	if err := g.get(ctx, "me", params, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (g *graphClient) ExchangeToken(ctx context.Context, platform, token string) (*transfer.GraphTokenResponse, error) {
	params := url.Values{}
	switch platform {
	case models.PlatformInstagram:
		params.Set("grant_type", "ig_exchange_token")
		params.Set("client_id", g.cfg.InstagramAppID)
		params.Set("client_secret", g.cfg.InstagramAppSecret)
		params.Set("ig_exchange_token", token)
	default:
		params.Set("grant_type", "fb_exchange_token")
		params.Set("client_id", g.cfg.FacebookAppID)
		params.Set("client_secret", g.cfg.FacebookAppSecret)
		params.Set("fb_exchange_token", token)
	}

	var resp transfer.GraphTokenResponse
	if err := g.get(ctx, "oauth/access_token", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *graphClient) ListAccounts(ctx context.Context, token string) ([]*transfer.GraphAccount, error) {
	params := url.Values{}
	params.Set("access_token", token)
	params.Set("fields", "id,name,access_token,category,tasks")

	var resp struct {
		Data []*transfer.GraphAccount `json:"data"`
	}
	if err := g.get(ctx, "me/accounts", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (g *graphClient) ListPosts(ctx context.Context, accountID, token string) ([]*transfer.GraphPost, error) {
	params := url.Values{}
	params.Set("access_token", token)
	params.Set("fields", "id,message,created_time,full_picture,likes.summary(true),shares,comments.summary(true)")

	var resp struct {
		Data []*transfer.GraphPost `json:"data"`
	}
	if err := g.get(ctx, fmt.Sprintf("%s/posts", accountID), params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (g *graphClient) ListComments(ctx context.Context, postID, token string) ([]*transfer.GraphComment, error) {
	params := url.Values{}
	params.Set("access_token", token)
	params.Set("fields", "id,message,created_time,from{id,name,picture{url}},like_count")

	var resp struct {
		Data []*transfer.GraphComment `json:"data"`
	}
	if err := g.get(ctx, fmt.Sprintf("%s/comments", postID), params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (g *graphClient) CreatePost(ctx context.Context, accountID, token, message, mediaURL string) (*transfer.GraphPost, error) {
	payload := map[string]interface{}{
		"message": message,
	}
	if mediaURL != "" {
		payload["link"] = mediaURL
	}

	var created transfer.GraphPost
	if err := g.post(ctx, fmt.Sprintf("%s/feed", accountID), token, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *graphClient) CreateComment(ctx context.Context, postID, token, message string) (*transfer.GraphComment, error) {
	payload := map[string]interface{}{
		"message": message,
	}

	var created transfer.GraphComment
	if err := g.post(ctx, fmt.Sprintf("%s/comments", postID), token, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *graphClient) HideComment(ctx context.Context, commentID, token string) error {
	payload := map[string]interface{}{
		"is_hidden": true,
	}
	return g.post(ctx, commentID, token, payload, &struct{}{})
}

func (g *graphClient) DeleteComment(ctx context.Context, commentID, token string) error {
	params := url.Values{}
	params.Set("access_token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/%s?%s", g.baseURL, commentID, params.Encode()), nil)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return g.do(req, &struct{}{})
}

func (g *graphClient) ListConversations(ctx context.Context, accountID, token string) ([]*transfer.GraphConversation, error) {
	params := url.Values{}
	params.Set("access_token", token)
	params.Set("fields", "id,senders,messages{id,message,created_time,from}")

	var resp struct {
		Data []*transfer.GraphConversation `json:"data"`
	}
	if err := g.get(ctx, fmt.Sprintf("%s/conversations", accountID), params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (g *graphClient) SendMessage(ctx context.Context, accountID, token, recipientID, text string) (*transfer.GraphMessage, error) {
	payload := map[string]interface{}{
		"recipient": map[string]string{"id": recipientID},
		"message":   map[string]string{"text": text},
	}

	var sent transfer.GraphMessage
	if err := g.post(ctx, fmt.Sprintf("%s/messages", accountID), token, payload, &sent); err != nil {
		return nil, err
	}
	return &sent, nil
}

func (g *graphClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s?%s", g.baseURL, path, params.Encode()), nil)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return g.do(req, out)
}

func (g *graphClient) post(ctx context.Context, path, token string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	params := url.Values{}
	params.Set("access_token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s?%s", g.baseURL, path, params.Encode()), bytes.NewReader(body))
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return g.do(req, out)
}

func (g *graphClient) do(req *http.Request, out interface{}) error {
	resp, err := g.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return &GraphError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeGraphError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to decode graph response: %w", err)
	}

	return nil
}

func decodeGraphError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var graphErr transfer.GraphErrorResponse
	if err := json.Unmarshal(body, &graphErr); err == nil && graphErr.Error.Message != "" {
		return &GraphError{
			StatusCode: resp.StatusCode,
			Code:       graphErr.Error.Code,
			Message:    graphErr.Error.Message,
		}
	}

	return &GraphError{
		StatusCode: resp.StatusCode,
		Message:    string(body),
	}
}
