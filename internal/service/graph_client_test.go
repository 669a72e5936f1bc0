package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/maheshrc27/socialdash/configs"
	"github.com/maheshrc27/socialdash/internal/models"
	"github.com/stretchr/testify/assert"
)

func newTestGraphClient(handler http.Handler) (GraphClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	cfg := config.Config{
		GraphAPIBaseURL:    srv.URL,
		FacebookAppID:      "fb-app",
		FacebookAppSecret:  "fb-secret",
		InstagramAppID:     "ig-app",
		InstagramAppSecret: "ig-secret",
	}
	return NewGraphClient(cfg), srv
}

func TestWhoAmI(t *testing.T) {
	gc, srv := newTestGraphClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("access_token"))
		assert.Equal(t, "id,name", r.URL.Query().Get("fields"))
		json.NewEncoder(w).Encode(map[string]string{"id": "99", "name": "My Page"})
	}))
	defer srv.Close()

	identity, err := gc.WhoAmI(context.Background(), "tok")
	assert.NoError(t, err)
	assert.Equal(t, "99", identity.ID)
	assert.Equal(t, "My Page", identity.Name)
}

func TestWhoAmI_GraphError(t *testing.T) {
	gc, srv := newTestGraphClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"message": "Error validating access token",
				"type":    "OAuthException",
				"code":    190,
			},
		})
	}))
	defer srv.Close()

	_, err := gc.WhoAmI(context.Background(), "bad")

	var graphErr *GraphError
	assert.True(t, errors.As(err, &graphErr))
	assert.Equal(t, http.StatusUnauthorized, graphErr.StatusCode)
	assert.Equal(t, 190, graphErr.Code)
	assert.Equal(t, "Error validating access token", graphErr.Message)
}

func TestExchangeToken_PlatformParams(t *testing.T) {
	var query map[string]string
	gc, srv := newTestGraphClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/access_token", r.URL.Path)
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "long-lived",
			"token_type":   "bearer",
			"expires_in":   5184000,
		})
	}))
	defer srv.Close()

	resp, err := gc.ExchangeToken(context.Background(), models.PlatformFacebook, "short")
	assert.NoError(t, err)
	assert.Equal(t, "long-lived", resp.AccessToken)
	assert.Equal(t, int64(5184000), resp.ExpiresIn)
	assert.Equal(t, "fb_exchange_token", query["grant_type"])
	assert.Equal(t, "fb-app", query["client_id"])
	assert.Equal(t, "short", query["fb_exchange_token"])

	_, err = gc.ExchangeToken(context.Background(), models.PlatformInstagram, "short")
	assert.NoError(t, err)
	assert.Equal(t, "ig_exchange_token", query["grant_type"])
	assert.Equal(t, "ig-app", query["client_id"])
	assert.Equal(t, "short", query["ig_exchange_token"])
}

func TestListPosts_DataEnvelope(t *testing.T) {
	gc, srv := newTestGraphClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/page1/posts", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": "p1", "message": "first"},
				{"id": "p2", "message": "second"},
			},
			"paging": map[string]interface{}{"next": "https://example.com/ignored"},
		})
	}))
	defer srv.Close()

	posts, err := gc.ListPosts(context.Background(), "page1", "tok")
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "second", posts[1].Message)
}

func TestListComments(t *testing.T) {
	gc, srv := newTestGraphClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/p1/comments", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("fields"), "from{id,name,picture{url}}")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": "c1", "message": "hi", "like_count": 2},
			},
		})
	}))
	defer srv.Close()

	comments, err := gc.ListComments(context.Background(), "p1", "tok")
	assert.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Equal(t, 2, comments[0].LikeCount)
}

func TestCreateComment_PostsPayload(t *testing.T) {
	gc, srv := newTestGraphClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/p1/comments", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("access_token"))

		var payload map[string]interface{}
		json.NewDecoder(r.Body).Decode(&payload)
		assert.Equal(t, "well said", payload["message"])

		json.NewEncoder(w).Encode(map[string]string{"id": "c9"})
	}))
	defer srv.Close()

	comment, err := gc.CreateComment(context.Background(), "p1", "tok", "well said")
	assert.NoError(t, err)
	assert.Equal(t, "c9", comment.ID)
}

func TestDeleteComment(t *testing.T) {
	gc, srv := newTestGraphClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/c1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer srv.Close()

	err := gc.DeleteComment(context.Background(), "c1", "tok")
	assert.NoError(t, err)
}

func TestGraphError_NonJSONBody(t *testing.T) {
	gc, srv := newTestGraphClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	_, err := gc.WhoAmI(context.Background(), "tok")

	var graphErr *GraphError
	assert.True(t, errors.As(err, &graphErr))
	assert.Equal(t, http.StatusBadGateway, graphErr.StatusCode)
	assert.Contains(t, graphErr.Message, "upstream unavailable")
}
