package route_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/testinfra"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesIntegration(t *testing.T) {
	infra := testinfra.Start(t)

	newApp := func(t *testing.T) *testinfra.TestApp {
		testApp := testinfra.SetupTestApp(t, infra)
		testApp.Reset(t)
		return testApp
	}

	do := func(t *testing.T, testApp *testinfra.TestApp, req *http.Request) *http.Response {
		t.Helper()
		resp, err := testApp.App.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	t.Run("health and metrics", func(t *testing.T) {
		testApp := newApp(t)

		resp := do(t, testApp, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, "/api/nowhere", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("pet owner lifecycle", func(t *testing.T) {
		testApp := newApp(t)

		ownerId, token := testApp.RegisterAndLogin(t, "Ada", "Lovelace", "ada@example.com")

		resp := do(t, testApp, testinfra.CreateJSONRequest(http.MethodPost, "/api/petowners", testinfra.MustJSON(t, model.PetOwnerRegisterRequest{
			FirstName: "Ada",
			LastName:  "Again",
			Email:     "ADA@example.com",
			Password:  "secret123",
		})))
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		var conflict testinfra.ErrorBody
		testinfra.DecodeJSON(t, resp, &conflict)
		assert.Equal(t, constant.ERR_CONFLICT_ERROR, conflict.Error.Code)
		assert.Equal(t, "email", conflict.Error.Param)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodGet, "/api/petowners/me", nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var me model.PetOwnerResponse
		testinfra.DecodeJSON(t, resp, &me)
		assert.Equal(t, ownerId, me.Id)
		assert.Equal(t, "ada@example.com", me.Email)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodPut, fmt.Sprintf("/api/petowners/%d", ownerId), testinfra.MustJSON(t, model.PetOwnerUpdateRequest{
			FirstName: "Augusta",
			LastName:  "King",
		}), token))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodPut, fmt.Sprintf("/api/petowners/%d", ownerId+1), testinfra.MustJSON(t, model.PetOwnerUpdateRequest{
			FirstName: "Someone",
			LastName:  "Else",
		}), token))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, "/api/petowners?name=augusta", nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var owners []model.PetOwnerResponse
		testinfra.DecodeJSON(t, resp, &owners)
		require.Len(t, owners, 1)
		assert.Equal(t, "King", owners[0].LastName)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, "/api/petowners/999", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodPost, "/api/petowners/logout", nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodGet, "/api/petowners/me", nil, token))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("login rejects wrong password", func(t *testing.T) {
		testApp := newApp(t)
		testApp.RegisterAndLogin(t, "Ada", "Lovelace", "ada@example.com")

		resp := do(t, testApp, testinfra.CreateJSONRequest(http.MethodPost, "/api/petowners/login", testinfra.MustJSON(t, model.PetOwnerLoginRequest{
			Email:    "ada@example.com",
			Password: "wrong-password",
		})))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body testinfra.ErrorBody
		testinfra.DecodeJSON(t, resp, &body)
		assert.Equal(t, "password", body.Error.Param)
	})

	t.Run("posts crud", func(t *testing.T) {
		testApp := newApp(t)

		resp := do(t, testApp, testinfra.CreateJSONRequest(http.MethodPost, "/api/posts", []byte(`{"content":"  Walk at noon  ","image":"http://img/1.webp"}`)))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var created model.PostResponse
		testinfra.DecodeJSON(t, resp, &created)
		assert.Equal(t, "Walk at noon", created.Content)
		assert.Equal(t, "http://img/1.webp", *created.ImageUrl)
		assert.Equal(t, "http://img/1.webp", *created.Image)

		resp = do(t, testApp, testinfra.CreateJSONRequest(http.MethodPost, "/api/posts", []byte(`{"content":"   "}`)))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp = do(t, testApp, testinfra.CreateJSONRequest(http.MethodPut, fmt.Sprintf("/api/posts/%d", created.Id), []byte(`{"content":"Walk at one"}`)))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var updated model.PostResponse
		testinfra.DecodeJSON(t, resp, &updated)
		assert.Equal(t, "Walk at one", updated.Content)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var posts []model.PostResponse
		testinfra.DecodeJSON(t, resp, &posts)
		require.Len(t, posts, 1)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, "/api/posts/abc", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp = do(t, testApp, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/posts/%d", created.Id), nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/posts/%d", created.Id), nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("pet listings crud and search", func(t *testing.T) {
		testApp := newApp(t)

		resp := do(t, testApp, testinfra.CreateJSONRequest(http.MethodPost, "/api/pet-listings", []byte(`{"petName":"Biscuit","breed":"Beagle","age":2}`)))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var biscuit model.PetListingResponse
		testinfra.DecodeJSON(t, resp, &biscuit)
		assert.Equal(t, constant.LISTING_STATUS_AVAILABLE, biscuit.Status)

		resp = do(t, testApp, testinfra.CreateJSONRequest(http.MethodPost, "/api/pet-listings", []byte(`{"petName":"Milo","breed":"Tabby","age":-1}`)))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp = do(t, testApp, testinfra.CreateJSONRequest(http.MethodPost, "/api/pet-listings", []byte(`{"petName":"Milo","breed":"Tabby","age":4}`)))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, "/api/pet-listings?q=beag", nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var found []model.PetListingResponse
		testinfra.DecodeJSON(t, resp, &found)
		require.Len(t, found, 1)
		assert.Equal(t, biscuit.Id, found[0].Id)

		resp = do(t, testApp, testinfra.CreateJSONRequest(http.MethodPut, fmt.Sprintf("/api/pet-listings/%d", biscuit.Id), []byte(`{"petName":"Biscuit","breed":"Beagle","age":3,"status":"Adopted"}`)))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var updated model.PetListingResponse
		testinfra.DecodeJSON(t, resp, &updated)
		assert.Equal(t, "Adopted", updated.Status)
		assert.Equal(t, 3, updated.Age)

		resp = do(t, testApp, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/pet-listings/%d", biscuit.Id), nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, testApp, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/pet-listings/%d", biscuit.Id), nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("pet profiles", func(t *testing.T) {
		testApp := newApp(t)

		resp := do(t, testApp, testinfra.CreateJSONRequest(http.MethodPost, "/api/pets", []byte(`{"name":"Rex","type":"Dog","breed":"Corgi","age":3,"bio":"Loves fetch","documents":"vaccination.pdf","image":"http://img/rex.webp"}`)))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var rex model.PetResponse
		testinfra.DecodeJSON(t, resp, &rex)
		assert.NotZero(t, rex.Id)
		require.NotNil(t, rex.ImageUrl)
		assert.Equal(t, "http://img/rex.webp", *rex.ImageUrl)
		assert.Equal(t, rex.ImageUrl, rex.Image)

		resp = do(t, testApp, testinfra.CreateJSONRequest(http.MethodPost, "/api/pets", []byte(`{"type":"Cat"}`)))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var errBody testinfra.ErrorBody
		testinfra.DecodeJSON(t, resp, &errBody)
		assert.Equal(t, "name", errBody.Error.Param)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, "/api/pets", nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var pets []model.PetResponse
		testinfra.DecodeJSON(t, resp, &pets)
		require.Len(t, pets, 1)
		assert.Equal(t, "Rex", pets[0].Name)

		resp = do(t, testApp, testinfra.CreateJSONRequest(http.MethodPut, fmt.Sprintf("/api/pets/%d", rex.Id), []byte(`{"name":"Rex","type":"Dog","breed":"Corgi","age":4}`)))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var updated model.PetResponse
		testinfra.DecodeJSON(t, resp, &updated)
		require.NotNil(t, updated.Age)
		assert.Equal(t, 4, *updated.Age)
		assert.Nil(t, updated.Bio)
		require.NotNil(t, updated.ImageUrl, "image is kept when the update has none")
		assert.Equal(t, "http://img/rex.webp", *updated.ImageUrl)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/pets/%d", rex.Id), nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, "/api/pets/9999", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = do(t, testApp, testinfra.CreateJSONRequest(http.MethodPut, "/api/pets/9999", []byte(`{"name":"Ghost"}`)))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, "/api/pets/abc", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("image upload requires a file", func(t *testing.T) {
		testApp := newApp(t)

		body, contentType := testinfra.CreateMultipartFormData(t, "other", "a.txt", []byte("hello"))
		req := httptest.NewRequest(http.MethodPost, "/api/images/upload", body)
		req.Header.Set("Content-Type", contentType)

		resp := do(t, testApp, req)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var errBody testinfra.ErrorBody
		testinfra.DecodeJSON(t, resp, &errBody)
		assert.Equal(t, "file", errBody.Error.Param)
	})

	t.Run("feed requires authentication", func(t *testing.T) {
		testApp := newApp(t)

		resp := do(t, testApp, httptest.NewRequest(http.MethodGet, "/api/feed", nil))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("feed end to end", func(t *testing.T) {
		testApp := newApp(t)
		_, token := testApp.RegisterAndLogin(t, "Ada", "Lovelace", "ada@example.com")

		resp := do(t, testApp, testinfra.CreateJSONRequest(http.MethodPost, "/api/posts", []byte(`{"content":"From elsewhere"}`)))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var external model.PostResponse
		testinfra.DecodeJSON(t, resp, &external)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodPost, "/api/feed/refresh", nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var feed model.FeedResponse
		testinfra.DecodeJSON(t, resp, &feed)
		require.Len(t, feed.Posts, 1)
		assert.Equal(t, external.Id, feed.Posts[0].Id)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodPost, "/api/feed/posts", []byte(`{"content":"Mine"}`), token))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		testinfra.DecodeJSON(t, resp, &feed)
		require.Len(t, feed.Posts, 2)
		mine := feed.Posts[0]
		assert.False(t, mine.Pending)
		assert.Equal(t, "Ada Lovelace", *mine.CreatorName)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodPost, fmt.Sprintf("/api/feed/posts/%d/like", mine.Id), nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		testinfra.DecodeJSON(t, resp, &feed)
		assert.True(t, feed.Changed)
		assert.True(t, feed.Posts[0].Liked)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodPost, fmt.Sprintf("/api/feed/posts/%d/comments", mine.Id), []byte(`{"text":"Good dog"}`), token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var commented model.FeedCommentResponse
		testinfra.DecodeJSON(t, resp, &commented)
		require.NotZero(t, commented.CommentId)
		require.Len(t, commented.Feed.Posts[0].Comments, 1)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodPost, fmt.Sprintf("/api/feed/posts/%d/comments/%d/reactions", mine.Id, commented.CommentId), []byte(`{"reaction":"❤️"}`), token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		testinfra.DecodeJSON(t, resp, &feed)
		assert.Equal(t, 1, feed.Posts[0].Comments[0].Reactions["❤️"])

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodPost, "/api/feed/refresh", nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		testinfra.DecodeJSON(t, resp, &feed)
		require.Len(t, feed.Posts, 2)
		assert.True(t, feed.Posts[0].Liked)
		require.Len(t, feed.Posts[0].Comments, 1)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodDelete, fmt.Sprintf("/api/feed/posts/%d", external.Id), nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		testinfra.DecodeJSON(t, resp, &feed)
		require.Len(t, feed.Posts, 1)
		assert.Equal(t, mine.Id, feed.Posts[0].Id)

		resp = do(t, testApp, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/posts/%d", external.Id), nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodGet, "/api/feed/reactions", nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var reactions fiber.Map
		testinfra.DecodeJSON(t, resp, &reactions)
		assert.Len(t, reactions["reactions"], len(constant.DefaultReactions))

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodDelete, "/api/feed", nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, testApp, testinfra.CreateAuthRequest(http.MethodGet, "/api/feed", nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		testinfra.DecodeJSON(t, resp, &feed)
		assert.Empty(t, feed.Posts)
	})
}
