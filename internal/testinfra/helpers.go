package testinfra

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/furluv/furluv/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TruncateAllTables resets ids too so tests can rely on them.
func TruncateAllTables(t *testing.T, db *pgxpool.Pool, ctx context.Context) {
	t.Helper()

	tables := []string{
		"pet_listings",
		"pets",
		"posts",
		"pet_owners",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

func CreateJSONRequest(method, url string, jsonBody []byte) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func CreateAuthRequest(method, url string, jsonBody []byte, token string) *http.Request {
	req := CreateJSONRequest(method, url, jsonBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// CreateMultipartFormData builds an upload body with one file field.
func CreateMultipartFormData(t *testing.T, fieldName, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)

	_, err = part.Write(fileData)
	require.NoError(t, err)

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func MustJSON(t *testing.T, v any) []byte {
	t.Helper()

	data, err := sonic.Marshal(v)
	require.NoError(t, err)

	return data
}

// DecodeJSON reads the whole body into result and closes it.
func DecodeJSON(t *testing.T, resp *http.Response, result any) {
	t.Helper()
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NotEmpty(t, body, "response body should not be empty")

	err = sonic.Unmarshal(body, result)
	require.NoError(t, err, "failed to parse JSON response: %s", body)
}

// ErrorBody is the {"error": {...}} shape every failure answers with.
type ErrorBody struct {
	Error model.ValidationError `json:"error"`
}

// RegisterAndLogin creates a pet owner and returns its id with a fresh token.
// It spends two requests of the authentication rate limit.
func (testApp *TestApp) RegisterAndLogin(t *testing.T, firstName, lastName, email string) (int64, string) {
	t.Helper()

	const password = "secret123"

	resp, err := testApp.App.Test(CreateJSONRequest(http.MethodPost, "/api/petowners", MustJSON(t, model.PetOwnerRegisterRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	})), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = testApp.App.Test(CreateJSONRequest(http.MethodPost, "/api/petowners/login", MustJSON(t, model.PetOwnerLoginRequest{
		Email:    email,
		Password: password,
	})), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login model.PetOwnerLoginResponse
	DecodeJSON(t, resp, &login)
	require.NotEmpty(t, login.Token.AccessToken)

	return login.Owner.Id, login.Token.AccessToken
}
