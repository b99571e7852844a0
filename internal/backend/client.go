// Package backend is the REST client the feed uses to reach the posts backend.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/furluv/furluv/internal/model"
	"resty.dev/v3"
)

const (
	postsPath      = "/posts"
	postPath       = "/posts/{id}"
	petOwnerPath   = "/petowners/{id}"
	defaultTimeout = 10 * time.Second
)

// Error is returned for every non-2xx answer of the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

func IsNotFound(err error) bool {
	var backendErr *Error
	return errors.As(err, &backendErr) && backendErr.Status == http.StatusNotFound
}

type ClientConfig struct {
	BaseURL           string
	Timeout           time.Duration
	TransportSettings *resty.TransportSettings
}

var DefaultTransportSettings = &resty.TransportSettings{
	DialerTimeout:         2 * time.Second,
	DialerKeepAlive:       30 * time.Second,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   2 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ResponseHeaderTimeout: 5 * time.Second,
}

type Client struct {
	client *resty.Client
}

func NewClient(config ClientConfig) *Client {
	settings := config.TransportSettings
	if settings == nil {
		settings = DefaultTransportSettings
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.NewWithTransportSettings(settings).
		SetBaseURL(config.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetResponseBodyUnlimitedReads(true).
		AddContentTypeEncoder("json", encodeJSON).
		AddContentTypeDecoder("json", decodeJSON)

	return &Client{
		client: client,
	}
}

func encodeJSON(w io.Writer, v any) error {
	return sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

func decodeJSON(r io.Reader, v any) error {
	return sonic.ConfigDefault.NewDecoder(r).Decode(v)
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}

type postPayload struct {
	Id          int64   `json:"id"`
	Content     string  `json:"content"`
	Image       *string `json:"image"`
	ImageUrl    *string `json:"imageUrl"`
	CreatorName *string `json:"creatorName"`
}

func (p postPayload) toPost() model.Post {
	return model.Post{
		Id:          p.Id,
		Content:     p.Content,
		ImageUrl:    model.ResolvedImage(p.Image, p.ImageUrl),
		CreatorName: p.CreatorName,
	}
}

func (c *Client) GetPosts(ctx context.Context) ([]model.Post, error) {
	res, err := c.r(ctx).
		SetResult(&[]postPayload{}).
		Get(postsPath)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, responseError(res)
	}

	payload := *res.Result().(*[]postPayload)

	posts := make([]model.Post, 0, len(payload))
	for _, p := range payload {
		posts = append(posts, p.toPost())
	}

	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, request model.PostCreateRequest) (model.Post, error) {
	res, err := c.r(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&postPayload{}).
		Post(postsPath)
	if err != nil {
		return model.Post{}, err
	}
	if res.IsError() {
		return model.Post{}, responseError(res)
	}

	return res.Result().(*postPayload).toPost(), nil
}

func (c *Client) DeletePost(ctx context.Context, postId int64) error {
	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatInt(postId, 10)).
		Delete(postPath)
	if err != nil {
		return err
	}
	if res.IsError() {
		return responseError(res)
	}

	return nil
}

func (c *Client) GetPetOwner(ctx context.Context, ownerId int64) (model.PetOwnerResponse, error) {
	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatInt(ownerId, 10)).
		SetResult(&model.PetOwnerResponse{}).
		Get(petOwnerPath)
	if err != nil {
		return model.PetOwnerResponse{}, err
	}
	if res.IsError() {
		return model.PetOwnerResponse{}, responseError(res)
	}

	return *res.Result().(*model.PetOwnerResponse), nil
}

// responseError pulls the message out of either the {"error":{...}} body this
// service answers with or {"message":"..."}; anything else is used verbatim.
func responseError(res *resty.Response) error {
	body := res.String()

	var wrapped struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}

	message := body
	if sonic.UnmarshalString(body, &wrapped) == nil {
		if wrapped.Error.Message != "" {
			message = wrapped.Error.Message
		} else if wrapped.Message != "" {
			message = wrapped.Message
		}
	}

	if message == "" {
		message = http.StatusText(res.StatusCode())
	}

	return &Error{Status: res.StatusCode(), Message: message}
}
