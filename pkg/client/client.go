// Package client is a small SDK for the SnapVault API. It drives the
// client-side half of the upload protocol: request a presigned URL, PUT the
// bytes straight to object storage, then notify the backend to persist
// metadata.
package client

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Phase is the client-visible state of an upload attempt.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseRequestingURL Phase = "requesting_url"
	PhaseUploading     Phase = "uploading"
	PhaseNotifying     Phase = "notifying"
	PhaseDone          Phase = "done"
	PhaseFailed        Phase = "failed"
)

// APIError carries the backend's status code and message body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// MediaItem mirrors the API's media projection.
type MediaItem struct {
	ID               int64     `json:"id"`
	FileName         string    `json:"file_name"`
	OriginalFilename string    `json:"original_filename,omitempty"`
	URL              string    `json:"url"`
	Likes            int64     `json:"likes"`
	CreatedAt        time.Time `json:"created_at"`
	Mimetype         string    `json:"mimetype"`
	CreatedBy        string    `json:"created_by"`
	LikedByUser      bool      `json:"likedByUser"`
	Deletable        bool      `json:"deletable"`
}

// Pagination mirrors the API's page metadata.
type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// GalleryPage is one page of gallery results. Empty on a 204 answer.
type GalleryPage struct {
	Data       []MediaItem `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// LikeResult mirrors the toggle-like response.
type LikeResult struct {
	Message      string `json:"message"`
	Action       string `json:"action"`
	NewLikeCount int64  `json:"newLikeCount"`
}

type messageBody struct {
	Message string `json:"message"`
}

type tokenBody struct {
	Token string `json:"token"`
}

type uploadURLBody struct {
	URL string `json:"url"`
}

// Client talks to one SnapVault backend. Not safe for concurrent use while
// logging in; everything else is.
type Client struct {
	http  *resty.Client
	token string

	// OnPhase, when set, observes upload phase transitions.
	OnPhase func(Phase)
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().SetBaseURL(baseURL),
	}
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetError(&messageBody{}).
		Post("/users/register")
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

// Login authenticates and stores the bearer token for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var body tokenBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&body).
		SetError(&messageBody{}).
		Post("/users/login")
	if err != nil {
		return err
	}
	if err := checkResponse(resp); err != nil {
		return err
	}
	c.token = body.Token
	return nil
}

// Gallery fetches one page. A 204 answer returns an empty page and no error.
func (c *Client) Gallery(ctx context.Context, page, limit int, user, search string) (GalleryPage, error) {
	var result GalleryPage
	req := c.authed().
		SetContext(ctx).
		SetQueryParam("page", fmt.Sprintf("%d", page)).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetResult(&result).
		SetError(&messageBody{})
	if user != "" {
		req.SetQueryParam("user", user)
	}
	if search != "" {
		req.SetQueryParam("search", search)
	}
	resp, err := req.Get("/media")
	if err != nil {
		return GalleryPage{}, err
	}
	if resp.StatusCode() == http.StatusNoContent {
		return GalleryPage{}, nil
	}
	if err := checkResponse(resp); err != nil {
		return GalleryPage{}, err
	}
	return result, nil
}

// Get fetches a single media item.
func (c *Client) Get(ctx context.Context, id int64) (MediaItem, error) {
	var item MediaItem
	resp, err := c.authed().
		SetContext(ctx).
		SetResult(&item).
		SetError(&messageBody{}).
		Get(fmt.Sprintf("/media/%d", id))
	if err != nil {
		return MediaItem{}, err
	}
	if err := checkResponse(resp); err != nil {
		return MediaItem{}, err
	}
	return item, nil
}

// ToggleLike likes or unlikes a media item. Action is "like" or "unlike".
func (c *Client) ToggleLike(ctx context.Context, id int64, action string) (LikeResult, error) {
	var result LikeResult
	resp, err := c.authed().
		SetContext(ctx).
		SetBody(map[string]string{"action": action}).
		SetResult(&result).
		SetError(&messageBody{}).
		Post(fmt.Sprintf("/media/%d/toggle-like", id))
	if err != nil {
		return LikeResult{}, err
	}
	if err := checkResponse(resp); err != nil {
		return LikeResult{}, err
	}
	return result, nil
}

// Delete removes a media item the caller owns.
func (c *Client) Delete(ctx context.Context, id int64) error {
	resp, err := c.authed().
		SetContext(ctx).
		SetError(&messageBody{}).
		Delete(fmt.Sprintf("/media/%d", id))
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

// Upload walks the full protocol for one attempt. Any failed step is terminal:
// no retry, no rollback. The storage key is a fresh random identifier, so
// concurrent uploads never collide.
func (c *Client) Upload(ctx context.Context, data []byte, mimeType, originalFilename string) (MediaItem, error) {
	key := uuid.New().String() + path.Ext(originalFilename)

	c.phase(PhaseRequestingURL)
	var urlBody uploadURLBody
	resp, err := c.authed().
		SetContext(ctx).
		SetBody(map[string]string{"fileName": key, "mimeType": mimeType}).
		SetResult(&urlBody).
		SetError(&messageBody{}).
		Post("/media/upload-url")
	if err != nil {
		c.phase(PhaseFailed)
		return MediaItem{}, err
	}
	if err := checkResponse(resp); err != nil {
		c.phase(PhaseFailed)
		return MediaItem{}, err
	}

	// Direct PUT to object storage. Content-Type must match what was
	// presigned or the store rejects the signature.
	c.phase(PhaseUploading)
	putResp, err := resty.New().R().
		SetContext(ctx).
		SetHeader("Content-Type", mimeType).
		SetBody(data).
		Put(urlBody.URL)
	if err != nil {
		c.phase(PhaseFailed)
		return MediaItem{}, err
	}
	if putResp.IsError() {
		c.phase(PhaseFailed)
		return MediaItem{}, &APIError{StatusCode: putResp.StatusCode(), Message: "storage rejected upload"}
	}

	c.phase(PhaseNotifying)
	var item MediaItem
	resp, err = c.authed().
		SetContext(ctx).
		SetBody(map[string]string{
			"fileName":         key,
			"mimeType":         mimeType,
			"originalFilename": originalFilename,
		}).
		SetResult(&item).
		SetError(&messageBody{}).
		Post("/media/notify-upload")
	if err != nil {
		c.phase(PhaseFailed)
		return MediaItem{}, err
	}
	if err := checkResponse(resp); err != nil {
		c.phase(PhaseFailed)
		return MediaItem{}, err
	}

	c.phase(PhaseDone)
	return item, nil
}

func (c *Client) authed() *resty.Request {
	req := c.http.R()
	if c.token != "" {
		req.SetHeader("Authorization", "Bearer "+c.token)
	}
	return req
}

func (c *Client) phase(p Phase) {
	if c.OnPhase != nil {
		c.OnPhase(p)
	}
}

func checkResponse(resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}
	message := ""
	if body, ok := resp.Error().(*messageBody); ok && body != nil {
		message = body.Message
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: message}
}
