package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pastebin/internal/client/models"
	"github.com/dmitrijs2005/pastebin/internal/common"
	"github.com/dmitrijs2005/pastebin/internal/logging"
	"github.com/google/uuid"
)

// publicColumns is the projection used for anonymous reads. Content is
// included so a public paste can be rendered without a session.
const publicColumns = "id,title,content,description,created_at,language,is_public,author,mime_type,storage_path"

// RESTClient talks to the backend's REST surface: stored procedures are
// POSTed to /rest/v1/rpc/<name>, anonymous reads go through the filtered
// collection endpoint /rest/v1/pastes.
type RESTClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     logging.Logger
}

func NewRESTClient(baseURL, apiKey string, timeout time.Duration, log logging.Logger) (*RESTClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid backend url %q", common.ErrConfig, baseURL)
	}
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "gateway"),
	}, nil
}

// errorBody is the JSON error shape returned by the backend.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (c *RESTClient) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, "", err
	}
	requestID := uuid.NewString()
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, requestID, nil
}

// do executes the request and maps the response onto the error taxonomy:
// transport failures and 5xx become ErrUnavailable, auth failures become
// ErrUnauthorized, 404 becomes ErrNotFound, everything else in 4xx becomes
// ErrRejected. None of these are retried.
func (c *RESTClient) do(ctx context.Context, req *http.Request, requestID string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		c.log.Warn(ctx, "server error", "request_id", requestID, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", common.ErrUnavailable, resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		c.log.Warn(ctx, "request rejected", "request_id", requestID, "status", resp.StatusCode, "message", eb.Message)

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", common.ErrUnauthorized, eb.Message)
		case http.StatusNotFound:
			return common.ErrNotFound
		default:
			return fmt.Errorf("%w: %s", common.ErrRejected, eb.Message)
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", common.ErrUnavailable, err)
	}
	return nil
}

// rpc invokes a stored procedure with a JSON payload.
func (c *RESTClient) rpc(ctx context.Context, proc string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", proc, err)
	}

	req, requestID, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/rest/v1/rpc/"+proc, bytes.NewReader(body))
	if err != nil {
		return err
	}
	return c.do(ctx, req, requestID, out)
}

// query performs a filtered read against the pastes collection.
func (c *RESTClient) query(ctx context.Context, params url.Values, out any) error {
	req, requestID, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/rest/v1/pastes?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(ctx, req, requestID, out)
}

func (c *RESTClient) VerifyLogin(ctx context.Context, username, digest string) (bool, error) {
	var ok bool
	err := c.rpc(ctx, "api_login", map[string]any{
		"p_username": username,
		"p_hash":     digest,
	}, &ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (c *RESTClient) GetMyPastes(ctx context.Context, username, digest string) ([]models.Paste, error) {
	var pastes []models.Paste
	err := c.rpc(ctx, "api_get_my_pastes", map[string]any{
		"p_username": username,
		"p_hash":     digest,
	}, &pastes)
	if err != nil {
		return nil, fmt.Errorf("fetching pastes: %w", err)
	}
	return pastes, nil
}

func (c *RESTClient) GetPublicPastes(ctx context.Context, limit int) ([]models.Paste, error) {
	params := url.Values{}
	params.Set("select", publicColumns)
	params.Set("is_public", "eq.true")
	params.Set("order", "created_at.desc")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var pastes []models.Paste
	if err := c.query(ctx, params, &pastes); err != nil {
		return nil, fmt.Errorf("fetching public pastes: %w", err)
	}
	return pastes, nil
}

func (c *RESTClient) GetPaste(ctx context.Context, username, digest, id string) (*models.Paste, error) {
	// The procedure is set-returning; an empty set means not found or not
	// visible, and the two are indistinguishable on purpose.
	var pastes []models.Paste
	err := c.rpc(ctx, "api_get_paste", map[string]any{
		"p_username": username,
		"p_hash":     digest,
		"p_paste_id": id,
	}, &pastes)
	if err != nil {
		return nil, fmt.Errorf("fetching paste: %w", err)
	}
	if len(pastes) == 0 {
		return nil, common.ErrNotFound
	}
	return &pastes[0], nil
}

func (c *RESTClient) GetPublicPaste(ctx context.Context, id string) (*models.Paste, error) {
	params := url.Values{}
	params.Set("select", publicColumns)
	params.Set("is_public", "eq.true")
	params.Set("id", "eq."+id)
	params.Set("limit", "1")

	var pastes []models.Paste
	if err := c.query(ctx, params, &pastes); err != nil {
		return nil, fmt.Errorf("fetching paste: %w", err)
	}
	if len(pastes) == 0 {
		return nil, common.ErrNotFound
	}
	return &pastes[0], nil
}

func (c *RESTClient) CreatePaste(ctx context.Context, username, digest string, req models.CreateRequest) (string, error) {
	payload := map[string]any{
		"p_username":    username,
		"p_hash":        digest,
		"p_content":     req.Content,
		"p_language":    req.Language,
		"p_title":       nullable(req.Title),
		"p_description": nullable(req.Description),
		"p_is_public":   req.IsPublic,
	}
	if req.StoragePath != "" {
		payload["p_mime_type"] = req.MimeType
		payload["p_storage_path"] = req.StoragePath
	}

	var id string
	if err := c.rpc(ctx, "api_create_paste", payload, &id); err != nil {
		return "", fmt.Errorf("creating paste: %w", err)
	}
	return id, nil
}

func (c *RESTClient) DeletePaste(ctx context.Context, username, digest, id string) error {
	err := c.rpc(ctx, "api_delete_paste", map[string]any{
		"p_username": username,
		"p_hash":     digest,
		"p_paste_id": id,
	}, nil)
	if err != nil {
		return fmt.Errorf("deleting paste: %w", err)
	}
	return nil
}

func (c *RESTClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// nullable maps the empty string onto JSON null, matching the optional
// procedure arguments.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
