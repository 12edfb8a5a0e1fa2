package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client resolves names by calling the user-identity microservice.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds an HTTP resolver against baseURL. The timeout bounds the
// whole batch call; on expiry the request fails as unavailable.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type namesRequest struct {
	UUIDs []string `json:"uuids"`
}

type namesResponse struct {
	Success bool              `json:"success"`
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Content map[string]string `json:"content"`
}

func (c *Client) ResolveNames(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	body, err := json.Marshal(namesRequest{UUIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to encode name lookup request: %w", err)
	}

	url := fmt.Sprintf("%s/users/names", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build name lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: name lookup returned %d", ErrUnavailable, resp.StatusCode)
	}

	var out namesResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if out.Content == nil {
		return map[string]string{}, nil
	}
	return out.Content, nil
}
