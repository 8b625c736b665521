package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sharath018/food-donation-backend/config"
	"github.com/sharath018/food-donation-backend/internal/donation"
	"github.com/sharath018/food-donation-backend/internal/request"
)

// Client talks to the donation platform API, which is the system of
// record for requests and donations. The in-process store only mirrors
// what the platform confirms.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.PlatformBaseURL,
		token:   cfg.PlatformToken,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build platform request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("platform request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return request.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("platform returned %d: %s", resp.StatusCode, string(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode platform response: %w", err)
		}
	}
	return nil
}

// wirePayload is the platform's shape for create/update submissions.
type wirePayload struct {
	Title              string             `json:"title"`
	RequestType        string             `json:"requestType"`
	NumberOfPeople     int                `json:"numberOfPeople"`
	PreferredFoodTypes []string           `json:"preferredFoodTypes"`
	AdditionalNotes    string             `json:"additionalNotes"`
	DeliveryNeeded     bool               `json:"deliveryNeeded"`
	Visibility         request.Visibility `json:"visibility"`
	RequestByDateTime  string             `json:"requestByDateTime"`
}

func toWire(p *request.Payload) wirePayload {
	return wirePayload{
		Title:              p.Title,
		RequestType:        string(p.RequestType),
		NumberOfPeople:     p.NumberOfPeople,
		PreferredFoodTypes: p.PreferredFoodTypes,
		AdditionalNotes:    p.AdditionalNotes,
		DeliveryNeeded:     p.DeliveryNeeded,
		Visibility:         p.Visibility,
		RequestByDateTime:  p.RequestByDateTime.UTC().Format(time.RFC3339),
	}
}

func (c *Client) FetchRequests(ctx context.Context, orgID string) ([]*request.Request, error) {
	var requests []*request.Request
	if err := c.do(ctx, http.MethodGet, "/organisations/"+orgID+"/requests", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *Client) SubmitCreate(ctx context.Context, orgID string, p *request.Payload) (*request.Request, error) {
	var created request.Request
	if err := c.do(ctx, http.MethodPost, "/organisations/"+orgID+"/requests", toWire(p), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) SubmitUpdate(ctx context.Context, id string, p *request.Payload) (*request.Request, error) {
	var updated request.Request
	if err := c.do(ctx, http.MethodPut, "/requests/"+id, toWire(p), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) SubmitDelete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/requests/"+id, nil, nil)
}

func (c *Client) SubmitStatus(ctx context.Context, id string, st request.Status) (*request.Request, error) {
	var updated request.Request
	if err := c.do(ctx, http.MethodPatch, "/requests/"+id+"/status", map[string]request.Status{"status": st}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) FetchDonations(ctx context.Context, requestID string) ([]donation.Donation, error) {
	var donations []donation.Donation
	if err := c.do(ctx, http.MethodGet, "/requests/"+requestID+"/donations", nil, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}
