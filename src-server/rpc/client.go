package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventdesk/src-server/model"
)

// Client calls a remote event backend. It satisfies the sources of both
// event views.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// WithHTTPClient replaces the underlying http.Client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.client = hc
	return c
}

func (c *Client) call(ctx context.Context, method string, req Request, out interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("(*Client).call: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("(*Client).call: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	slog.Debug("rpc call", "method", method, "event_id", req.EventID)
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("(*Client).call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &Error{
			Method:  method,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(msg)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("(*Client).call: can't decode %s response: %w", method, err)
	}
	return nil
}

func (c *Client) GetSpeakers(ctx context.Context, eventID string) ([]model.EventSpeaker, error) {
	speakers := make([]model.EventSpeaker, 0)
	if err := c.call(ctx, MethodGetSpeakers, Request{EventID: eventID}, &speakers); err != nil {
		return nil, err
	}
	return speakers, nil
}

func (c *Client) GetAttendees(ctx context.Context, eventID string) ([]model.EventAttendee, error) {
	attendees := make([]model.EventAttendee, 0)
	if err := c.call(ctx, MethodGetAttendees, Request{EventID: eventID}, &attendees); err != nil {
		return nil, err
	}
	return attendees, nil
}

func (c *Client) GetLocationDetails(ctx context.Context, eventID string) (*model.Event, error) {
	event := new(model.Event)
	if err := c.call(ctx, MethodGetLocationDetails, Request{EventID: eventID}, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (c *Client) UpcomingEvents(ctx context.Context) ([]model.Event, error) {
	events := make([]model.Event, 0)
	if err := c.call(ctx, MethodUpcomingEvents, Request{}, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) GetUserProfile(ctx context.Context, userID string) (*model.User, error) {
	user := new(model.User)
	if err := c.call(ctx, MethodGetUserProfile, Request{UserID: userID}, user); err != nil {
		return nil, err
	}
	return user, nil
}
