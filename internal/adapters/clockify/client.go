// Package clockify reads time entries from the Clockify REST API.
package clockify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/clockify-timesheet/internal/domain"
	"github.com/bnema/clockify-timesheet/internal/ports"
)

const (
	apiKeyHeader       = "X-Api-Key"
	maxResponseBytes   = 8 << 20
	defaultPageSize    = 200
	defaultMaxPages    = 100
	defaultTimeout     = 30 * time.Second
	descriptionTaskKey = "description:"
	timestampLayout    = "2006-01-02T15:04:05Z"
)

var (
	ErrUnauthorized = errors.New("clockify rejected the api key")
	ErrTooManyPages = errors.New("clockify pagination exceeded the page limit")
)

// APIError is a non-2xx Clockify response other than an auth failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("clockify api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("clockify api: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL     string
	APIKey      string
	WorkspaceID string
	UserID      string
	// ProjectID narrows entries to one project and enables task name lookup.
	ProjectID string
	// Location decides where a month starts and ends.
	Location       *time.Location
	PageSize       int
	MaxPages       int
	UserAgent      string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.EntrySource = (*Client)(nil)

// Entries returns the finished entries of month in ascending start order.
func (c *Client) Entries(ctx context.Context, month domain.Month) ([]domain.RawEntry, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	taskNames := map[string]string{}
	if c.ProjectID != "" {
		tasks, err := c.Tasks(ctx)
		if err != nil {
			return nil, err
		}
		for _, task := range tasks {
			taskNames[task.ID] = task.Name
		}
	}

	start, end := month.Range(c.Location)
	query := url.Values{}
	query.Set("start", start.UTC().Format(timestampLayout))
	query.Set("end", end.UTC().Format(timestampLayout))
	if c.ProjectID != "" {
		query.Set("project", c.ProjectID)
	}

	path := fmt.Sprintf("workspaces/%s/user/%s/time-entries", url.PathEscape(c.WorkspaceID), url.PathEscape(c.UserID))
	payloads, err := fetchAll[timeEntryPayload](ctx, c, path, query)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}

	entries := make([]domain.RawEntry, 0, len(payloads))
	for _, payload := range payloads {
		if payload.TimeInterval.End == nil {
			continue
		}
		// Timers stopped within the same second carry no time.
		if !payload.TimeInterval.Start.Before(*payload.TimeInterval.End) {
			continue
		}
		entries = append(entries, toRawEntry(payload, taskNames))
	}

	// Clockify lists newest first.
	slices.Reverse(entries)

	return entries, nil
}

type Task struct {
	ID   string
	Name string
}

func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if c.ProjectID == "" {
		return nil, errors.New("project id is required to list tasks")
	}

	path := fmt.Sprintf("workspaces/%s/projects/%s/tasks", url.PathEscape(c.WorkspaceID), url.PathEscape(c.ProjectID))
	payloads, err := fetchAll[taskPayload](ctx, c, path, url.Values{})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]Task, 0, len(payloads))
	for _, payload := range payloads {
		tasks = append(tasks, Task{ID: payload.ID, Name: payload.Name})
	}
	return tasks, nil
}

func toRawEntry(payload timeEntryPayload, taskNames map[string]string) domain.RawEntry {
	description := strings.TrimSpace(payload.Description)

	taskID := ""
	if payload.TaskID != nil {
		taskID = strings.TrimSpace(*payload.TaskID)
	}

	entry := domain.RawEntry{
		Start: payload.TimeInterval.Start,
		End:   *payload.TimeInterval.End,
	}

	switch {
	case taskID == "":
		entry.TaskID = domain.TaskID(descriptionTaskKey + description)
		entry.Label = description
	case taskNames[taskID] != "":
		entry.TaskID = domain.TaskID(taskID)
		entry.Label = taskNames[taskID]
	default:
		entry.TaskID = domain.TaskID(taskID)
		entry.Label = description
		if entry.Label == "" {
			entry.Label = taskID
		}
	}

	return entry
}

func fetchAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	var all []T
	for page := 1; ; page++ {
		if page > maxPages {
			return nil, fmt.Errorf("%w (%d pages of %d)", ErrTooManyPages, maxPages, pageSize)
		}

		pageQuery := url.Values{}
		for key, values := range query {
			pageQuery[key] = values
		}
		pageQuery.Set("page", strconv.Itoa(page))
		pageQuery.Set("page-size", strconv.Itoa(pageSize))

		var batch []T
		if err := c.getJSON(ctx, path, pageQuery, &batch); err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		all = append(all, batch...)
		if len(batch) < pageSize {
			return all, nil
		}
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint, err := buildAPIURL(c.BaseURL, path, query)
	if err != nil {
		return err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.APIKey)
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := errorMessage(body)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: status %d: %s", ErrUnauthorized, resp.StatusCode, message)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("api key is required")
	}
	if c.WorkspaceID == "" {
		return errors.New("workspace id is required")
	}
	if c.UserID == "" {
		return errors.New("user id is required")
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return context.WithTimeout(ctx, timeout)
}

func errorMessage(body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}

func buildAPIURL(baseURL string, path string, query url.Values) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	// Resolve relative to the base path so /api/v1 is kept.
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	endpoint, err := parsed.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	endpoint.RawQuery = query.Encode()

	return endpoint.String(), nil
}
