// Package googletasks implements service.Service on the Google Tasks API.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todo/internal/config"
	"todo/internal/log"
	"todo/internal/service"
)

const (
	// DefaultListID addresses the account's default list.
	DefaultListID = "@default"

	// APITimeout bounds each API call.
	APITimeout = 5 * time.Second
)

// errStopPaging ends a Pages walk early.
var errStopPaging = errors.New("stop paging")

// Client talks to Google Tasks.
type Client struct {
	svc *tasks.Service
}

// New builds a client from the OAuth client and token stored in cfg.Dir.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if !cfg.HasOAuthClient() {
		return nil, &service.AuthError{Msg: fmt.Sprintf("%s not found in %s", config.OAuthClientFile, cfg.Dir)}
	}
	if !cfg.HasToken() {
		return nil, &service.AuthError{Msg: "not logged in (run: todo login)"}
	}

	oauthConfig, err := LoadOAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}
	return NewWithHTTPClient(ctx, oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token)))
}

// NewWithHTTPClient builds a client on httpClient. Tests pass option.WithEndpoint.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	svc, err := tasks.NewService(ctx, append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// do runs fn under APITimeout and maps its error for display.
func do(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()
	return wrapError(fn(ctx))
}

// ListLists returns all task lists, the default one first.
func (c *Client) ListLists(ctx context.Context) ([]service.TaskList, error) {
	var result []service.TaskList
	err := do(ctx, func(ctx context.Context) error {
		def, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
		if err != nil {
			return err
		}
		result = append(result, service.TaskList{ID: def.Id, Title: def.Title, IsDefault: true})

		return c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
			for _, l := range resp.Items {
				if l.Id != def.Id {
					result = append(result, service.TaskList{ID: l.Id, Title: l.Title})
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DefaultList returns the account's default list.
func (c *Client) DefaultList(ctx context.Context) (service.TaskList, error) {
	var list service.TaskList
	err := do(ctx, func(ctx context.Context) error {
		l, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
		if err != nil {
			return err
		}
		list = service.TaskList{ID: DefaultListID, Title: l.Title, IsDefault: true}
		return nil
	})
	return list, err
}

// ResolveList finds a list by title, ignoring case and surrounding space.
func (c *Client) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	name = strings.TrimSpace(name)

	var matches []service.TaskList
	err := do(ctx, func(ctx context.Context) error {
		return c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
			for _, l := range resp.Items {
				if strings.EqualFold(strings.TrimSpace(l.Title), name) {
					matches = append(matches, service.TaskList{ID: l.Id, Title: l.Title})
				}
			}
			return nil
		})
	})
	if err != nil {
		return service.TaskList{}, err
	}

	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) == 0 {
		return service.TaskList{}, fmt.Errorf("list not found: %s", name)
	}
	return service.TaskList{}, fmt.Errorf("ambiguous list name: %s", name)
}

// ListOpenTasks returns page (1-based) of the open tasks of a list.
func (c *Client) ListOpenTasks(ctx context.Context, listID string, page int) ([]service.Task, error) {
	var result []service.Task
	err := do(ctx, func(ctx context.Context) error {
		current := 0
		err := c.svc.Tasks.List(listID).
			MaxResults(service.PageSize).
			ShowCompleted(false).
			ShowDeleted(false).
			ShowHidden(false).
			Pages(ctx, func(resp *tasks.Tasks) error {
				current++
				if current < page {
					return nil
				}
				for _, t := range resp.Items {
					result = append(result, service.Task{ID: t.Id, Title: t.Title, Status: t.Status})
				}
				return errStopPaging
			})
		if errors.Is(err, errStopPaging) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("googletasks: list %s page %d: %d open tasks", listID, page, len(result))
	return result, nil
}

// CreateTask inserts an open task at the top of the list.
func (c *Client) CreateTask(ctx context.Context, listID, title string) (service.Task, error) {
	var created service.Task
	err := do(ctx, func(ctx context.Context) error {
		t, err := c.svc.Tasks.Insert(listID, &tasks.Task{Title: title}).Context(ctx).Do()
		if err != nil {
			return err
		}
		created = service.Task{ID: t.Id, Title: t.Title, Status: t.Status}
		return nil
	})
	return created, err
}

// CompleteTask sets a task's status to completed.
func (c *Client) CompleteTask(ctx context.Context, listID, taskID string) error {
	return do(ctx, func(ctx context.Context) error {
		_, err := c.svc.Tasks.Patch(listID, taskID, &tasks.Task{Status: service.StatusCompleted}).Context(ctx).Do()
		return err
	})
}

// wrapError turns transport and HTTP errors into short messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case errors.Is(err, context.DeadlineExceeded), strings.Contains(msg, "context deadline exceeded"):
		return errors.New("request timed out")
	case strings.Contains(msg, "401"), strings.Contains(msg, "403"):
		return errors.New("token expired or revoked (run: todo login)")
	case strings.Contains(msg, "404"):
		return errors.New("not found")
	}
	return err
}
