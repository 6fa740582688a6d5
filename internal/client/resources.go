package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domainauth "github.com/tubebridge/tubebridge-api/internal/domain/auth"
	"github.com/tubebridge/tubebridge-api/internal/domain/model"
)

// UploadsPage is the list envelope returned by the uploads endpoints.
type UploadsPage struct {
	Data  []*model.Upload `json:"data"`
	Total int             `json:"total"`
}

// ListUploadsParams filters the uploads listing.
type ListUploadsParams struct {
	Limit  int
	Offset int
	Q      string
	Status string
}

// ListUploads returns a page of uploads, newest first.
func (c *Client) ListUploads(ctx context.Context, params ListUploadsParams) (*UploadsPage, error) {
	q := url.Values{}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.Q != "" {
		q.Set("q", params.Q)
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}

	path := "/api/uploads"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page UploadsPage
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUpload retrieves a single upload.
func (c *Client) GetUpload(ctx context.Context, id int64) (*model.Upload, error) {
	var upload model.Upload
	if err := c.get(ctx, fmt.Sprintf("/api/uploads/%d", id), &upload); err != nil {
		return nil, err
	}
	return &upload, nil
}

// ApproveUpload marks an upload as approved.
func (c *Client) ApproveUpload(ctx context.Context, id int64) (*model.Upload, error) {
	var upload model.Upload
	if err := c.post(ctx, fmt.Sprintf("/api/uploads/%d/approve", id), nil, &upload); err != nil {
		return nil, err
	}
	return &upload, nil
}

// RejectUpload marks an upload as rejected with reviewer feedback.
func (c *Client) RejectUpload(ctx context.Context, id int64, feedback string) (*model.Upload, error) {
	body := map[string]string{"feedback": feedback}
	var upload model.Upload
	if err := c.post(ctx, fmt.Sprintf("/api/uploads/%d/reject", id), body, &upload); err != nil {
		return nil, err
	}
	return &upload, nil
}

// DeleteUpload removes an upload.
func (c *Client) DeleteUpload(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/uploads/%d", id))
}

// ListManagers returns a page of content managers.
func (c *Client) ListManagers(ctx context.Context, limit, offset int) ([]*model.Manager, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}

	path := "/api/managers"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var managers []*model.Manager
	if err := c.get(ctx, path, &managers); err != nil {
		return nil, err
	}
	return managers, nil
}

// CreateManager registers a new content manager.
func (c *Client) CreateManager(ctx context.Context, req *model.CreateManagerRequest) (*model.Manager, error) {
	var manager model.Manager
	if err := c.post(ctx, "/api/managers", req, &manager); err != nil {
		return nil, err
	}
	return &manager, nil
}

// UpdateManager applies changes to a content manager.
func (c *Client) UpdateManager(ctx context.Context, id string, req model.UpdateManagerRequest) (*model.Manager, error) {
	var manager model.Manager
	if err := c.patch(ctx, "/api/managers/"+url.PathEscape(id), req, &manager); err != nil {
		return nil, err
	}
	return &manager, nil
}

// DeleteManager removes a content manager.
func (c *Client) DeleteManager(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/managers/"+url.PathEscape(id))
}

// ListActivityParams filters the activity feed.
type ListActivityParams struct {
	Limit    int
	Offset   int
	UploadID int64
	Action   string
}

// ListActivity returns a page of activity entries, newest first.
func (c *Client) ListActivity(ctx context.Context, params ListActivityParams) ([]*model.ActivityEntry, error) {
	q := url.Values{}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.UploadID > 0 {
		q.Set("upload_id", strconv.FormatInt(params.UploadID, 10))
	}
	if params.Action != "" {
		q.Set("action", params.Action)
	}

	path := "/api/activity"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var entries []*model.ActivityEntry
	if err := c.get(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Me returns the session behind the current bearer token.
func (c *Client) Me(ctx context.Context) (*domainauth.Session, error) {
	var sess domainauth.Session
	if err := c.get(ctx, "/api/me", &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Health reports whether the service is up.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/healthz", nil)
}
