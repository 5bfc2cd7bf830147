// Package client talks to the mediaconvert-hls HTTP service.
package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/cbsinteractive/mediaconvert-hls/av"
	"github.com/cbsinteractive/mediaconvert-hls/db"
)

// Client exposes methods for interacting with the service
type Client interface {
	CreateJob(ctx context.Context, job av.Job) (*mc.CreateJobOutput, error)
	GetJob(ctx context.Context, id string) (*mc.GetJobOutput, error)
	ListJobs(ctx context.Context, status av.JobStatus, limit int64) (*mc.ListJobsOutput, error)
	Submission(ctx context.Context, id string) (*db.Submission, error)
}

const (
	defaultTimeout = 30 * time.Second
	defaultBaseURL = "http://localhost:8080"
)

type DefaultClient struct {
	BaseURL *url.URL
	Client  *http.Client
}

// CreateJob submits a new ladder job
func (c *DefaultClient) CreateJob(ctx context.Context, job av.Job) (*mc.CreateJobOutput, error) {
	c.ensure()

	var resp mc.CreateJobOutput
	if err := c.postResource(ctx, job, &resp, "/jobs"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetJob returns details about a single job
func (c *DefaultClient) GetJob(ctx context.Context, id string) (*mc.GetJobOutput, error) {
	c.ensure()

	var resp mc.GetJobOutput
	if err := c.getResource(ctx, &resp, "/jobs/"+url.PathEscape(id)); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListJobs returns at most limit jobs in the given status
func (c *DefaultClient) ListJobs(ctx context.Context, status av.JobStatus, limit int64) (*mc.ListJobsOutput, error) {
	c.ensure()

	q := url.Values{}
	q.Set("status", string(status))
	q.Set("limit", strconv.FormatInt(limit, 10))

	var resp mc.ListJobsOutput
	if err := c.getResource(ctx, &resp, "/jobs?"+q.Encode()); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Submission returns what was submitted for a job
func (c *DefaultClient) Submission(ctx context.Context, id string) (*db.Submission, error) {
	c.ensure()

	var resp db.Submission
	if err := c.getResource(ctx, &resp, "/jobs/"+url.PathEscape(id)+"/submission"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *DefaultClient) ensure() {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: defaultTimeout}
	}

	if c.BaseURL == nil {
		c.BaseURL = urlMust(url.Parse(defaultBaseURL))
	}
}

func urlMust(u *url.URL, _ error) *url.URL { return u }
