// Package mediaconvert submits HLS ladder jobs to AWS Elemental MediaConvert.
//
// A Driver is built once at startup with New, which resolves the account's
// endpoint, and is then shared by every caller. Requests are assembled
// locally; queueing and job state belong to MediaConvert, whose responses
// and errors are returned unmodified.
package mediaconvert

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/awserr"
	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/cbsinteractive/mediaconvert-hls/av"
	"github.com/cbsinteractive/mediaconvert-hls/config"
	"github.com/pkg/errors"
)

const Name = "mediaconvert"

type mediaconvertClient interface {
	CreateJobRequest(*mc.CreateJobInput) mc.CreateJobRequest
	GetJobRequest(*mc.GetJobInput) mc.GetJobRequest
	ListJobsRequest(*mc.ListJobsInput) mc.ListJobsRequest
}

// Driver is safe for concurrent use; it holds no per-call state.
type Driver struct {
	client mediaconvertClient
	cfg    config.MediaConvert
}

func (p *Driver) Name() string { return Name }

// Create submits the ladder job for j under the configured role.
func (p *Driver) Create(ctx context.Context, j av.Job) (*mc.CreateJobOutput, error) {
	resp, err := p.client.CreateJobRequest(p.createRequest(j)).Send(ctx)
	if err != nil {
		return nil, err
	}
	return resp.CreateJobOutput, nil
}

// Job fetches one job by id. Unknown ids fail with a NotFoundException, see
// IsNotFound.
func (p *Driver) Job(ctx context.Context, id string) (*mc.GetJobOutput, error) {
	resp, err := p.client.GetJobRequest(&mc.GetJobInput{
		Id: aws.String(id),
	}).Send(ctx)
	if err != nil {
		return nil, err
	}
	return resp.GetJobOutput, nil
}

// Jobs lists at most limit jobs in the given status. Ordering and paging
// are MediaConvert's.
func (p *Driver) Jobs(ctx context.Context, status av.JobStatus, limit int64) (*mc.ListJobsOutput, error) {
	resp, err := p.client.ListJobsRequest(&mc.ListJobsInput{
		MaxResults: aws.Int64(limit),
		Status:     mc.JobStatus(status),
	}).Send(ctx)
	if err != nil {
		return nil, err
	}
	return resp.ListJobsOutput, nil
}

func (p *Driver) Healthcheck(ctx context.Context) error {
	_, err := p.client.ListJobsRequest(&mc.ListJobsInput{
		MaxResults: aws.Int64(1),
	}).Send(ctx)
	return err
}

// IsNotFound reports whether err is MediaConvert's NotFoundException.
func IsNotFound(err error) bool {
	return hasCode(err, mc.ErrCodeNotFoundException)
}

// IsBadRequest reports whether MediaConvert rejected the request itself,
// e.g. a MaxResults above its limit.
func IsBadRequest(err error) bool {
	return hasCode(err, mc.ErrCodeBadRequestException)
}

func hasCode(err error, code string) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && aerr.Code() == code
}
