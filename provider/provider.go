package provider

import (
	"context"

	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/cbsinteractive/mediaconvert-hls/av"
)

// Provider knows how to submit and inspect jobs on a transcoding service.
// Responses are the service's own and are returned unmodified.
type Provider interface {
	Name() string

	Create(ctx context.Context, job av.Job) (*mc.CreateJobOutput, error)
	Job(ctx context.Context, id string) (*mc.GetJobOutput, error)
	Jobs(ctx context.Context, status av.JobStatus, limit int64) (*mc.ListJobsOutput, error)

	// Healthcheck should return nil if the provider is currently available
	// for transcoding videos, otherwise it should return an error
	// explaining what's going on.
	Healthcheck(ctx context.Context) error
}

// Description describes a provider and its current health state.
type Description struct {
	Name   string `json:"name"`
	Health Health `json:"health"`
}

// Health is the health state of a provider.
type Health struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Describe runs the provider's healthcheck and reports the result.
func Describe(ctx context.Context, p Provider) Description {
	d := Description{Name: p.Name(), Health: Health{OK: true}}
	if err := p.Healthcheck(ctx); err != nil {
		d.Health = Health{OK: false, Message: err.Error()}
	}
	return d
}
