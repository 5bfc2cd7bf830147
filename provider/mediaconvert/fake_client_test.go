package mediaconvert

import (
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
)

type testMediaConvertClient struct {
	t *testing.T

	createJobCalledWith         *mc.CreateJobInput
	getJobCalledWith            *mc.GetJobInput
	listJobsCalledWith          *mc.ListJobsInput
	describeEndpointsCalledWith *mc.DescribeEndpointsInput

	jobReturnedByGetJob mc.Job
	jobsReturned        []mc.Job
	endpoints           []mc.Endpoint

	// err is returned by every call when set.
	err error
}

func (c *testMediaConvertClient) CreateJobRequest(input *mc.CreateJobInput) mc.CreateJobRequest {
	c.createJobCalledWith = input
	return mc.CreateJobRequest{
		Request: c.request(&mc.CreateJobOutput{
			Job: &mc.Job{
				Id:     aws.String("1600000000000-abc123"),
				Role:   input.Role,
				Status: mc.JobStatusSubmitted,
			},
		}),
	}
}

func (c *testMediaConvertClient) GetJobRequest(input *mc.GetJobInput) mc.GetJobRequest {
	c.getJobCalledWith = input
	job := c.jobReturnedByGetJob
	return mc.GetJobRequest{
		Request: c.request(&mc.GetJobOutput{Job: &job}),
	}
}

func (c *testMediaConvertClient) ListJobsRequest(input *mc.ListJobsInput) mc.ListJobsRequest {
	c.listJobsCalledWith = input
	return mc.ListJobsRequest{
		Request: c.request(&mc.ListJobsOutput{Jobs: c.jobsReturned}),
	}
}

func (c *testMediaConvertClient) DescribeEndpointsRequest(input *mc.DescribeEndpointsInput) mc.DescribeEndpointsRequest {
	c.describeEndpointsCalledWith = input
	return mc.DescribeEndpointsRequest{
		Request: c.request(&mc.DescribeEndpointsOutput{Endpoints: c.endpoints}),
	}
}

func (c *testMediaConvertClient) request(data interface{}) *aws.Request {
	return &aws.Request{
		HTTPRequest: &http.Request{},
		Retryer:     aws.NoOpRetryer{},
		Data:        data,
		Error:       c.err,
	}
}
