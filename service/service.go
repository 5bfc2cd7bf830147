// Package service exposes the MediaConvert facade over HTTP.
//
//	POST /jobs                     create a job
//	GET  /jobs?status=S&limit=N    list jobs in status S
//	GET  /jobs/{id}                fetch one job
//	GET  /jobs/{id}/submission     what was submitted for a job
//	GET  /health                   provider health
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/cbsinteractive/mediaconvert-hls/av"
	"github.com/cbsinteractive/mediaconvert-hls/db"
	"github.com/cbsinteractive/mediaconvert-hls/provider"
	"github.com/cbsinteractive/mediaconvert-hls/provider/mediaconvert"
	"github.com/cbsinteractive/mediaconvert-hls/service/exceptions"
	"github.com/sirupsen/logrus"
	"github.com/zsiec/pkg/tracing"
)

const defaultListLimit = 20

var ErrProvider = errors.New("provider error")
var ErrStorage = errors.New("storage error")

// Store records submissions. *db.Client implements it.
type Store interface {
	Put(*db.Submission) error
	Get(id string) (*db.Submission, error)
}

type Server struct {
	Provider provider.Provider

	// DB is optional; without it submissions are not recorded.
	DB Store

	// Input and Output are the locations jobs read from and write to, used
	// only to record submissions.
	Input, Output av.Location

	Logger      *logrus.Logger
	ErrReporter exceptions.Reporter

	// Tracer wraps each provider call in a subsegment. Defaults to a no-op.
	Tracer tracing.Tracer

	request
}

func (s Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if s.ErrReporter == nil {
		s.ErrReporter = &exceptions.NoopReporter{}
	}
	if s.Tracer == nil {
		s.Tracer = tracing.NoopTracer{}
	}
	s.request = newRequest(s.Logger, rw, r)
	defer s.request.finalize()
	s.serve()
}

func (s *Server) serve() bool {
	switch s.chop() {
	case "jobs":
		id := s.chop()
		if id == "" {
			switch s.method() {
			case http.MethodPost:
				return s.createJob()
			case http.MethodGet:
				return s.listJobs()
			}
			return s.writeerror("method not allowed", http.StatusMethodNotAllowed, nil)
		}
		if s.method() != http.MethodGet {
			return s.writeerror("method not allowed", http.StatusMethodNotAllowed, nil)
		}
		switch s.chop() {
		case "":
			return s.getJob(id)
		case "submission":
			return s.getSubmission(id)
		}
	case "health":
		return s.health()
	}
	return s.writeerror("bad request path", http.StatusNotFound, nil)
}

func (s *Server) createJob() bool {
	var job av.Job
	if !s.request.readJSON(&job) {
		return s.writeerror("bad job request", http.StatusBadRequest, s.err)
	}
	if job.Orientation == 0 {
		return s.writeerror("orientation is required", http.StatusBadRequest, nil)
	}

	out, err := s.createJobTraced(job)
	if err != nil {
		return s.providerError("create job failed", err)
	}
	if out.Job != nil && out.Job.Id != nil {
		s.record(job, *out.Job.Id)
	}
	return s.writebody(out)
}

func (s *Server) getJob(id string) bool {
	out, err := s.jobTraced(id)
	if err != nil {
		return s.providerError("get job failed", err)
	}
	return s.writebody(out)
}

func (s *Server) listJobs() bool {
	q := s.request.r.URL.Query()
	status, err := av.ParseJobStatus(q.Get("status"))
	if err != nil {
		return s.writeerror("bad status", http.StatusBadRequest, err)
	}
	limit := int64(defaultListLimit)
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.ParseInt(v, 10, 64)
		if err != nil || limit < 1 {
			return s.writeerror("bad limit", http.StatusBadRequest, err)
		}
	}

	out, err := s.jobsTraced(status, limit)
	if err != nil {
		return s.providerError("list jobs failed", err)
	}
	return s.writebody(out)
}

func (s *Server) createJobTraced(job av.Job) (out *mc.CreateJobOutput, err error) {
	defer s.trace("mediaconvert-create-job", &err)()
	return s.Provider.Create(s.ctx, job)
}

func (s *Server) jobTraced(id string) (out *mc.GetJobOutput, err error) {
	defer s.trace("mediaconvert-get-job", &err)()
	return s.Provider.Job(s.ctx, id)
}

func (s *Server) jobsTraced(status av.JobStatus, limit int64) (out *mc.ListJobsOutput, err error) {
	defer s.trace("mediaconvert-list-jobs", &err)()
	return s.Provider.Jobs(s.ctx, status, limit)
}

// trace opens a subsegment named name. The returned func closes it with
// whatever *err holds by then.
func (s *Server) trace(name string, err *error) func() {
	seg := s.Tracer.BeginSubsegment(s.ctx, name)
	return func() {
		if err == nil {
			seg.Close(nil)
		} else {
			seg.Close(*err)
		}
	}
}

func (s *Server) getSubmission(id string) bool {
	if s.DB == nil {
		return s.writeerror("submission log disabled", http.StatusServiceUnavailable, nil)
	}
	sub, err := s.DB.Get(id)
	if errors.Is(err, db.ErrJobNotFound) {
		return s.writeerror("submission not found", http.StatusNotFound, err)
	}
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrStorage, err)
		s.ErrReporter.ReportException(err)
		return s.writeerror("get submission failed", http.StatusInternalServerError, err)
	}
	return s.writebody(sub)
}

func (s *Server) health() bool {
	d := provider.Describe(s.ctx, s.Provider)
	if !d.Health.OK {
		s.code = http.StatusServiceUnavailable
		s.w.Header().Set("Content-Type", "application/json")
		s.w.WriteHeader(s.code)
	}
	return s.writebody(d)
}

// record logs the submission. A failure here does not fail the request;
// the job already exists in MediaConvert.
func (s *Server) record(job av.Job, id string) {
	if s.DB == nil {
		return
	}
	err := s.DB.Put(&db.Submission{
		JobID:        id,
		FileName:     job.FileName,
		Orientation:  job.Orientation.String(),
		ExcludeAudio: job.ExcludeAudio,
		Input:        job.Input(s.Input),
		Output:       job.Output(s.Output),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrStorage, err)
		s.log.WithError(err).WithField("job", id).Error("recording submission")
		s.ErrReporter.ReportException(err)
	}
}

func (s *Server) providerError(msg string, err error) bool {
	switch {
	case mediaconvert.IsNotFound(err):
		return s.writeerror(msg, http.StatusNotFound, err)
	case mediaconvert.IsBadRequest(err):
		return s.writeerror(msg, http.StatusBadRequest, err)
	}
	s.ErrReporter.ReportException(fmt.Errorf("%w: %v", ErrProvider, err))
	return s.writeerror(msg, http.StatusBadGateway, err)
}

func (s *Server) method() string {
	return s.request.r.Method
}

// PlatformError implements a well-known error response for http clients
// encountering an error when using the service.
type PlatformError struct {
	Ok     bool   `json:"ok"`
	Status int    `json:"status"`
	Rid    uint64 `json:"rid"`
	Msg    string `json:"msg,omitempty"`
	Err    string `json:"err,omitempty"`
}

// String returns the json-formatted platform response
func (p PlatformError) String() string {
	data, _ := json.Marshal(p)
	return string(data)
}
