package service

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/awserr"
	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/cbsinteractive/mediaconvert-hls/av"
	"github.com/cbsinteractive/mediaconvert-hls/db"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/zsiec/pkg/tracing"
)

type fakeProvider struct {
	created    []av.Job
	jobID      string
	listStatus av.JobStatus
	listLimit  int64
	err        error
	healthErr  error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Create(_ context.Context, j av.Job) (*mc.CreateJobOutput, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.created = append(p.created, j)
	return &mc.CreateJobOutput{Job: &mc.Job{Id: aws.String("mc-1"), Status: mc.JobStatusSubmitted}}, nil
}

func (p *fakeProvider) Job(_ context.Context, id string) (*mc.GetJobOutput, error) {
	p.jobID = id
	if p.err != nil {
		return nil, p.err
	}
	return &mc.GetJobOutput{Job: &mc.Job{Id: aws.String(id), Status: mc.JobStatusComplete}}, nil
}

func (p *fakeProvider) Jobs(_ context.Context, status av.JobStatus, limit int64) (*mc.ListJobsOutput, error) {
	p.listStatus, p.listLimit = status, limit
	if p.err != nil {
		return nil, p.err
	}
	return &mc.ListJobsOutput{Jobs: []mc.Job{{Id: aws.String("a")}}}, nil
}

func (p *fakeProvider) Healthcheck(context.Context) error { return p.healthErr }

type fakeStore map[string]*db.Submission

func (f fakeStore) Put(s *db.Submission) error {
	f[s.JobID] = s
	return nil
}

func (f fakeStore) Get(id string) (*db.Submission, error) {
	s, ok := f[id]
	if !ok {
		return nil, db.ErrJobNotFound
	}
	return s, nil
}

type fakeReporter struct{ errs []error }

func (r *fakeReporter) ReportException(err error) { r.errs = append(r.errs, err) }

type fakeSegment struct {
	name   string
	closed bool
	err    error
}

func (s *fakeSegment) Close(err error) { s.closed, s.err = true, err }

type fakeTracer struct {
	tracing.NoopTracer
	segs []*fakeSegment
}

func (t *fakeTracer) BeginSubsegment(_ context.Context, name string) interface{ Close(error) } {
	seg := &fakeSegment{name: name}
	t.segs = append(t.segs, seg)
	return seg
}

func newTestServer(p *fakeProvider, store Store) (*Server, *fakeReporter) {
	logger := logrus.New()
	logger.Out = ioutil.Discard
	rep := &fakeReporter{}
	return &Server{
		Provider:    p,
		DB:          store,
		Input:       av.Location{Bucket: "s3://in", Path: "uploads"},
		Output:      av.Location{Bucket: "s3://out", Path: "hls"},
		Logger:      logger,
		ErrReporter: rep,
	}, rep
}

func do(s http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestCreateJob(t *testing.T) {
	p := &fakeProvider{}
	store := fakeStore{}
	s, _ := newTestServer(p, store)

	rec := do(s, http.MethodPost, "/jobs", `{"fileName":"clip.mp4","orientation":"HORIZONTAL","excludeAudio":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, expected 200: %s", rec.Code, rec.Body)
	}

	want := []av.Job{{FileName: "clip.mp4", Orientation: av.Horizontal}}
	if diff := cmp.Diff(want, p.created); diff != "" {
		t.Errorf("created jobs mismatch (-want +got):\n%s", diff)
	}

	var out mc.CreateJobOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if g, e := aws.StringValue(out.Job.Id), "mc-1"; g != e {
		t.Errorf("job id: got %q, expected %q", g, e)
	}

	sub := store["mc-1"]
	if sub == nil {
		t.Fatal("submission was not recorded")
	}
	if g, e := sub.Input, "s3://in/uploads/clip.mp4"; g != e {
		t.Errorf("submission input: got %q, expected %q", g, e)
	}
	if g, e := sub.Output, "s3://out/hls/clip"; g != e {
		t.Errorf("submission output: got %q, expected %q", g, e)
	}
	if g, e := sub.Orientation, "HORIZONTAL"; g != e {
		t.Errorf("submission orientation: got %q, expected %q", g, e)
	}
}

func TestCreateJobBadRequest(t *testing.T) {
	for _, body := range []string{
		`not json`,
		`{"fileName":"clip.mp4","orientation":"diagonal"}`,
		`{"fileName":"clip.mp4"}`,
	} {
		p := &fakeProvider{}
		s, _ := newTestServer(p, nil)
		rec := do(s, http.MethodPost, "/jobs", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: got status %d, expected 400", body, rec.Code)
		}
		if len(p.created) != 0 {
			t.Errorf("body %s: provider should not have been called", body)
		}
	}
}

func TestGetJob(t *testing.T) {
	p := &fakeProvider{}
	s, _ := newTestServer(p, nil)

	rec := do(s, http.MethodGet, "/jobs/1600000000000-abc", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, expected 200: %s", rec.Code, rec.Body)
	}
	if g, e := p.jobID, "1600000000000-abc"; g != e {
		t.Errorf("requested id: got %q, expected %q", g, e)
	}
}

func TestGetJobNotFound(t *testing.T) {
	p := &fakeProvider{err: awserr.New(mc.ErrCodeNotFoundException, "The specified job was not found", nil)}
	s, rep := newTestServer(p, nil)

	rec := do(s, http.MethodGet, "/jobs/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, expected 404", rec.Code)
	}
	var perr PlatformError
	if err := json.Unmarshal(rec.Body.Bytes(), &perr); err != nil {
		t.Fatal(err)
	}
	if perr.Ok || perr.Status != http.StatusNotFound {
		t.Errorf("unexpected error body %+v", perr)
	}
	if len(rep.errs) != 0 {
		t.Errorf("not found should not be reported, got %v", rep.errs)
	}
}

func TestProviderErrorIsReported(t *testing.T) {
	p := &fakeProvider{err: errors.New("throttled")}
	s, rep := newTestServer(p, nil)

	rec := do(s, http.MethodGet, "/jobs/abc", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("got status %d, expected 502", rec.Code)
	}
	if len(rep.errs) != 1 || !errors.Is(rep.errs[0], ErrProvider) {
		t.Fatalf("expected one ErrProvider report, got %v", rep.errs)
	}
}

func TestProviderBadRequest(t *testing.T) {
	p := &fakeProvider{err: awserr.New(mc.ErrCodeBadRequestException, "maxResults must be at most 20", nil)}
	s, rep := newTestServer(p, nil)

	rec := do(s, http.MethodGet, "/jobs?status=COMPLETE&limit=500", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, expected 400", rec.Code)
	}
	if len(rep.errs) != 0 {
		t.Errorf("a rejected request should not be reported, got %v", rep.errs)
	}
}

func TestListJobs(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantCode   int
		wantStatus av.JobStatus
		wantLimit  int64
	}{
		{"status and limit", "/jobs?status=COMPLETE&limit=2", http.StatusOK, av.StatusComplete, 2},
		{"default limit", "/jobs?status=error", http.StatusOK, av.StatusError, defaultListLimit},
		{"missing status", "/jobs?limit=2", http.StatusBadRequest, "", 0},
		{"bad status", "/jobs?status=DONE", http.StatusBadRequest, "", 0},
		{"bad limit", "/jobs?status=COMPLETE&limit=two", http.StatusBadRequest, "", 0},
		{"zero limit", "/jobs?status=COMPLETE&limit=0", http.StatusBadRequest, "", 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{}
			s, _ := newTestServer(p, nil)
			rec := do(s, http.MethodGet, tt.target, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("got status %d, expected %d: %s", rec.Code, tt.wantCode, rec.Body)
			}
			if p.listStatus != tt.wantStatus || p.listLimit != tt.wantLimit {
				t.Errorf("Jobs called with (%q, %d), expected (%q, %d)",
					p.listStatus, p.listLimit, tt.wantStatus, tt.wantLimit)
			}
		})
	}
}

func TestGetSubmission(t *testing.T) {
	store := fakeStore{"mc-1": {JobID: "mc-1", FileName: "clip.mp4"}}
	s, _ := newTestServer(&fakeProvider{}, store)

	rec := do(s, http.MethodGet, "/jobs/mc-1/submission", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, expected 200", rec.Code)
	}
	var sub db.Submission
	if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
		t.Fatal(err)
	}
	if sub.FileName != "clip.mp4" {
		t.Errorf("got %+v", sub)
	}

	if rec := do(s, http.MethodGet, "/jobs/unknown/submission", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown submission: got status %d, expected 404", rec.Code)
	}

	s, _ = newTestServer(&fakeProvider{}, nil)
	if rec := do(s, http.MethodGet, "/jobs/mc-1/submission", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("disabled log: got status %d, expected 503", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(&fakeProvider{}, nil)
	if rec := do(s, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("healthy: got status %d, expected 200", rec.Code)
	}

	s, _ = newTestServer(&fakeProvider{healthErr: errors.New("down")}, nil)
	if rec := do(s, http.MethodGet, "/health", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy: got status %d, expected 503", rec.Code)
	}
}

func TestRouting(t *testing.T) {
	s, _ := newTestServer(&fakeProvider{}, nil)
	tests := []struct {
		method, target string
		want           int
	}{
		{http.MethodGet, "/nope", http.StatusNotFound},
		{http.MethodDelete, "/jobs/abc", http.StatusMethodNotAllowed},
		{http.MethodPut, "/jobs", http.StatusMethodNotAllowed},
		{http.MethodGet, "/jobs/abc/outputs", http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := do(s, tt.method, tt.target, ""); rec.Code != tt.want {
			t.Errorf("%s %s: got status %d, expected %d", tt.method, tt.target, rec.Code, tt.want)
		}
	}
}

func TestChop(t *testing.T) {
	tests := []struct {
		in, file, next string
	}{
		{"/jobs", "jobs", "/"},
		{"/jobs/abc", "jobs", "/abc"},
		{"/jobs/abc/submission", "jobs", "/abc/submission"},
		{"/", "", "/"},
	}
	for _, tt := range tests {
		file, next := chop(tt.in)
		if file != tt.file || next != tt.next {
			t.Errorf("chop(%q) = (%q, %q), expected (%q, %q)", tt.in, file, next, tt.file, tt.next)
		}
	}
}

func TestProviderCallsAreTraced(t *testing.T) {
	tests := []struct {
		method, target, body string
		err                  error
		wantSeg              string
	}{
		{http.MethodPost, "/jobs", `{"fileName":"a.mp4","orientation":"VERTICAL"}`, nil, "mediaconvert-create-job"},
		{http.MethodGet, "/jobs/abc", "", nil, "mediaconvert-get-job"},
		{http.MethodGet, "/jobs?status=COMPLETE", "", errors.New("throttled"), "mediaconvert-list-jobs"},
	}
	for _, tt := range tests {
		tr := &fakeTracer{}
		s, _ := newTestServer(&fakeProvider{err: tt.err}, nil)
		s.Tracer = tr
		do(s, tt.method, tt.target, tt.body)

		if len(tr.segs) != 1 {
			t.Fatalf("%s %s: got %d segments, expected 1", tt.method, tt.target, len(tr.segs))
		}
		seg := tr.segs[0]
		if seg.name != tt.wantSeg || !seg.closed {
			t.Errorf("%s %s: got segment %+v, expected a closed %q", tt.method, tt.target, seg, tt.wantSeg)
		}
		if seg.err != tt.err {
			t.Errorf("%s %s: segment closed with %v, expected %v", tt.method, tt.target, seg.err, tt.err)
		}
	}
}
