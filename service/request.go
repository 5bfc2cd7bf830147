package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"math/rand"
	"net"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultMaxBodyLen = 1024 * 1024

func init() {
	rand.Seed(time.Now().UnixNano())
}

// request is always scoped to a single http request handled by the server
type request struct {
	file, path string

	ctx context.Context
	w   http.ResponseWriter
	r   *http.Request
	log *logrus.Entry

	body []byte

	start       time.Time
	rid         uint64 // random request id
	read, wrote int
	code        int
	ip, port    string
	err, logerr error
}

// newRequest initializes request scoped structures, context and counters.
// The caller defers finalize to log the outcome.
func newRequest(logger *logrus.Logger, w http.ResponseWriter, rq *http.Request) request {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	r := request{
		path:  rq.URL.Path,
		ctx:   rq.Context(),
		r:     rq,
		w:     w,
		start: time.Now(),
		rid:   rand.Uint64(),
		code:  http.StatusOK,
	}
	r.rid |= 1 << 63 // sacrifice one bit of entropy so they always have the same # digits
	r.ip = r.r.Header.Get("X-Forwarded-For")
	r.port = r.r.Header.Get("X-Forwarded-Port")
	if r.ip == "" {
		r.ip, r.port, _ = net.SplitHostPort(r.r.RemoteAddr)
	}
	r.log = logger.WithField("rid", r.rid)
	r.log.WithFields(logrus.Fields{
		"ip":     r.ip,
		"port":   r.port,
		"method": r.r.Method,
		"path":   r.r.URL.Path,
		"ref":    r.r.Referer(),
		"ua":     r.r.UserAgent(),
	}).Debug("request")
	return r
}

func (r *request) finalize() {
	if r.logerr == nil {
		r.logerr = r.err
	}
	entry := r.log.WithFields(logrus.Fields{
		"method": r.r.Method,
		"path":   r.r.URL.Path,
		"code":   r.code,
		"rx":     r.read,
		"tx":     r.wrote,
		"dur":    time.Since(r.start).String(),
	})
	if r.logerr != nil {
		entry.WithError(r.logerr).Warn("request failed")
		return
	}
	entry.Info("request")
}

func (s *request) ok() bool {
	return s.err == nil
}

// Body reads the request body at most once and
// returns it.
func (s *request) Body() []byte {
	if !s.ok() {
		return nil
	}
	if s.body != nil {
		return s.body
	}
	s.body, s.err = ioutil.ReadAll(io.LimitReader(s.r.Body, defaultMaxBodyLen))
	s.read = len(s.body)
	return s.body
}

func (s *request) writeerror(msg string, code int, err error) bool {
	s.code = code
	s.logerr = err
	if err == nil {
		s.logerr = fmt.Errorf("%s", msg)
	}
	p := PlatformError{
		Ok:     false,
		Status: code,
		Rid:    s.rid,
		Msg:    msg,
	}
	if err != nil {
		p.Err = err.Error()
	}
	s.w.Header().Set("Content-Type", "application/json")
	s.w.WriteHeader(code)
	fmt.Fprintln(s.w, p.String())
	return false
}

func (s *request) writebody(data interface{}, mimeType ...string) bool {
	if len(mimeType) != 0 {
		s.w.Header().Set("Content-Type", mimeType[0])
	}
	switch t := data.(type) {
	case io.WriterTo:
		n, err := t.WriteTo(s.w)
		s.wrote, s.err = int(n), err
	case []byte:
		s.wrote, s.err = s.w.Write(t)
	case string:
		s.wrote, s.err = s.w.Write([]byte(t))
	case interface{}:
		data, err := json.Marshal(t)
		if err != nil {
			return s.writeerror("encoding response", http.StatusInternalServerError, err)
		}
		if len(mimeType) == 0 {
			s.w.Header().Set("Content-Type", "application/json")
		}
		s.wrote, s.err = s.w.Write(data)
	}
	return s.ok()
}

func (s *request) readJSON(body interface{}) bool {
	data := s.Body()
	if !s.ok() {
		return false
	}
	if s.err = json.Unmarshal(data, body); s.err != nil {
		return false
	}
	return s.ok()
}

func (s *request) chop() string {
	s.file, s.path = chop(s.path)
	return s.file
}

func chop(p string) (file, next string) {
	p = path.Clean(p)[1:]
	if n := strings.Index(p, "/"); n >= 0 {
		return p[:n], p[n:]
	}
	return p, "/"
}
