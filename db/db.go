// Package db keeps a log of submitted jobs in Redis.
package db

import (
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/go-redis/redis"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

// Submission is what was asked of MediaConvert for one job.
type Submission struct {
	JobID        string    `json:"jobId"`
	FileName     string    `json:"fileName"`
	Orientation  string    `json:"orientation"`
	ExcludeAudio bool      `json:"excludeAudio"`
	Input        string    `json:"input"`
	Output       string    `json:"output"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Options struct {
	Addr string
	DB   int
}

func NewClient(opt *Options) (*Client, error) {
	if opt == nil {
		opt = &Options{}
	}
	if opt.Addr == "" {
		opt.Addr = "localhost:6379"
	}
	_, _, err := net.SplitHostPort(opt.Addr)
	if err != nil {
		opt.Addr = net.JoinHostPort(opt.Addr, "6379")
	}
	f := &Client{
		rc: redis.NewClient(&redis.Options{
			Addr:     opt.Addr,
			DB:       opt.DB,
			Password: "",
		}),
	}
	return f, nil
}

type Client struct {
	rc *redis.Client
}

func (c *Client) Get(id string) (*Submission, error) {
	val, err := c.rc.Get(key(id)).Result()
	if err == redis.Nil {
		return nil, ErrJobNotFound
	} else if err != nil {
		return nil, err
	}
	var s Submission
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Put(s *Submission) error {
	if s.JobID == "" {
		return errors.New("submission: missing job id")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rc.Set(key(s.JobID), string(data), exp).Err()
}

func (c *Client) Close() error {
	return c.rc.Close()
}

func key(id string) string {
	return "submission:" + id
}

var exp = 24 * time.Hour * 365 * 10
