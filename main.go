package main

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/cbsinteractive/mediaconvert-hls/av"
	"github.com/cbsinteractive/mediaconvert-hls/config"
	"github.com/cbsinteractive/mediaconvert-hls/db"
	"github.com/cbsinteractive/mediaconvert-hls/provider/mediaconvert"
	"github.com/cbsinteractive/mediaconvert-hls/service"
	"github.com/cbsinteractive/mediaconvert-hls/service/exceptions"
	"github.com/google/gops/agent"
	"github.com/zsiec/pkg/tracing"
)

func main() {
	if err := agent.Listen(agent.Options{}); err != nil {
		log.Printf("starting gops agent: %v", err)
	}
	defer agent.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := cfg.Log.Logger()
	if err != nil {
		log.Fatal(err)
	}

	reporter, err := exceptions.New(cfg.Sentry.DSN, cfg.Sentry.Env)
	if err != nil {
		logger.Fatalf("creating exception reporter: %v", err)
	}

	tracer := cfg.Tracing.Tracer(logger.Infof)
	if err := tracer.Init(); err != nil {
		logger.Fatalf("initializing tracer: %v", err)
	}

	driver, err := mediaconvert.New(context.Background(), cfg.MediaConvert, logger)
	if err != nil {
		logger.Fatalf("creating mediaconvert client: %v", err)
	}

	srv := service.Server{
		Provider:    driver,
		Input:       av.Location{Bucket: cfg.MediaConvert.InputBucket, Path: cfg.MediaConvert.InputBucketPath},
		Output:      av.Location{Bucket: cfg.MediaConvert.OutputBucket, Path: cfg.MediaConvert.OutputBucketPath},
		Logger:      logger,
		ErrReporter: reporter,
		Tracer:      tracer,
	}

	if cfg.Redis.Addr != "" {
		store, err := db.NewClient(&db.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			logger.Fatalf("connecting to redis: %v", err)
		}
		defer store.Close()
		srv.DB = store
	}

	hs := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.HTTPPort),
		Handler:      tracer.Handle(tracing.FixedNamer("mediaconvert-hls"), srv),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	logger.WithField("addr", hs.Addr).Info("listening")
	if err := hs.ListenAndServe(); err != nil {
		logger.Fatal("server encountered a fatal error: ", err)
	}
}
