package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentorapp/internal/activity"
	"mentorapp/internal/auth"
	"mentorapp/internal/config"
	"mentorapp/internal/firebase"
	"mentorapp/internal/jobs"
	"mentorapp/internal/mentorship"
	"mentorapp/internal/notify"
	repo "mentorapp/internal/repository"
	"mentorapp/internal/server"

	"github.com/golang/glog"
	"github.com/redis/go-redis/v9"
)

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load()
	if err != nil {
		glog.Fatalf("invalid configuration: %v", err)
	}
	config.Config = cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := firebase.Initialize(ctx, cfg); err != nil {
		glog.Fatalf("firebase init failed: %v", err)
	}

	store, err := repo.NewFirebaseRepository()
	if err != nil {
		glog.Fatalf("repository init failed: %v", err)
	}
	defer store.Close()
	repo.Repository = store

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			glog.Warningf("redis ping failed, token revocation may be unavailable: %v", err)
		}
		cancel()
		defer redisClient.Close()
		auth.Revocations = auth.NewRedisRevoker(redisClient)
	}

	var sender notify.Sender
	if client, err := firebase.Messaging(); err != nil {
		glog.Warningf("push notifications disabled: %v", err)
	} else {
		sender = client
	}
	notify.Default = notify.NewDispatcher(store, sender, cfg.ActivityTimeout)
	activity.Default = activity.NewRecorder(store, cfg.ActivityTimeout)
	mentorship.Default = mentorship.NewService(store, cfg.SessionDuration, cfg.Location())

	sweep, err := jobs.StartSessionSweep(ctx, cfg.SessionSweepSchedule, time.Minute, mentorship.Default)
	if err != nil {
		glog.Fatalf("session sweep init failed: %v", err)
	}

	if err := server.Start(ctx); err != nil {
		glog.Errorf("server error: %v", err)
	}

	if sweep != nil {
		<-sweep.Stop().Done()
	}
	activity.Default.Wait()
	notify.Default.Wait()
}
