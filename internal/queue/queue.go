// Package queue defines the asynchronous job types exchanged between the API
// server and the worker, and an asynq-backed client for enqueuing them.
package queue

import (
	"context"
	"encoding/json"

	"github.com/gofrs/uuid/v5"
	"github.com/hibiken/asynq"
)

// Task type names on the queue.
const (
	TypeThumbnail = "file:thumbnail"
	TypeWelcome   = "user:welcome"
)

// ThumbnailPayload asks the worker to generate resized variants of an image.
type ThumbnailPayload struct {
	UserID string `json:"userId"`
	FileID string `json:"fileId"`
}

// WelcomePayload asks the worker to greet a freshly signed-in user.
type WelcomePayload struct {
	UserID string `json:"userId"`
}

// Enqueuer is the producer-side contract, implemented by Client and by
// test fakes.
type Enqueuer interface {
	EnqueueThumbnail(ctx context.Context, userID, fileID uuid.UUID) error
	EnqueueWelcome(ctx context.Context, userID uuid.UUID) error
}

// Client enqueues jobs on a Redis-backed queue. One long-lived client per
// process, injected into any enqueuing service.
type Client struct{ c *asynq.Client }

// NewClient constructs a queue client for the given Redis address.
func NewClient(redisAddr string) *Client {
	return &Client{c: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})}
}

// Close releases the underlying Redis connections.
func (c *Client) Close() error { return c.c.Close() }

// EnqueueThumbnail schedules thumbnail generation for {userID, fileID}.
// Jobs are delivered at most once per consumer run; no retry is configured.
func (c *Client) EnqueueThumbnail(ctx context.Context, userID, fileID uuid.UUID) error {
	return c.enqueue(ctx, TypeThumbnail, ThumbnailPayload{
		UserID: userID.String(),
		FileID: fileID.String(),
	})
}

// EnqueueWelcome schedules a welcome job for userID.
func (c *Client) EnqueueWelcome(ctx context.Context, userID uuid.UUID) error {
	return c.enqueue(ctx, TypeWelcome, WelcomePayload{UserID: userID.String()})
}

func (c *Client) enqueue(ctx context.Context, typ string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = c.c.EnqueueContext(ctx, asynq.NewTask(typ, b), asynq.MaxRetry(0))
	return err
}
