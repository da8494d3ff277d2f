// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package broadcast publishes live session events on Redis pub/sub.
//
// Each session has its own channel ("sess42"). Delivery is fire-and-forget:
// nothing is stored, and a viewer that subscribes late never sees earlier
// events.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tabletop/internal/platform/constants"
)

// Event is the envelope written to a session channel.
type Event struct {
	Type      string `json:"type"`
	SessionID int64  `json:"session_id"`
	Payload   any    `json:"payload,omitempty"`
}

// Channel returns the pub/sub channel of a session.
func Channel(sessionID int64) string {
	return constants.SessionChannelPrefix + strconv.FormatInt(sessionID, 10)
}

// Publisher writes events to Redis.
type Publisher struct {
	client  *redis.Client
	timeout time.Duration
}

// NewPublisher creates a Publisher bounded by [constants.PublishTimeout].
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client, timeout: constants.PublishTimeout}
}

// Publish sends event to the session's channel and returns how many
// subscribers received it.
//
// The publish outlives the caller's cancellation (a finished HTTP request
// must not abort it) but never its own timeout.
func (publisher *Publisher) Publish(parent context.Context, event Event) (int64, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return 0, fmt.Errorf("broadcast: encode %s: %w", event.Type, err)
	}

	publishContext, cancel := context.WithTimeout(context.WithoutCancel(parent), publisher.timeout)
	defer cancel()

	receivers, err := publisher.client.Publish(publishContext, Channel(event.SessionID), payload).Result()
	if err != nil {
		return 0, fmt.Errorf("broadcast: publish to %s: %w", Channel(event.SessionID), err)
	}

	return receivers, nil
}
