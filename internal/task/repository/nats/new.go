// Package nats stores tasks in a JetStream key-value bucket, one key per task.
package nats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"task-planner/internal/task/repository"
	"task-planner/pkg/log"
)

const DefaultBucket = "planner_tasks"

type implRepository struct {
	nc *nats.Conn
	js nats.JetStreamContext
	kv nats.KeyValue
	l  log.Logger
}

// Open connects to url and ensures the bucket exists.
func Open(ctx context.Context, url, bucket string, l log.Logger) (repository.Repository, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	kv, err := js.KeyValue(bucket)
	if err != nil {
		if errors.Is(err, nats.ErrBucketNotFound) {
			kv, err = js.CreateKeyValue(&nats.KeyValueConfig{Bucket: bucket})
		}
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("ensure bucket %s: %w", bucket, err)
		}
	}

	l.Infof(ctx, "task/repository/nats.Open: using bucket %s", bucket)
	return &implRepository{nc: nc, js: js, kv: kv, l: l}, nil
}

func (r *implRepository) Close() error {
	if err := r.nc.Drain(); err != nil {
		r.nc.Close()
		return err
	}
	r.nc.Close()
	return nil
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("task/repository/nats.%s", method)
}

func isKeyChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '/':
		return true
	}
	return false
}

// encodeKeyPart maps s onto the KV key alphabet without dots. Bytes outside
// [-/_a-zA-Z0-9] become =XX so distinct inputs stay distinct.
func encodeKeyPart(s string) string {
	if s == "" {
		return "="
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isKeyChar(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "=%02X", c)
	}
	return b.String()
}

func taskKey(owner, id string) string {
	return encodeKeyPart(owner) + "." + encodeKeyPart(id)
}

func ownerPrefix(owner string) string {
	return encodeKeyPart(owner) + "."
}
