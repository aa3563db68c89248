package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

const (
	defaultHealthInterval = 10 * time.Second
	defaultPingTimeout    = 2 * time.Second
	defaultConnectTimeout = 5 * time.Second
)

// MongoHandle is the process-wide mongo connection. It connects on first use
// and reconnects when a periodic ping finds the client unusable.
//
// Pings and connects run on a context detached from the caller and are shared
// by concurrent callers.
type MongoHandle struct {
	uri            string
	database       string
	healthInterval time.Duration
	pingTimeout    time.Duration
	connectTimeout time.Duration

	dial func(ctx context.Context) (*mongo.Client, error)
	ping func(ctx context.Context, client *mongo.Client) error

	flight singleflight.Group

	mu         sync.Mutex
	client     *mongo.Client
	lastHealth time.Time
}

func NewMongoHandle(uri, database string) *MongoHandle {
	h := &MongoHandle{
		uri:            uri,
		database:       database,
		healthInterval: defaultHealthInterval,
		pingTimeout:    defaultPingTimeout,
		connectTimeout: defaultConnectTimeout,
	}
	h.dial = func(ctx context.Context) (*mongo.Client, error) {
		return connectMongo(ctx, h.uri, h.connectTimeout)
	}
	h.ping = func(ctx context.Context, client *mongo.Client) error {
		return client.Ping(ctx, readpref.Primary())
	}
	return h
}

// Collection returns the named collection, (re)connecting if needed.
func (h *MongoHandle) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	client, err := h.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(h.database).Collection(name), nil
}

func (h *MongoHandle) acquire(ctx context.Context) (*mongo.Client, error) {
	if client, fresh := h.current(); fresh {
		return client, nil
	}

	detached := context.WithoutCancel(ctx)
	result := h.flight.DoChan("client", func() (any, error) {
		return h.refresh(detached)
	})

	select {
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mongo.Client), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *MongoHandle) current() (*mongo.Client, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.client, h.client != nil && time.Since(h.lastHealth) <= h.healthInterval
}

// refresh runs once per flight. ctx carries no caller cancellation.
func (h *MongoHandle) refresh(ctx context.Context) (*mongo.Client, error) {
	client, fresh := h.current()
	if fresh {
		return client, nil
	}

	if client != nil {
		pingCtx, cancel := context.WithTimeout(ctx, h.pingTimeout)
		err := h.ping(pingCtx, client)
		cancel()
		if err == nil {
			h.mu.Lock()
			h.lastHealth = time.Now()
			h.mu.Unlock()
			return client, nil
		}
		h.drop(ctx, client)
	}

	connectCtx, cancel := context.WithTimeout(ctx, h.connectTimeout)
	defer cancel()
	client, err := h.dial(connectCtx)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.client = client
	h.lastHealth = time.Now()
	h.mu.Unlock()
	return client, nil
}

func (h *MongoHandle) drop(ctx context.Context, client *mongo.Client) {
	h.mu.Lock()
	if h.client == client {
		h.client = nil
	}
	h.mu.Unlock()

	disconnectCtx, cancel := context.WithTimeout(ctx, h.pingTimeout)
	defer cancel()
	_ = client.Disconnect(disconnectCtx)
}

// Disconnect closes the client if one is open.
func (h *MongoHandle) Disconnect(ctx context.Context) error {
	h.mu.Lock()
	client := h.client
	h.client = nil
	h.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func connectMongo(ctx context.Context, uri string, selectionTimeout time.Duration) (*mongo.Client, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(selectionTimeout).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}
