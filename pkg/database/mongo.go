// Package database owns the process-wide MongoDB connection.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shashiranjanraj/voucherhub/config"
)

// Collection names shared by repositories and maintenance commands.
const (
	Users           = "users"
	Roles           = "roles"
	Profiles        = "profiles"
	CartItemHistory = "cartitemhistory"
	DynaFields      = "dynaFields"
	Logs            = "logs"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

// Connect opens the pool described by MONGODB_URL and verifies it with a
// ping. Returns an error instead of exiting so callers can shut down cleanly.
func Connect(ctx context.Context) error {
	uri := config.MongoURL()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetMaxPoolSize(25).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(2 * time.Minute)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	Client = client
	DB = client.Database(config.MongoDatabase())
	return nil
}

// Ping checks the live connection. Used by the health endpoint.
func Ping(ctx context.Context) error {
	if Client == nil {
		return fmt.Errorf("database: not connected")
	}
	return Client.Ping(ctx, readpref.Primary())
}

// Disconnect releases the pool. Safe to call when Connect never succeeded.
func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	err := Client.Disconnect(ctx)
	Client, DB = nil, nil
	if err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}
