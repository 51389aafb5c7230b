// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

// Package mongodb provides a managed MongoDB client for the Mercato
// application.
//
// # Architecture
//
// This package is part of the Infrastructure layer. It manages the physical
// database connection (driver client and its internal pool) and hands out
// the database handle the repositories are built on.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Opinionated client settings for the Mercato workload.
const (
	// maxPoolSize is the maximum number of connections per server.
	maxPoolSize = 25
	// minPoolSize keeps a warm set of connections to avoid cold-start latency.
	minPoolSize = 5
	// maxConnIdleTime closes connections that have been idle too long.
	maxConnIdleTime = 10 * time.Minute
	// connectTimeout is the maximum time allowed to establish a new connection.
	connectTimeout = 5 * time.Second
	// serverSelectionTimeout bounds how long the driver hunts for a usable server.
	serverSelectionTimeout = 5 * time.Second
	// pingTimeout is the maximum duration for a health check ping.
	pingTimeout = 2 * time.Second
)

// Connect creates and validates a new MongoDB client.
//
// # Parameters
//   - ctx: Context for the initial connection attempt.
//   - uri: A mongodb:// or mongodb+srv:// connection string.
//   - logger: Structured logger for client-level events.
func Connect(ctx context.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(maxPoolSize).
		SetMinPoolSize(minPoolSize).
		SetMaxConnIdleTime(maxConnIdleTime).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(serverSelectionTimeout)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb: failed to create client: %w", err)
	}

	// Validate that we can actually reach the database.
	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("mongodb connected",
		slog.Int("max_pool_size", maxPoolSize),
	)

	return client, nil
}

// Ping verifies that the MongoDB deployment is reachable from this client.
func Ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb: ping failed: %w", err)
	}

	return nil
}

// ListCollections returns the collection names present in the database.
// Used by the connectivity diagnostic endpoint.
func ListCollections(ctx context.Context, database *mongo.Database) ([]string, error) {
	listCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	names, err := database.ListCollectionNames(listCtx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongodb: list collections failed: %w", err)
	}

	return names, nil
}
