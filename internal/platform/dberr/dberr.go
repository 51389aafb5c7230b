// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

// Package dberr provides a bridge between low-level storage errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mercatolabs/mercato/internal/platform/apperr"
)

// Wrap inspects a storage error and wraps it into a meaningful [apperr.AppError].
// It hides driver details from the client while classifying the error type.
//
// The resource name feeds the NOT_FOUND message, e.g. Wrap(err, "Product")
// yields "Product not found".
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound(resource)
	}

	// 2. Already-classified errors pass through untouched
	if apperr.IsAppError(err) {
		return err
	}

	// 3. Everything else is a store-side failure (connectivity, timeouts)
	return apperr.Upstream("Database unavailable", err)
}
