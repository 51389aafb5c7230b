// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

package api

import (
	"net/http"

	"github.com/mercatolabs/mercato/internal/platform/database/schema"
	"github.com/mercatolabs/mercato/internal/platform/respond"
)

// NewSchemaHandler creates the GET /schema http.HandlerFunc.
//
// The payload is the JSON Schema description of every collection, built once
// at startup; schema viewers consume it to render the data model.
func NewSchemaHandler() http.HandlerFunc {
	payload := map[string]any{
		schema.User.Collection:    schema.User.JSONSchema(),
		schema.Product.Collection: schema.Product.JSONSchema(),
		schema.Order.Collection:   schema.Order.JSONSchema(),
	}

	return func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, payload)
	}
}
