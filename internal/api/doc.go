// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the BD_Bot portal REST API.
//
// Every screen in the TUI is a thin consumer of this client: it fetches
// JSON, renders it, and posts updates back. Authentication is a backend
// cookie session; the client carries a cookie jar and otherwise knows
// nothing about the security model.
//
// The chat endpoint is the one non-JSON-request/response surface: it
// returns a chunked stream of "data: {...}" lines decoded incrementally by
// ChatStream.
package api
