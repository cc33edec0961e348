// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the agent's HTTP routes using Go 1.22+ method
routing.

Routes are grouped by form variant: /api/stations/... for Form 34A drafts,
/api/constituencies/... for Form 34B, plus the candidate source proxy and a
health check. Every handler is wrapped with request logging.
*/
package router
