// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Ask the Audience API.

# Route Registration

NewRouter wires the handlers and returns the full handler chain,
CORS included:

	handler := router.NewRouter(store, cfg, hub, quiz)

# Endpoints

Health:

	GET /health

Session lifecycle (host):

	POST /api/session               - Create session (join code + QR)
	GET  /api/session/{id}          - Session info
	POST /api/session/{id}/reset    - Clear the current round's votes
	POST /api/session/{id}/score    - Award or retract a team point

Quiz content:

	POST /api/quiz/validate         - Check a share code before loading
	POST /api/session/{id}/loadQuiz - Load quiz content into a session

Real-time:

	GET /ws - WebSocket endpoint for host and audience rooms
*/
package router
