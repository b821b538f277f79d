// Package api exposes the preview service over HTTP.
//
// Routes:
//   - POST /v1/validate - judge variable rows, returns a validation report
//   - POST /v1/render - substitute valid rows without the render gate
//   - POST /v1/preview - gated render, optionally wrapped in a document
//   - GET /health, GET /ready - liveness and readiness (Redis ping when configured)
//
// Example request:
//
//	POST /v1/preview
//	{"template": "<p>{{ name }}</p>", "rows": [{"key": "name", "value": "World"}], "shell": true}
package api
