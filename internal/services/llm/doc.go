// Package llm provides an OpenAI-compatible chat client for file
// classification and group naming.
//
// The default endpoint is a local LM Studio server; OpenAI, OpenRouter, and
// Ollama accept the same request shape. The API key is optional and the
// Authorization header is only sent when one is configured.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send system/user prompts, receive the plain-text reply.
// Client.HealthCheck: verify the endpoint and model respond.
//
// # Retry Behaviour
//
// By default each request is attempted once. WithRetryMaxAttempts enables
// retries on HTTP 408/429/5xx errors, empty replies, and network timeouts with
// exponential backoff (base 1s, max 10s). Context cancellation aborts retries
// immediately.
//
// # Pacing
//
// WithRateLimit (or Config.RequestsPerSecond) spaces requests with a token
// bucket so shared or metered endpoints are not flooded during large runs.
package llm
