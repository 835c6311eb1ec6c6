// Package middleware holds the global and route-specific echo middleware:
// request ids, request-scoped loggers, New Relic tracing, Clerk auth for the
// JSON API, rate limiting of writes, and the global error handler that
// renders HTML error pages or JSON errors.
package middleware
