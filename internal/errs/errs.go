// Package errs defines the error shapes the HTTP layer returns.
//
// Services return *HTTPError values (or plain errors that sqlerr classifies)
// and the global error handler renders them: JSON for the API, an error page
// or a re-rendered form for browser routes.
package errs
