// Package handler is the HTTP layer behind the router.
//
// Page handlers bind and validate form posts, call the services and render
// templates, using post/redirect/get with flash messages for writes. API
// handlers go through the typed Handle pipeline in base.go and answer JSON.
package handler
