// Package web reads province data resources from a static HTTP root.
//
// A province is fetched with GET <base_url>/<key>.json. Requests are
// optionally throttled with a token bucket from golang.org/x/time/rate.
package web
