// Package middle contains middleware for use with the run server.
package middle

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/wespiper/ufr-ds/server/result"
	"github.com/wespiper/ufr-ds/server/token"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware is a function that takes a handler and returns a new handler
// which wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// RequireAPIKey returns middleware that rejects any request whose
// Authorization header does not carry a valid bearer token for secret.
// Rejections are delayed by unauthDelay as a mild anti-flood measure
// against naive non-parallel clients.
func RequireAPIKey(secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, req *http.Request) {
			tok, err := token.Get(req)
			if err == nil {
				err = token.Validate(tok, secret)
			}
			if err != nil {
				r := result.Unauthorized("", err.Error())
				time.Sleep(unauthDelay)
				r.WriteResponse(w)
				r.Log(req)
				return
			}

			next.ServeHTTP(w, req)
		})
	}
}

// DontPanic returns a Middleware that performs a panic check as it exits.
// If the function is panicking, it writes out an HTTP-500 response with a
// generic message to the client and logs the panic.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w)
		r.Log(req)
		return true
	}
	return false
}
