package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/devcampdir/api/internal/constants"
	"github.com/devcampdir/api/internal/utils"
)

// Recovery converts panics in downstream handlers into a logged 500
// response instead of tearing down the connection.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					utils.LogPanic(recovered, debug.Stack())
					utils.Error(w, http.StatusInternalServerError, constants.MsgInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
