package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/metrics"
	"github.com/yasinhessnawi1/jcadmin/internal/utils"
	"github.com/yasinhessnawi1/jcadmin/internal/utils/ratelimit"
)

// RateLimit refuses requests from a client whose token bucket is empty.
// Clients are keyed by address, so it belongs after chi's RealIP.
func RateLimit(store *ratelimit.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := store.Get(clientKey(r))
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			metrics.RateLimited.Inc()
			log.Warn().
				Str("method", r.Method).
				Str("path", utils.MaskPath(r.URL.Path)).
				Msg("Mutation rate limit exceeded")

			retry := int(math.Ceil(limiter.RetryAfter().Seconds()))
			if retry < 1 {
				retry = 1
			}
			w.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retry))
			utils.Error(w, constants.StatusTooManyRequests, constants.CodeRateLimited, constants.MsgTooManyRequests, nil)
		})
	}
}

// clientKey is the request's remote host without the port.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
