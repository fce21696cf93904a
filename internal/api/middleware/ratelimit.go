package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, повторите позже"

// rateLimiterStore хранит лимитеры по ключу клиента
type rateLimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newRateLimiterStore(rps float64, burst int) *rateLimiterStore {
	return &rateLimiterStore{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (s *rateLimiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(s.rps, s.burst)
		s.limiters[key] = limiter
	}
	return limiter
}

// RateLimit ограничивает частоту запросов на клиента
// Ключ - X-User-ID, для неаутентифицированных запросов - IP адрес
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	store := newRateLimiterStore(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-User-ID")
			if key == "" {
				host, _, err := net.SplitHostPort(r.RemoteAddr)
				if err != nil {
					host = r.RemoteAddr
				}
				key = host
			}

			if !store.get(key).Allow() {
				handlers.RespondError(w, http.StatusTooManyRequests, handlers.CodeRateLimited, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
