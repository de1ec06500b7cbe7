package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type RateLimiter struct {
	visitors     map[string]*Visitor
	mutex        sync.RWMutex
	defaultLimit rate.Limit
	defaultBurst int
}

type Visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a per-IP rate limiter with the given default
// allowance. Credential endpoints get a much stricter budget regardless.
func NewRateLimiter(defaultRPS float64, defaultBurst int) *RateLimiter {
	rl := &RateLimiter{
		visitors:     make(map[string]*Visitor),
		defaultLimit: rate.Limit(defaultRPS),
		defaultBurst: defaultBurst,
	}

	go rl.cleanupVisitors()
	return rl
}

func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			var limit rate.Limit
			var burst int

			path := c.Request().URL.Path
			switch {
			case strings.Contains(path, "/login"):
				limit = rate.Every(5 * time.Second)
				burst = 5
			case strings.Contains(path, "/signup"):
				limit = rate.Every(time.Minute)
				burst = 3
			case strings.Contains(path, "/password-reset"), strings.Contains(path, "/verification"):
				limit = rate.Every(30 * time.Second)
				burst = 3
			default:
				limit = rl.defaultLimit
				burst = rl.defaultBurst
			}

			if !rl.allow(ip, path, limit, burst) {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error": "too many attempts, try again later",
					"code":  "RATE_LIMITED",
				})
			}

			return next(c)
		}
	}
}

// allow buckets per IP and endpoint class so a login storm cannot starve
// state reads from the same address.
func (rl *RateLimiter) allow(ip, path string, limit rate.Limit, burst int) bool {
	key := ip + "|" + endpointClass(path)

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	visitor, exists := rl.visitors[key]
	if !exists {
		rl.visitors[key] = &Visitor{
			limiter:  rate.NewLimiter(limit, burst),
			lastSeen: time.Now(),
		}
		return true
	}

	visitor.lastSeen = time.Now()
	return visitor.limiter.Allow()
}

func endpointClass(path string) string {
	switch {
	case strings.Contains(path, "/login"):
		return "login"
	case strings.Contains(path, "/signup"):
		return "signup"
	case strings.Contains(path, "/password-reset"), strings.Contains(path, "/verification"):
		return "email"
	default:
		return "default"
	}
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mutex.Lock()
		for key, visitor := range rl.visitors {
			if time.Since(visitor.lastSeen) > 3*time.Minute {
				delete(rl.visitors, key)
			}
		}
		rl.mutex.Unlock()
	}
}
