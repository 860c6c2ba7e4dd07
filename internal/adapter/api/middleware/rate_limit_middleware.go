package middleware

import (
	"math"
	"time"

	"github.com/labstack/echo/v4"

	"fairshoppe/pkg/errors"
	"fairshoppe/pkg/response"
)

// Limiter decides whether a user may perform an action now.
type Limiter interface {
	Allow(userID, action string) (bool, time.Duration)
}

// RateLimit limits action per user. Anonymous callers share a bucket keyed
// by their IP address.
func RateLimit(limiter Limiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := UserID(c)
			if key == "" {
				key = "ip:" + c.RealIP()
			}

			allowed, wait := limiter.Allow(key, action)
			if !allowed {
				retryAfter := int(math.Ceil(wait.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded", retryAfter))
			}

			return next(c)
		}
	}
}
