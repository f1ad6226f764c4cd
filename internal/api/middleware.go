package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"alcyxob/smartfit/internal/service"
	"alcyxob/smartfit/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v9"
	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Constants for context keys
const (
	ContextUserIDKey = "userID"
)

// RequestRateLimiter is satisfied by *redis_rate.Limiter.
type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims := &service.Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.UserID == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}
		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid user ID in token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// getUserID returns the authenticated user set by AuthMiddleware.
func getUserID(c *gin.Context) (primitive.ObjectID, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return primitive.NilObjectID, errors.New("user ID not found in context")
	}
	id, ok := idRaw.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid user ID type in context")
	}
	return id, nil
}

// mustUserID aborts with 401 when no user is attached to the request.
func mustUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := getUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	return userID, true
}

// RateLimit allows each authenticated user allowedPerMin requests per minute
// on the routes it guards. Must run after AuthMiddleware.
func RateLimit(rateLimiter RequestRateLimiter, metrics *telemetry.Manager, routeName string, allowedPerMin int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := routeName
		if userID, err := getUserID(c); err == nil {
			key = routeName + ":" + userID.Hex()
		}

		res, err := rateLimiter.Allow(c.Request.Context(), key, redis_rate.PerMinute(allowedPerMin))
		if err != nil {
			log.Errorf("rate limiter %s: %s", routeName, err)
			abortWithError(c, http.StatusInternalServerError, "rate limit internal error")
			return
		}
		if res.Allowed > 0 {
			c.Next()
			return
		}

		metrics.CounterRateLimitedRequests.Inc()
		c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds()+0.5)))
		abortWithError(c, http.StatusTooManyRequests, fmt.Sprintf("retry after %.0f seconds", res.RetryAfter.Seconds()))
	}
}

// RequestMetrics records request counts, in-flight requests and latency.
func RequestMetrics(metrics *telemetry.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		metrics.GaugeRequests.Inc()
		defer metrics.GaugeRequests.Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.CounterRequests.WithLabelValues(c.Request.Method, status).Inc()
		metrics.HistogramRequestDuration.WithLabelValues(route, c.Request.Method, status).
			Observe(time.Since(begin).Seconds())
	}
}

// RequestLogger logs each request at debug level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		log.Debugf("request [%s] %s -> %d (%s) [UA: %s]",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(begin), c.Request.UserAgent())
	}
}
