package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const corsMaxAgeSeconds = "600"

// corsMiddleware admits the caregiver web app. An empty list or "*" allows any origin.
// Unlisted origins receive the first configured origin, which browsers reject.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	origins := newOriginSet(allowed)
	return func(c *gin.Context) {
		headers := c.Writer.Header()
		origin := origins.resolve(c.GetHeader("Origin"))
		headers.Set("Access-Control-Allow-Origin", origin)
		if origin != "*" {
			headers.Add("Vary", "Origin")
		}
		headers.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		headers.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		headers.Set("Access-Control-Max-Age", corsMaxAgeSeconds)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

type originSet struct {
	any      bool
	fallback string
	allowed  map[string]struct{}
}

func newOriginSet(origins []string) originSet {
	set := originSet{allowed: make(map[string]struct{}, len(origins))}
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			set.any = true
			continue
		}
		if set.fallback == "" {
			set.fallback = origin
		}
		set.allowed[strings.ToLower(origin)] = struct{}{}
	}
	if set.fallback == "" {
		set.any = true
	}
	return set
}

func (s originSet) resolve(requestOrigin string) string {
	if s.any {
		return "*"
	}
	if _, ok := s.allowed[strings.ToLower(requestOrigin)]; ok {
		return requestOrigin
	}
	return s.fallback
}
