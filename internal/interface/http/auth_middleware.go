package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/care-moments/internal/domain/auth"
	apperrors "github.com/yanqian/care-moments/pkg/errors"
)

const viewerKey = "care_viewer"

// authMiddleware resolves the caregiver behind a Supabase access token.
func authMiddleware(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		claims, validateErr := svc.ValidateToken(c.Request.Context(), token)
		switch {
		case validateErr == nil:
		case apperrors.IsCode(validateErr, apperrors.CodeInvalidToken):
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, apperrors.CodeInvalidToken, errMessage(validateErr), validateErr))
			return
		default:
			abortWithError(c, NewHTTPError(http.StatusInternalServerError, "auth_failed", "could not verify credentials", validateErr))
			return
		}
		c.Set(viewerKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, *HTTPError) {
	if header == "" {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing authorization header", nil)
	}
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized", "invalid authorization header", nil)
	}
	return token, nil
}

func viewerFrom(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(viewerKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}
