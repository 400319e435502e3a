package controller

import (
	"net/http"
	"strings"

	"ctchen222/Tic-Tac-Toe-N/internal/api/response"
	"ctchen222/Tic-Tac-Toe-N/internal/api/service"

	"github.com/gin-gonic/gin"
)

const profileIDKey = "profile_id"

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate rejects requests without a valid bearer token and stores the
// token's profile id in the context.
func Authenticate(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.AbortWithError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		profileID, err := users.ParseToken(token)
		if err != nil {
			response.AbortWithError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(profileIDKey, profileID)
		c.Next()
	}
}

// ProfileID returns the profile id set by Authenticate.
func ProfileID(c *gin.Context) string {
	return c.GetString(profileIDKey)
}
