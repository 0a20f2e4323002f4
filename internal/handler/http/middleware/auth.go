package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/gvanmetre/BiteBook/internal/usecase"
)

// SessionCookieName is the cookie the signed session token travels in.
// API clients may send the same token as a bearer header instead.
const SessionCookieName = "bitebook_token"

const (
	// ContextUserKey holds the resolved *entity.User for the request.
	ContextUserKey = "user"
	// ContextUserIDKey holds the user's ID.
	ContextUserIDKey = "userID"
)

// sessionToken extracts the token from the cookie or the Authorization
// header, cookie first.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// resolveUser authenticates the request if possible. Returns nil without
// aborting when no valid session is present.
func resolveUser(c *gin.Context, userUC usecase.IUserUseCase) *entity.User {
	token := sessionToken(c)
	if token == "" {
		return nil
	}
	user, err := userUC.Authenticate(c.Request.Context(), token)
	if err != nil {
		return nil
	}
	return user
}

// CurrentUser returns the authenticated user set by the auth middleware.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*entity.User); ok {
			return user
		}
	}
	return nil
}

// LoadUser resolves the session if one exists but never rejects the
// request. Pages that render differently for guests use it.
func LoadUser(userUC usecase.IUserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := resolveUser(c, userUC); user != nil {
			c.Set(ContextUserKey, user)
			c.Set(ContextUserIDKey, user.ID)
		}
		c.Next()
	}
}

// RequireAuthPage redirects unauthenticated browsers to the login page.
func RequireAuthPage(userUC usecase.IUserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := resolveUser(c, userUC)
		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// RequireAuthAPI rejects unauthenticated requests with a 401 JSON body.
func RequireAuthAPI(userUC usecase.IUserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := resolveUser(c, userUC)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
			return
		}
		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// RequireVerifiedPage gates page routes on a verified, non-suspended
// account. Unverified users land on the verification screen.
func RequireVerifiedPage(userUC usecase.IUserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := resolveUser(c, userUC)
		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if !user.IsVerified {
			c.Redirect(http.StatusFound, "/verify")
			c.Abort()
			return
		}
		if user.IsSuspended(time.Now()) {
			c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// RequireVerifiedAPI is the status-code twin of RequireVerifiedPage.
func RequireVerifiedAPI(userUC usecase.IUserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := resolveUser(c, userUC)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
			return
		}
		if !user.IsVerified {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "email verification required"})
			return
		}
		if user.IsSuspended(time.Now()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "account suspended"})
			return
		}
		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// RequireAdmin runs after an auth middleware and rejects non-admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "admins only"})
			return
		}
		c.Next()
	}
}
