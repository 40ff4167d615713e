package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const ctxUserKey = "userID"

// currentUser returns the authenticated user id set by requireUser. It is
// only meaningful on routes behind that middleware.
func currentUser(c *gin.Context) int64 {
	return c.GetInt64(ctxUserKey)
}

// requireUser resolves the session cookie and injects the user id into the
// request context. Anonymous requests are redirected to the login view.
func (h *Handler) requireUser(c *gin.Context) {
	token, err := c.Cookie(h.cookie.Name)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return
	}

	userID, err := h.sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return
	}

	c.Set(ctxUserKey, userID)
	c.Next()
}

// redirectAuthenticated sends already-logged-in visitors of the login and
// register views back to the index.
func (h *Handler) redirectAuthenticated(c *gin.Context) {
	token, err := c.Cookie(h.cookie.Name)
	if err != nil {
		c.Next()
		return
	}
	if _, err := h.sessions.Resolve(c.Request.Context(), token); err != nil {
		c.Next()
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
	c.Abort()
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Info("request")
	}
}
