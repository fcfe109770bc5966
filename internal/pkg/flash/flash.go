// Package flash carries a one-shot notice across a redirect via a
// short-lived cookie, read once and cleared.
package flash

import "github.com/gin-gonic/gin"

const (
	cookieName = "flipper_flash"
	maxAge     = 60 // seconds; a flash only needs to survive one redirect
)

// Set stores a flash message for the next request.
func Set(c *gin.Context, message string) {
	c.SetCookie(cookieName, message, maxAge, "/", "", false, true)
}

// Take returns the pending flash message, if any, and clears it.
func Take(c *gin.Context) (string, bool) {
	message, err := c.Cookie(cookieName)
	if err != nil || message == "" {
		return "", false
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	return message, true
}
