package utils

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const cartTokenKey = "cart_token"

// CartSessionToken returns the anonymous cart token for this session,
// minting and persisting one on first use
func CartSessionToken(c *gin.Context) (string, error) {
	session := sessions.Default(c)
	if v := session.Get(cartTokenKey); v != nil {
		if token, ok := v.(string); ok && token != "" {
			return token, nil
		}
	}

	token := uuid.New().String()
	session.Set(cartTokenKey, token)
	if err := session.Save(); err != nil {
		return "", err
	}
	return token, nil
}

// PeekCartSessionToken returns the session's cart token without
// creating one. Empty string means the session never carried a cart.
func PeekCartSessionToken(c *gin.Context) string {
	session := sessions.Default(c)
	if v := session.Get(cartTokenKey); v != nil {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
