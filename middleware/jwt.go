package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateJWT mints a signed token carrying the user's email, used by
// socket.io clients in the handshake auth field.
func GenerateJWT(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// parseJWT validates a "Bearer <token>" string and returns the email claim.
func parseJWT(bearer string) (string, error) {
	tokenString, found := strings.CutPrefix(bearer, "Bearer ")
	if !found {
		return "", fmt.Errorf("missing 'Bearer ' prefix")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", fmt.Errorf("token has no email claim")
	}
	return email, nil
}

// Socketio_JWT_decoder extracts and validates the JWT from a socket.io
// handshake auth map, returning the authenticated user's email.
func Socketio_JWT_decoder(authData map[string]interface{}) (string, error) {
	bearer, ok := authData["authorization"].(string)
	if !ok {
		return "", fmt.Errorf("no authorization field in auth data")
	}
	return parseJWT(bearer)
}

// JWT_decoder validates the Authorization header of an HTTP request and
// returns the email claim. It writes the error response itself so callers
// only need to return.
func JWT_decoder(c *gin.Context) (string, error) {
	email, err := parseJWT(c.GetHeader("Authorization"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid JWT. Remember to set it on the 'Authorization' header and with the 'Bearer ' prefix."})
		return "", err
	}
	return email, nil
}
