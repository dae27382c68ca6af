package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ActorHeader carries the acting user id set by the upstream gateway.
const ActorHeader = "X-Actor-ID"

// ActorMiddleware resolves who is acting on the request. When jwtSecret is set
// the actor is the subject of an HMAC-signed bearer token; otherwise it is read
// from the ActorHeader. Requests without an actor are rejected.
func ActorMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		var actorID string
		if jwtSecret != "" {
			subject, err := subjectFromBearer(c.GetHeader("Authorization"), jwtSecret)
			if err != nil {
				logger.Warn("Invalid bearer token", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			actorID = subject
		} else {
			actorID = strings.TrimSpace(c.GetHeader(ActorHeader))
		}

		if actorID == "" {
			logger.Warn("Actor missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "actor identity required"})
			return
		}

		ctx := WithActorID(c.Request.Context(), actorID)
		ctx = WithLogger(ctx, logger.With(slog.String("actor_id", actorID)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func subjectFromBearer(header, secret string) (string, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("authorization header format must be Bearer {token}")
	}

	token, err := jwt.ParseWithClaims(parts[1], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.New("token has expired")
		}
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}
