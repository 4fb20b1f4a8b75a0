package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const ContextSession = "session"

// Claims emitidas pelo backend de autenticação.
type Claims struct {
	SalonID uint   `json:"salonId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Token ausente.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			c.Abort()
			return
		}

		var claims Claims
		token, err := parser.ParseWithClaims(parts[1], &claims, func(*jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token inválido.")
			c.Abort()
			return
		}

		sess, ok := claims.session()
		if !ok {
			httperr.Unauthorized(c, "invalid_token_payload", "Token sem usuário ou salão.")
			c.Abort()
			return
		}

		c.Set(ContextSession, sess)
		c.Next()
	}
}

func (cl Claims) session() (auth.Session, bool) {
	uid, err := parseUint(cl.Subject)
	if err != nil {
		return auth.Session{}, false
	}
	sess := auth.Session{UserID: uid, SalonID: cl.SalonID, Role: cl.Role}
	return sess, sess.Valid()
}

// SessionFrom devolve a sessão posta por AuthMiddleware.
func SessionFrom(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(ContextSession)
	if !ok {
		return auth.Session{}, false
	}
	sess, ok := v.(auth.Session)
	return sess, ok
}
