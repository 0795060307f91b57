package middleware

import (
	"crypto/rsa"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-computed-properties/internal/api/shared/errors"
	"github.com/feral-file/ff-computed-properties/internal/logger"
)

// Context keys set on authenticated admin calls
const (
	OperatorAuthTypeKey = "operator_auth_type"
	OperatorSubjectKey  = "operator_subject"
)

const (
	authTypeAPIKey = "apikey"
	authTypeJWT    = "jwt"
)

// AuthConfig lists the operator credentials accepted by the admin API
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// AuthResult is the outcome of checking one Authorization header
type AuthResult struct {
	Success     bool
	AuthType    string
	AuthSubject string
	Error       error
}

type operatorAuth struct {
	publicKey    *rsa.PublicKey
	publicKeyErr error
	apiKeys      [][]byte
}

func newOperatorAuth(cfg AuthConfig) *operatorAuth {
	a := &operatorAuth{}
	for _, key := range cfg.APIKeys {
		if key != "" {
			a.apiKeys = append(a.apiKeys, []byte(key))
		}
	}
	if cfg.JWTPublicKey == "" {
		a.publicKeyErr = errors.New("JWT public key not configured")
	} else {
		a.publicKey, a.publicKeyErr = jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.JWTPublicKey))
	}
	return a
}

// Authenticate checks "ApiKey <key>" or "Bearer <RS256/384/512 jwt>".
// The scheme is case insensitive.
func Authenticate(authHeader string, cfg AuthConfig) AuthResult {
	return newOperatorAuth(cfg).authenticate(authHeader)
}

func (a *operatorAuth) authenticate(authHeader string) AuthResult {
	if authHeader == "" {
		return AuthResult{Error: errors.New("missing Authorization header")}
	}
	scheme, credentials, ok := strings.Cut(authHeader, " ")
	if !ok {
		return AuthResult{Error: errors.New("invalid Authorization header format")}
	}

	switch strings.ToLower(scheme) {
	case authTypeAPIKey:
		if err := a.checkAPIKey(credentials); err != nil {
			return AuthResult{Error: err}
		}
		return AuthResult{Success: true, AuthType: authTypeAPIKey}
	case "bearer":
		claims, err := a.checkJWT(credentials)
		if err != nil {
			return AuthResult{Error: err}
		}
		return AuthResult{Success: true, AuthType: authTypeJWT, AuthSubject: claims.Subject}
	default:
		return AuthResult{Error: fmt.Errorf("unsupported authorization type: %s", scheme)}
	}
}

func (a *operatorAuth) checkAPIKey(key string) error {
	if len(a.apiKeys) == 0 {
		return errors.New("no API keys configured")
	}
	for _, valid := range a.apiKeys {
		if subtle.ConstantTimeCompare(valid, []byte(key)) == 1 {
			return nil
		}
	}
	return errors.New("invalid API key")
}

// checkJWT verifies the signature; exp and nbf are enforced by the parser when present
func (a *operatorAuth) checkJWT(token string) (*jwt.RegisteredClaims, error) {
	if a.publicKeyErr != nil {
		return nil, fmt.Errorf("failed to load RSA public key: %w", a.publicKeyErr)
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return a.publicKey, nil },
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// Auth rejects admin calls without valid operator credentials with 401
func Auth(cfg AuthConfig) gin.HandlerFunc {
	auth := newOperatorAuth(cfg)

	return func(c *gin.Context) {
		result := auth.authenticate(c.GetHeader("Authorization"))
		if !result.Success {
			logger.WarnCtx(c.Request.Context(), "Rejected admin call",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error()))
			return
		}

		c.Set(OperatorAuthTypeKey, result.AuthType)
		if result.AuthSubject != "" {
			c.Set(OperatorSubjectKey, result.AuthSubject)
		}
		logger.DebugCtx(c.Request.Context(), "Admin call authenticated",
			zap.String("auth_type", result.AuthType),
			zap.String("operator", result.AuthSubject),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}
