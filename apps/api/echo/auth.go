package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/user"
)

const (
	tokenContextKey = "userToken"
	tokenAudience   = "SDMS"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"`
	IsAdmin      bool   `json:"is_admin,omitempty"`
}

// Session rebuilds the session the token was issued for.
func (c Claims) Session() user.Session {
	return user.Session{
		UserID:    c.Subject,
		Name:      c.Name,
		Role:      c.Role,
		StartedAt: time.Unix(c.OrigIssuedAt, 0),
	}
}

func jwtConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		Claims:        new(Claims),
	}
}

// GetSessionClaims returns the claims of a new token for sess. origIat carries the original issue time over
// token refreshes.
func GetSessionClaims(conf *core.Config, sess user.Session, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	oriat := sess.StartedAt.Unix()
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else if sess.StartedAt.IsZero() {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   sess.UserID,
			Audience:  tokenAudience,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Name:         sess.Name,
		Role:         sess.Role,
		IsAdmin:      sess.IsAdmin(),
	}
}

// GenerateToken generates a signed JWT token string representing the session Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	cfg := jwtConfig(conf)
	token := jwt.NewWithClaims(jwt.GetSigningMethod(cfg.SigningMethod), claims)

	ss, err := token.SignedString(cfg.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func refreshToken(ctx echo.Context, conf *core.Config, svc *user.Service) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", err
	}

	// the account may have been removed or demoted since
	usr, err := svc.GetByID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		if core.IsNotFound(err) {
			return "", errUnauthorized
		}
		return "", errors.Wrap(err, "finding user by ID")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	sess := user.Session{UserID: usr.ID, Name: usr.Name, Role: usr.Role}
	token, err := GenerateToken(conf, GetSessionClaims(conf, sess, claims.OrigIssuedAt))
	return token, errors.Wrap(err, "generating token")
}
