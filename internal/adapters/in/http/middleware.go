package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/metrics"
)

const principalContextKey = "principal"

// ActorClaims is the JWT payload issued by the identity service. The
// subject carries the actor ID; tenant and role are custom claims.
type ActorClaims struct {
	Tenant string `json:"tenant"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller resolved from the bearer token.
type Principal struct {
	ActorID kernel.UUID
	Role    order.Role
	Tenant  kernel.TenantID
}

// Actor converts the principal into a domain actor.
func (p Principal) Actor() (order.Actor, error) {
	return order.NewActor(p.ActorID, p.Role)
}

// NewAuthMiddleware returns middleware that verifies the bearer token
// and stores the resolved Principal in the request context. Every
// tenant-scoped route sits behind it.
func NewAuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer token",
				})
			}

			claims := &ActorClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return secret, nil
			})
			if err != nil || !parsed.Valid {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token",
				})
			}

			principal, err := principalFromClaims(claims)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token claims: " + err.Error(),
				})
			}

			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

func principalFromClaims(claims *ActorClaims) (Principal, error) {
	actorID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Principal{}, err
	}
	role, err := order.RoleFromString(claims.Role)
	if err != nil {
		return Principal{}, err
	}
	tenant, err := kernel.NewTenantID(claims.Tenant)
	if err != nil {
		return Principal{}, err
	}
	return Principal{ActorID: actorID, Role: role, Tenant: tenant}, nil
}

func principalFrom(ctx echo.Context) (Principal, bool) {
	principal, ok := ctx.Get(principalContextKey).(Principal)
	return principal, ok
}

// MetricsMiddleware records request counts and latency per route
// template. The route path is used instead of the raw URL so order IDs
// do not explode label cardinality.
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)

		method := ctx.Request().Method
		path := ctx.Path()
		status := ctx.Response().Status
		if err != nil {
			if httpErr, ok := err.(*echo.HTTPError); ok {
				status = httpErr.Code
			}
		}

		metrics.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}
