package auth0

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	AuthorizationHeader = "Authorization"
	bearer              = "Bearer "

	StatusSuspended = "suspended"
)

type (
	Config struct {
		Issuer             string `yaml:"issuer" envconfig:"AUTH0_DOMAIN"`
		Audience           string `yaml:"audience" envconfig:"AUTH0_AUDIENCE"`
		AllowedEmailDomain string `yaml:"allowedEmailDomain" envconfig:"ALLOWED_EMAIL_DOMAIN"`
	}
)

// TokenValidator is satisfied by *validator.Validator.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// CustomClaims contains the identity data the gateway needs beyond `sub`.
type CustomClaims struct {
	Email  string `json:"email"`
	Status string `json:"account_status"`
}

func (c *CustomClaims) Validate(context.Context) error {
	return nil
}

// Viewer is the signed-in user a request acts for.
type Viewer struct {
	SubjectID string
	Email     string
	Status    string
	Token     string
}

func (v Viewer) Suspended() bool {
	return v.Status == StatusSuspended
}

func NewValidator(cfg Config) (*validator.Validator, error) {
	issuerURL, err := url.Parse("https://" + cfg.Issuer + "/")
	if err != nil {
		return nil, errors.Wrap(err, "parse issuer url")
	}
	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	return validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.Audience},
		validator.WithCustomClaims(func() validator.CustomClaims { return &CustomClaims{} }),
		validator.WithAllowedClockSkew(time.Minute),
	)
}

type restrictedResponse struct {
	Message    string `json:"message"`
	Restricted bool   `json:"restricted"`
}

// Middleware authenticates the bearer token, applies the sign-in domain
// restriction and turns suspended accounts away.
func Middleware(v TokenValidator, allowedDomain string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authorization := c.Request().Header.Get(AuthorizationHeader)
			if authorization == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No Authorization Header")
			}
			if !strings.HasPrefix(authorization, bearer) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization Header")
			}
			token := strings.TrimPrefix(authorization, bearer)

			raw, err := v.ValidateToken(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Token")
			}
			viewer, err := viewerFromClaims(raw, token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			if !emailInDomain(viewer.Email, allowedDomain) {
				return echo.NewHTTPError(http.StatusForbidden, "email domain is not allowed")
			}
			if viewer.Suspended() {
				return c.JSON(http.StatusForbidden, restrictedResponse{Message: "account suspended", Restricted: true})
			}

			req := c.Request()
			c.SetRequest(req.WithContext(SetViewer(req.Context(), viewer)))
			return next(c)
		}
	}
}

func viewerFromClaims(raw interface{}, token string) (Viewer, error) {
	claims, ok := raw.(*validator.ValidatedClaims)
	if !ok {
		return Viewer{}, errors.New("unexpected claims type")
	}
	if claims.RegisteredClaims.Subject == "" {
		return Viewer{}, errors.New("token has no subject")
	}
	viewer := Viewer{SubjectID: claims.RegisteredClaims.Subject, Token: token}
	if custom, ok := claims.CustomClaims.(*CustomClaims); ok && custom != nil {
		viewer.Email = custom.Email
		viewer.Status = custom.Status
	}
	return viewer, nil
}

func emailInDomain(email, domain string) bool {
	if domain == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(strings.TrimPrefix(domain, "@")))
}

type viewerKey struct{}

func SetViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

func ViewerFrom(ctx context.Context) (Viewer, bool) {
	v, ok := ctx.Value(viewerKey{}).(Viewer)
	return v, ok
}
