package auth

import (
	"net/http"
	"time"
)

const (
	CookieName = "token"
)

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Path     string
	MaxAge   time.Duration
	Secure   bool
	SameSite http.SameSite
}

// DefaultCookieOptions returns cross-site, https-only cookie settings with the
// given retention ceiling.
func DefaultCookieOptions(maxAge time.Duration, secure bool) CookieOptions {
	sameSite := http.SameSiteNoneMode
	if !secure {
		// Browsers drop SameSite=None cookies without Secure
		sameSite = http.SameSiteLaxMode
	}
	return CookieOptions{
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		SameSite: sameSite,
	}
}

func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	return o
}

// SetCookie issues the session cookie to the client. The cookie is always
// HttpOnly.
func SetCookie(w http.ResponseWriter, token string, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     opts.Path,
		MaxAge:   int(opts.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookie tells the client to drop the session cookie. The token itself
// stays valid until it expires unless it is also revoked.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     opts.Path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
