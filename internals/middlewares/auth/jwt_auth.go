package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	// nama cookie access token admin panel
	AccessTokenCookie = "access_token"

	// locals yang dihydrate setelah token valid
	LocUserID   = "user_id"
	LocUserName = "user_name"
)

type AuthJWTOpts struct {
	Secret string
	// LoginURL: tujuan redirect saat token tidak ada/invalid (halaman HTML).
	LoginURL string
}

// AuthJWT memverifikasi JWT dari cookie access_token (atau Bearer header)
// dan menaruh identitas user di locals untuk logging & view.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}
	loginURL := o.LoginURL
	if loginURL == "" {
		loginURL = "/login"
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx, fallback cookie
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else {
			raw = strings.TrimSpace(c.Cookies(AccessTokenCookie))
		}
		if raw == "" {
			return c.Redirect(loginURL, fiber.StatusSeeOther)
		}

		// 2) Parse + verifikasi algoritma
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return c.Redirect(loginURL, fiber.StatusSeeOther)
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return c.Redirect(loginURL, fiber.StatusSeeOther)
		}

		c.Locals("jwt_claims", claims)
		if v := strClaim(claims, "sub"); v != "" {
			c.Locals(LocUserID, v)
		}
		if v := strClaim(claims, "user_name"); v != "" {
			c.Locals(LocUserName, v)
		}

		return c.Next()
	}
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
