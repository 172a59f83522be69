package middleware

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
)

// AdminAuth guards the admin API with a static bearer key. onFailure runs
// for every rejected attempt before the 401 is written. An empty key
// rejects every request.
func AdminAuth(apiKey string, onFailure func(c *fiber.Ctx)) fiber.Handler {
	want := sha256.Sum256([]byte(apiKey))
	return keyauth.New(keyauth.Config{
		KeyLookup:  "header:" + fiber.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			if apiKey == "" {
				return false, keyauth.ErrMissingOrMalformedAPIKey
			}
			got := sha256.Sum256([]byte(key))
			if subtle.ConstantTimeCompare(got[:], want[:]) != 1 {
				return false, keyauth.ErrMissingOrMalformedAPIKey
			}
			return true, nil
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			if onFailure != nil {
				onFailure(c)
			}
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or missing API key")
		},
	})
}
