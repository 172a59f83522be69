package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ServeUpload godoc
// @Summary Download a managed asset
// @Description Redirects to a presigned URL when the store supports it, otherwise streams the file.
// @Tags public
// @Param name path string true "File name"
// @Success 200
// @Success 307
// @Failure 404 {object} errorPayload
// @Router /uploads/{name} [get]
func ServeUpload(assets AssetOpener) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dl, err := assets.Open(c.UserContext(), c.Params("name"))
		if err != nil {
			return err
		}
		if dl.RedirectURL != "" {
			return c.Redirect(dl.RedirectURL, fiber.StatusTemporaryRedirect)
		}

		ct := dl.Info.ContentType
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		c.Set(fiber.HeaderContentType, ct)
		c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
		// Names are unique per upload, so the bytes behind one never change.
		c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
		if dl.Info.Size > 0 {
			c.Set(fiber.HeaderContentLength, strconv.FormatInt(dl.Info.Size, 10))
			return c.SendStream(dl.Body, int(dl.Info.Size))
		}
		return c.SendStream(dl.Body)
	}
}
