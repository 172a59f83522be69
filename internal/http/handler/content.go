package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/model"
)

// GetPublicContent godoc
// @Summary Read a content record
// @Description Returns the record for kind, creating it with defaults on first read. Private fields such as notification_email are left out.
// @Tags public
// @Produce json
// @Param kind path string true "config, privacy_policy, careers_page, hero or newsletter"
// @Success 200 {object} model.SingletonRecord
// @Failure 404 {object} errorPayload
// @Router /api/content/{kind} [get]
func GetPublicContent(svc ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.Get(c.UserContext(), c.Params("kind"))
		if err != nil {
			return err
		}
		return c.JSON(rec.Public())
	}
}

// GetContent godoc
// @Summary Read a content record with every field
// @Tags admin
// @Produce json
// @Param kind path string true "Content kind"
// @Success 200 {object} model.SingletonRecord
// @Failure 404 {object} errorPayload
// @Router /api/admin/content/{kind} [get]
func GetContent(svc ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.Get(c.UserContext(), c.Params("kind"))
		if err != nil {
			return err
		}
		return c.JSON(rec)
	}
}

// UpdateContent godoc
// @Summary Partially update a content record
// @Description Keys left out are kept; null or "" clears a field.
// @Tags admin
// @Accept json
// @Produce json
// @Param kind path string true "Content kind"
// @Success 200 {object} model.SingletonRecord
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/admin/content/{kind} [put]
func UpdateContent(svc ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		updates, err := model.ParseFieldUpdates(c.Body())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "body must be a JSON object")
		}
		rec, err := svc.Update(c.UserContext(), c.Params("kind"), updates)
		if err != nil {
			return err
		}
		return c.JSON(rec)
	}
}

// UploadContentAsset godoc
// @Summary Upload an image into an asset field
// @Tags admin
// @Accept mpfd
// @Produce json
// @Param kind path string true "Content kind"
// @Param field path string true "Asset field, e.g. logo_url"
// @Param file formData file true "Image (jpg, png, gif, webp; 5 MiB)"
// @Success 200 {object} model.SingletonRecord
// @Router /api/admin/content/{kind}/assets/{field} [post]
func UploadContentAsset(svc ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, closeFn, err := requiredFile(c, "file")
		defer closeFn()
		if err != nil {
			return err
		}
		rec, err := svc.ReplaceAsset(c.UserContext(), c.Params("kind"), c.Params("field"), *f)
		if err != nil {
			return err
		}
		return c.JSON(rec)
	}
}

// ClearContentAsset godoc
// @Summary Remove an asset from a content record
// @Description Clears the field and deletes the stored file.
// @Tags admin
// @Produce json
// @Param kind path string true "Content kind"
// @Param field path string true "Asset field, e.g. logo_url"
// @Success 200 {object} model.SingletonRecord
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/admin/content/{kind}/assets/{field} [delete]
func ClearContentAsset(svc ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.ClearAsset(c.UserContext(), c.Params("kind"), c.Params("field"))
		if err != nil {
			return err
		}
		return c.JSON(rec)
	}
}
