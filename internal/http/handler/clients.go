package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/service"
)

// ListClients godoc
// @Summary List clients in display order
// @Tags public
// @Produce json
// @Success 200 {array} model.Client
// @Router /api/clients [get]
func ListClients(svc ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// @Router /api/admin/clients/{id} [get]
func GetClient(svc ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(cl)
	}
}

// CreateClient godoc
// @Summary Add a client
// @Tags admin
// @Accept json
// @Produce json
// @Param body body service.ClientInput true "Client"
// @Success 201 {object} model.Client
// @Failure 400 {object} errorPayload
// @Router /api/admin/clients [post]
func CreateClient(svc ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ClientInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
		}
		cl, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(cl)
	}
}

// UpdateClient replaces a client's fields. An empty logo_url keeps the logo.
// @Router /api/admin/clients/{id} [put]
func UpdateClient(svc ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ClientInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
		}
		cl, err := svc.Update(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return err
		}
		return c.JSON(cl)
	}
}

// @Router /api/admin/clients/{id} [delete]
func DeleteClient(svc ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// @Router /api/admin/clients/{id}/logo [post]
func UploadClientLogo(svc ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, closeFn, err := requiredFile(c, "file")
		defer closeFn()
		if err != nil {
			return err
		}
		cl, err := svc.ReplaceLogo(c.UserContext(), c.Params("id"), *f)
		if err != nil {
			return err
		}
		return c.JSON(cl)
	}
}

// @Router /api/admin/clients/{id}/logo [delete]
func ClearClientLogo(svc ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := svc.ClearLogo(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(cl)
	}
}
