package handler

import (
	"github.com/gofiber/fiber/v2"
)

// ListContactMessages godoc
// @Summary List contact messages
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Param unread query bool false "Only unread (true) or read (false)"
// @Router /api/admin/contact-messages [get]
func ListContactMessages(svc IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := parsePage(c)
		if err != nil {
			return err
		}
		unread, err := parseUnread(c)
		if err != nil {
			return err
		}
		res, err := svc.ListContactMessages(c.UserContext(), limit, offset, unread)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GetContactMessage returns a message with its replies.
// @Router /api/admin/contact-messages/{id} [get]
func GetContactMessage(svc IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		thread, err := svc.GetContactMessage(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(thread)
	}
}

// @Router /api/admin/contact-messages/{id}/read [patch]
func MarkContactMessageRead(svc IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		msg, err := svc.MarkContactMessageRead(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(msg)
	}
}

// @Router /api/admin/contact-messages/{id} [delete]
func DeleteContactMessage(svc IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteContactMessage(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// @Router /api/admin/job-applications [get]
func ListJobApplications(svc IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := parsePage(c)
		if err != nil {
			return err
		}
		unread, err := parseUnread(c)
		if err != nil {
			return err
		}
		res, err := svc.ListJobApplications(c.UserContext(), limit, offset, unread)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// @Router /api/admin/job-applications/{id} [get]
func GetJobApplication(svc IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		app, err := svc.GetJobApplication(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(app)
	}
}

// @Router /api/admin/job-applications/{id}/read [patch]
func MarkJobApplicationRead(svc IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		app, err := svc.MarkJobApplicationRead(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(app)
	}
}

// DeleteJobApplication removes the application and its uploaded CV.
// @Router /api/admin/job-applications/{id} [delete]
func DeleteJobApplication(svc IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteJobApplication(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListAccessLogs godoc
// @Summary List access log entries, newest first
// @Tags admin
// @Produce json
// @Router /api/admin/access-logs [get]
func ListAccessLogs(audit AccessLog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := parsePage(c)
		if err != nil {
			return err
		}
		res, err := audit.List(c.UserContext(), limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}
