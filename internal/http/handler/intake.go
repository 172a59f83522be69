package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/service"
)

// SubmitContact godoc
// @Summary Send a contact message
// @Tags public
// @Accept json
// @Produce json
// @Param body body service.ContactSubmission true "Contact form"
// @Success 201 {object} successPayload
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/contact [post]
func SubmitContact(svc IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sub service.ContactSubmission
		if err := c.BodyParser(&sub); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
		}
		res, err := svc.SubmitContact(c.UserContext(), sub, requestMeta(c))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(successPayload{
			Success: true,
			Message: "Your message has been sent.",
			Data:    res,
		})
	}
}

// SubmitApplication godoc
// @Summary Apply for a job
// @Description Accepts JSON, or multipart form data with an optional "cv" file (pdf, doc, docx; 10 MiB).
// @Tags public
// @Accept json,mpfd
// @Produce json
// @Success 201 {object} successPayload
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/careers/apply [post]
func SubmitApplication(svc IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sub service.ApplicationSubmission
		if err := c.BodyParser(&sub); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
		}
		if isMultipart(c) {
			cv, closeFn, err := formFile(c, "cv")
			defer closeFn()
			if err != nil {
				return err
			}
			sub.CV = cv
		}

		res, err := svc.SubmitApplication(c.UserContext(), sub, requestMeta(c))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(successPayload{
			Success: true,
			Message: "Your application has been received.",
			Data:    res,
		})
	}
}

type replyRequest struct {
	Message string `json:"message"`
}

// ReplyToContactMessage godoc
// @Summary Reply to a contact message
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param body body replyRequest true "Reply"
// @Success 200 {object} model.ContactReply
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/admin/contact-messages/{id}/replies [post]
func ReplyToContactMessage(svc IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req replyRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
		}
		reply, err := svc.Reply(c.UserContext(), c.Params("id"), req.Message, requestMeta(c))
		if err != nil {
			return err
		}
		return c.JSON(reply)
	}
}
