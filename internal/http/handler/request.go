package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sitecms/internal/service"
)

// clientIP resolves the caller address from proxy headers, falling back to
// the socket peer. The result is informational (audit rows, stored
// submissions) and must not key anything security relevant.
func clientIP(c *fiber.Ctx) string {
	return service.ResolveClientIP(func(name string) string { return c.Get(name) }, c.IP())
}

func requestMeta(c *fiber.Ctx) service.RequestMeta {
	return service.RequestMeta{
		IP:        clientIP(c),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}

// parsePage reads limit and offset. Out-of-range values are clamped by the
// services; only non-numeric input is rejected.
func parsePage(c *fiber.Ctx) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid limit")
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid offset")
	}
	return limit, offset, nil
}

// parseUnread reads the optional unread filter.
func parseUnread(c *fiber.Ctx) (*bool, error) {
	raw := c.Query("unread")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid unread filter")
	}
	return &v, nil
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// formFile returns the first file under field, or nil when the form has
// none. The returned close func is always safe to call.
func formFile(c *fiber.Ctx, field string) (*service.UploadFile, func(), error) {
	noop := func() {}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, noop, fiber.NewError(fiber.StatusBadRequest, "malformed multipart form")
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, noop, nil
	}

	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return nil, noop, fiber.NewError(fiber.StatusBadRequest, "cannot open uploaded file")
	}
	return &service.UploadFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
	}, func() { _ = f.Close() }, nil
}

// requiredFile is formFile for endpoints where the upload is the point.
func requiredFile(c *fiber.Ctx, field string) (*service.UploadFile, func(), error) {
	if !isMultipart(c) {
		return nil, func() {}, fiber.NewError(fiber.StatusBadRequest, "multipart form with a "+field+" field is required")
	}
	f, closeFn, err := formFile(c, field)
	if err != nil {
		return nil, closeFn, err
	}
	if f == nil {
		return nil, closeFn, fiber.NewError(fiber.StatusBadRequest, field+" is required")
	}
	return f, closeFn, nil
}
