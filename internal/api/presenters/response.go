package presenters

import (
	"github.com/gofiber/fiber/v2"
)

type (
	Error struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}

	// Detail is the failure payload of the upload endpoint.
	Detail struct {
		Detail string `json:"detail"`
		Code   string `json:"code"`
	}
)

func ErrorResponse(c *fiber.Ctx, statusCode int, code string, message string) error {
	return c.Status(statusCode).JSON(Error{
		Error: message,
		Code:  code,
	})
}

func DetailResponse(c *fiber.Ctx, statusCode int, code string, message string) error {
	return c.Status(statusCode).JSON(Detail{
		Detail: message,
		Code:   code,
	})
}

func SuccessResponse(c *fiber.Ctx, data interface{}, statusCode int) error {
	return c.Status(statusCode).JSON(data)
}
