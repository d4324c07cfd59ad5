package routes

import (
	"Invoice-Processing-System/internal/api/handlers"
	"Invoice-Processing-System/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	InvoiceHandler handlers.InvoiceHandler
	Middleware     middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.Recover())
	c.App.Use(c.Middleware.RequestID())
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Invoices()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Invoices() {
	// ingestion
	c.App.Post("/upload-invoice", c.InvoiceHandler.UploadInvoice)

	// query and export
	c.App.Get("/get-invoices", c.InvoiceHandler.GetInvoices)
	c.App.Get("/view-csv", c.InvoiceHandler.ViewInvoices)
	c.App.Get("/get-invoice/:invoice_number", c.InvoiceHandler.GetInvoice)
	c.App.Get("/download-invoices-csv", c.InvoiceHandler.DownloadInvoicesCSV)
	c.App.Get("/download-invoices-xlsx", c.InvoiceHandler.DownloadInvoicesXLSX)
	c.App.Delete("/delete-invoice/:invoice_number", c.InvoiceHandler.DeleteInvoice)
}
