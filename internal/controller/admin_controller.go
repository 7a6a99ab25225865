package controller

import (
	"hotel-booking-be/internal/dto"
	"hotel-booking-be/internal/pkg/logger"
	"hotel-booking-be/internal/pkg/serverutils"
	"hotel-booking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	SetHotelStatus(ctx *fiber.Ctx) error
	IssueRefund(ctx *fiber.Ctx) error
	HardDeleteBooking(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	hotels   service.IHotelService
	bookings service.IBookingService
	logger   logger.ILogger
}

func NewAdminController(hotels service.IHotelService, bookings service.IBookingService, log logger.ILogger) IAdminController {
	return &adminController{hotels: hotels, bookings: bookings, logger: log}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireAdmin)

	h.Patch("/hotels/:id/status", c.SetHotelStatus)
	h.Post("/bookings/:id/refund", c.IssueRefund)
	h.Delete("/bookings/:id", c.HardDeleteBooking)
	h.Get("/logs", c.GetLogs)
}

func (c *adminController) SetHotelStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid hotel id"))
	}

	var req dto.SetHotelStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	actor, err := serverutils.PrincipalFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.hotels.SetStatus(ctx.Context(), actor, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Hotel status updated", res))
}

func (c *adminController) IssueRefund(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid booking id"))
	}

	actor, err := serverutils.PrincipalFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.bookings.IssueRefund(ctx.Context(), actor, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Refund issued", res))
}

func (c *adminController) HardDeleteBooking(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid booking id"))
	}

	actor, err := serverutils.PrincipalFromCtx(ctx)
	if err != nil {
		return err
	}

	if err := c.bookings.HardDelete(ctx.Context(), actor, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Booking deleted", nil))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	entries, err := c.logger.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Logs retrieved", entries))
}
