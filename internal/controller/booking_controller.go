package controller

import (
	"hotel-booking-be/internal/dto"
	"hotel-booking-be/internal/pkg/serverutils"
	"hotel-booking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookingController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	MyBookings(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type bookingController struct {
	service service.IBookingService
}

func NewBookingController(service service.IBookingService) IBookingController {
	return &bookingController{service: service}
}

func (c *bookingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/bookings")
	h.Use(serverutils.JwtMiddleware)

	h.Post("/", c.Create)
	h.Get("/", c.MyBookings)
	h.Get("/:id", c.Show)
	h.Post("/:id/cancel", c.Cancel)
}

func (c *bookingController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateBookingRequest
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

	res, err := c.service.Create(ctx.Context(), actor, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Booking created", res))
}

func (c *bookingController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid booking id"))
	}

	actor, err := serverutils.PrincipalFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), actor, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Booking details", res))
}

func (c *bookingController) MyBookings(ctx *fiber.Ctx) error {
	actor, err := serverutils.PrincipalFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.MyBookings(ctx.Context(), actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("My bookings", res))
}

func (c *bookingController) Cancel(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid booking id"))
	}

	actor, err := serverutils.PrincipalFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Cancel(ctx.Context(), actor, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Booking cancelled", res))
}
