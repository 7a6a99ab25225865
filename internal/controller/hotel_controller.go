package controller

import (
	"hotel-booking-be/internal/dto"
	"hotel-booking-be/internal/pkg/serverutils"
	"hotel-booking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHotelController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	MyHotels(ctx *fiber.Ctx) error
	Bookings(ctx *fiber.Ctx) error
}

type hotelController struct {
	hotels   service.IHotelService
	bookings service.IBookingService
}

func NewHotelController(hotels service.IHotelService, bookings service.IBookingService) IHotelController {
	return &hotelController{hotels: hotels, bookings: bookings}
}

func (c *hotelController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/hotels")

	// Public catalogue
	h.Get("/", c.List)
	h.Get("/:id", c.Show)

	// Owner routes
	h.Post("/", serverutils.JwtMiddleware, c.Create)
	h.Get("/mine/list", serverutils.JwtMiddleware, c.MyHotels)
	h.Get("/:id/bookings", serverutils.JwtMiddleware, c.Bookings)
}

func (c *hotelController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateHotelRequest
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

	res, err := c.hotels.Create(ctx.Context(), actor, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Hotel listing created", res))
}

func (c *hotelController) List(ctx *fiber.Ctx) error {
	res, err := c.hotels.ListApproved(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Hotels", res))
}

func (c *hotelController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid hotel id"))
	}

	res, err := c.hotels.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Hotel details", res))
}

func (c *hotelController) MyHotels(ctx *fiber.Ctx) error {
	actor, err := serverutils.PrincipalFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.hotels.MyHotels(ctx.Context(), actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("My hotels", res))
}

func (c *hotelController) Bookings(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid hotel id"))
	}

	actor, err := serverutils.PrincipalFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.bookings.HotelBookings(ctx.Context(), actor, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Hotel bookings", res))
}
