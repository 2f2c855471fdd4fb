package httpapi

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-assistant/internal/store"
	"github.com/i474232898/weather-assistant/internal/weather"
)

var validate = validator.New()

const welcomeMessage = "Welcome to the weather assistant!"

// Service is the part of weather.Service the HTTP layer depends on.
type Service interface {
	Answer(ctx context.Context, question string) (weather.Answer, error)
	Manage(ctx context.Context, command string) (any, error)
	Records(ctx context.Context) ([]weather.Record, error)
	Record(ctx context.Context, city string) (weather.Record, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service Service) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(welcomeMessage)
	})

	w := app.Group("/weather")

	w.Post("/", func(c *fiber.Ctx) error {
		var req queryRequest
		if err := bindBody(c, &req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		answer, err := service.Answer(c.UserContext(), req.Query)
		if err != nil {
			log.Printf("ERROR: answering weather query: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(answer)
	})

	w.Post("/manage-weather", func(c *fiber.Ctx) error {
		var req manageRequest
		if err := bindBody(c, &req); err != nil {
			return manageError(c, err)
		}

		data, err := service.Manage(c.UserContext(), req.Command)
		if err != nil {
			log.Printf("ERROR: managing weather data: %v", err)
			return manageError(c, err)
		}

		return c.JSON(fiber.Map{
			"message": "Operation successful",
			"data":    data,
		})
	})

	w.Get("/records", func(c *fiber.Ctx) error {
		records, err := service.Records(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather records")
		}
		return c.JSON(records)
	})

	w.Get("/records/:city", func(c *fiber.Ctx) error {
		city, err := url.PathUnescape(c.Params("city"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid city")
		}
		city = strings.TrimSpace(city)
		record, err := service.Record(c.UserContext(), city)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data for requested city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather record")
		}
		return c.JSON(record)
	})
}

// clientMessages holds the wire text for sentinels whose Go error strings differ.
var clientMessages = []struct {
	err     error
	message string
}{
	{weather.ErrUnknownOperation, "Unknown operation type."},
	{weather.ErrInvalidCity, "Invalid city"},
}

func manageError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Error managing weather data",
		"details": clientDetails(err),
	})
}

// clientDetails maps sentinels to their wire text. Validation messages pass through unchanged.
func clientDetails(err error) string {
	var verr *weather.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	for _, m := range clientMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return err.Error()
}

// ErrorHandler renders every fiber error as a JSON body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

type queryRequest struct {
	Query string `json:"query" validate:"required"`
}

type manageRequest struct {
	Command string `json:"command" validate:"required"`
}

func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errors.New("request body must be JSON")
	}
	return validate.Struct(out)
}
