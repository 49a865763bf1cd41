package httpapi

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/activity-recommender/internal/report"
	"github.com/i474232898/activity-recommender/internal/store"
)

var (
	validate = validator.New()
	slugRe   = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

func init() {
	// Same shape as the file names the report writer accepts.
	_ = validate.RegisterValidation("cityslug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
}

// Reports is the read side of the latest-report store.
type Reports interface {
	Latest(city string) (report.Report, error)
	Cities() []string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, reports Reports) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	v1.Get("/cities", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cities": reports.Cities(),
		})
	})

	v1.Get("/recommendations", func(c *fiber.Ctx) error {
		q, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		r, err := reports.Latest(q.City)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no recommendations for requested city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch recommendations")
		}

		return c.JSON(r)
	})
}

// cityQuery holds query parameters for identifying a city.
type cityQuery struct {
	City string `validate:"required,max=64,cityslug"`
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	q := cityQuery{City: c.Query("city")}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
