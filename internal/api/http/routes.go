package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/today-forecast/internal/notice"
	"github.com/i474232898/today-forecast/internal/resolver"
	"github.com/i474232898/today-forecast/internal/state"
	"github.com/i474232898/today-forecast/internal/store"
	"github.com/i474232898/today-forecast/internal/units"
	"github.com/i474232898/today-forecast/internal/view"
	"github.com/i474232898/today-forecast/internal/weather"
)

var validate = validator.New()

// Deps are the components the HTTP surface drives.
type Deps struct {
	Resolver    *resolver.Resolver
	Stores      resolver.Stores
	Coordinator *view.Coordinator
	History     *store.MemoryStore
	Notices     *notice.Board
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/today", func(c *fiber.Ctx) error {
		return c.JSON(d.Coordinator.Current(requestLocale(c)))
	})

	v1.Post("/location/gps", func(c *fiber.Ctx) error {
		res, err := d.Resolver.Resolve(c.UserContext())
		switch {
		case errors.Is(err, resolver.ErrInProgress):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case errors.Is(err, resolver.ErrLocationUnavailable), errors.Is(err, resolver.ErrNetwork):
			body := fiber.Map{
				"error":  true,
				"notice": res.Notice,
				"view":   d.Coordinator.Current(requestLocale(c)),
			}
			if res.Notice != nil {
				body["message"] = res.Notice.Message
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(body)
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "failed to resolve location")
		}

		return c.JSON(fiber.Map{
			"result": res,
			"view":   d.Coordinator.Current(requestLocale(c)),
		})
	})

	v1.Put("/ui/units", func(c *fiber.Ctx) error {
		var req unitsRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		unit, err := units.ParseUnit(req.Unit)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		action := state.Action{Type: state.ActionSetUnits, Payload: unit == units.Celsius}
		if err := d.Stores.Ui.Dispatch(action); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update units")
		}
		return c.JSON(d.Coordinator.Current(requestLocale(c)))
	})

	v1.Get("/location", func(c *fiber.Ctx) error {
		loc := d.Stores.Location.State()
		if loc.IsZero() {
			return fiber.NewError(fiber.StatusNotFound, "no location resolved yet")
		}
		return c.JSON(loc)
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		forecast := d.Stores.Weather.State()
		if len(forecast) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no weather data yet")
		}
		return c.JSON(forecast)
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := req.Location.toLocation()
		entries, err := d.History.Range(loc, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read history")
		}

		return c.JSON(fiber.Map{
			"location": loc,
			"from":     req.From,
			"to":       req.To,
			"entries":  entries,
		})
	})

	v1.Get("/notices", func(c *fiber.Ctx) error {
		return c.JSON(d.Notices.Pending())
	})

	v1.Delete("/notices/:id", func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid notice id")
		}
		if err := d.Notices.Ack(id); err != nil {
			if errors.Is(err, notice.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// requestLocale prefers ?locale= over the Accept-Language header.
func requestLocale(c *fiber.Ctx) string {
	if l := c.Query("locale"); l != "" {
		return l
	}
	return c.Get(fiber.HeaderAcceptLanguage)
}

// unitsRequest.Unit is checked by units.ParseUnit.
type unitsRequest struct {
	Unit string `json:"unit" validate:"required"`
}

// locationQuery identifies a place by WOEID or, when it has none, by name.
type locationQuery struct {
	WOEID int64
	Name  string `validate:"required_without=WOEID"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		Name:  l.Name,
		WOEID: l.WOEID,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.Name = c.Query("name")
	if raw := c.Query("woeid"); raw != "" {
		woeid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, errors.New("woeid must be an integer")
		}
		q.WOEID = woeid
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
