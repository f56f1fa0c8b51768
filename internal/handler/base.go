package handler

import (
	"net/http"
	"time"

	"github.com/deppfellow/book-inventory/internal/errs"
	"github.com/deppfellow/book-inventory/internal/middleware"
	"github.com/deppfellow/book-inventory/internal/server"
	"github.com/deppfellow/book-inventory/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Handler is embedded by the concrete handlers to reach the server container.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint. Req is a pointer so binding can fill it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// endpoint is the per-route configuration of a typed handler.
type endpoint struct {
	status  int
	failure string
}

// call tracks one request through the bind and run phases.
type call struct {
	started time.Time
	logger  zerolog.Logger
	txn     *newrelic.Transaction
}

func (ep endpoint) begin(c echo.Context) *call {
	route := c.Path()

	cl := &call{
		started: time.Now(),
		logger:  middleware.GetLogger(c).With().Str("route", route).Logger(),
		txn:     newrelic.FromContext(c.Request().Context()),
	}
	if cl.txn != nil {
		cl.txn.AddAttribute("handler.name", route)
	}

	cl.logger.Info().Msg("handling request")
	return cl
}

// phase records the outcome and duration of a pipeline phase on the
// transaction.
func (cl *call) phase(name, outcome string, d time.Duration) {
	if cl.txn == nil {
		return
	}
	cl.txn.AddAttribute(name+".status", outcome)
	cl.txn.AddAttribute(name+".duration_ms", d.Milliseconds())
}

func (cl *call) notice(err error) {
	if cl.txn != nil {
		cl.txn.NoticeError(nrpkgerrors.Wrap(err))
	}
}

// bindFailed answers a payload that could not be bound or validated. The
// client sees only the route's failure message.
func (ep endpoint) bindFailed(cl *call, err error, d time.Duration) error {
	cl.logger.Error().
		Err(err).
		Dur("validation_duration", d).
		Msg("request validation failed")

	cl.notice(err)
	cl.phase("validation", "failed", d)

	return errs.NewInternalServerError(ep.failure, err)
}

// runFailed classifies a handler error. 4xx outcomes such as not found are
// answered as they are; everything else becomes a 500 with the route's
// failure message while the cause stays in the logs.
func (ep endpoint) runFailed(cl *call, err error, d time.Duration) error {
	var httpErr *errs.HTTPError
	isHTTP := errors.As(err, &httpErr)

	if isHTTP && httpErr.Status < http.StatusInternalServerError {
		cl.logger.Info().
			Int("status", httpErr.Status).
			Dur("handler_duration", d).
			Msg(httpErr.Message)

		cl.phase("handler", "client_error", d)
		return err
	}

	cl.logger.Error().
		Stack().
		Err(err).
		Dur("handler_duration", d).
		Dur("total_duration", time.Since(cl.started)).
		Msg("handler execution failed")

	cl.notice(err)
	cl.phase("handler", "error", d)

	if isHTTP {
		return err
	}
	return errs.NewInternalServerError(ep.failure, err)
}

// Handle adapts a typed handler to echo. The payload is built by newReq, bound,
// validated and handed to handler; the result is written as JSON with status.
// failure is the message of every 500 the route produces.
//
//	e.GET("/book/:id", Handle(h.Handler, h.GetBook, http.StatusOK, NewBookIDRequest, MsgFetchBookFailed))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
	failure string,
) echo.HandlerFunc {
	ep := endpoint{status: status, failure: failure}

	return func(c echo.Context) error {
		cl := ep.begin(c)
		req := newReq()

		bindStart := time.Now()
		if err := validation.BindAndValidate(c, req); err != nil {
			return ep.bindFailed(cl, err, time.Since(bindStart))
		}
		bindDuration := time.Since(bindStart)
		cl.phase("validation", "success", bindDuration)

		runStart := time.Now()
		result, err := handler(c, req)
		runDuration := time.Since(runStart)
		if err != nil {
			return ep.runFailed(cl, err, runDuration)
		}

		cl.phase("handler", "success", runDuration)
		if cl.txn != nil {
			cl.txn.AddAttribute("total.duration_ms", time.Since(cl.started).Milliseconds())
		}

		cl.logger.Info().
			Dur("validation_duration", bindDuration).
			Dur("handler_duration", runDuration).
			Dur("total_duration", time.Since(cl.started)).
			Msg("request completed successfully")

		return c.JSON(ep.status, result)
	}
}
