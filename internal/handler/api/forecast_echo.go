package api

import (
	"errors"
	"net/http"
	"strings"

	models "StockCast/internal/domain/models"
	"StockCast/internal/usecase"
	xhttp "StockCast/pkg/http"
	xlogger "StockCast/pkg/logger"
	xutil "StockCast/pkg/util"

	"github.com/labstack/echo/v4"
)

// previewLen is how much of the raw data field is logged per request.
const previewLen = 50

// ForecastEchoHandler serves the liveness probe and the prediction route.
type ForecastEchoHandler struct {
	logger     *xlogger.Logger
	forecaster *usecase.Forecaster
}

func NewForecastEchoHandler(logger *xlogger.Logger, forecaster *usecase.Forecaster) *ForecastEchoHandler {
	return &ForecastEchoHandler{logger: logger, forecaster: forecaster}
}

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/predict", h.Predict)
}

// Health reports process liveness only; it does not look at model slots.
func (h *ForecastEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, xhttp.StatusBody{Status: "ok"})
}

func (h *ForecastEchoHandler) Predict(c echo.Context) error {
	form := &models.PredictForm{}
	bindErr := xhttp.ReadAndValidateRequest(c, form)

	h.logger.Info("received prediction request",
		xlogger.String("model", form.Model),
		xlogger.String("data_sample", xutil.Preview(form.Data, previewLen)),
	)

	if bindErr != nil {
		return h.fail(c, usecase.ErrMissingInput())
	}

	req, err := usecase.ParseRequest(*form)
	if err != nil {
		return h.fail(c, err)
	}

	res, err := h.forecaster.Forecast(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) fail(c echo.Context, err error) error {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.logger.Error("prediction error", xlogger.String("code", appErr.Code), xlogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, appErr)
}

// toAppError maps each forecast error kind to a fixed status.
func toAppError(err error) *xhttp.AppError {
	var fe *usecase.Error
	if !errors.As(err, &fe) {
		return xhttp.InternalError("Internal server error: " + err.Error()).WithError(err)
	}
	var status int
	switch fe.Kind {
	case usecase.KindMissingInput, usecase.KindNonNumericInput, usecase.KindInsufficientHistory:
		status = http.StatusBadRequest
	default:
		// model_unavailable and inference_failure
		status = http.StatusInternalServerError
	}
	return xhttp.NewAppError("ERR_"+strings.ToUpper(fe.Kind.String()), "", fe.Message, status).WithError(err)
}
