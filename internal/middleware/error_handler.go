package middleware

import (
	"errors"
	"net/http"

	"github.com/Kusalkumar06/eventia/internal/apperr"
	"github.com/Kusalkumar06/eventia/internal/dto"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var kindStatus = map[apperr.Kind]int{
	apperr.Internal:     http.StatusInternalServerError,
	apperr.Unauthorized: http.StatusUnauthorized,
	apperr.Forbidden:    http.StatusForbidden,
	apperr.Validation:   http.StatusBadRequest,
	apperr.NotFound:     http.StatusNotFound,
	apperr.Conflict:     http.StatusConflict,
}

func ErrorHandler(log *zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				msg = m
			}
			_ = c.JSON(he.Code, dto.ErrorResponse{Message: msg, Code: http.StatusText(he.Code)})
			return
		}

		kind := apperr.KindOf(err)
		if kind == apperr.Internal {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Msg("request failed")
		}
		_ = c.JSON(kindStatus[kind], dto.ErrorResponse{Message: apperr.PublicMessage(err), Code: kind.String()})
	}
}
