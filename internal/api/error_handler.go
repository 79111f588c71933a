package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/carbon4c/internal/aggregate"
	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/gcca"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/ougirez/carbon4c/internal/service/etl"
	"github.com/ougirez/carbon4c/internal/service/policy"
)

// unprocessable are domain failures caused by the data, not the request.
var unprocessable = []error{
	gcca.ErrInvalidSchema,
	gcca.ErrInvalidValue,
	gcca.ErrClassCountOutRange,
	gcca.ErrNoResistanceTable,
	aggregate.ErrUndefinedAggregate,
	aggregate.ErrMissingPolicy,
	aggregate.ErrDuplicateKey,
	aggregate.ErrAlreadyAggregated,
	aggregate.ErrLevelMismatch,
	aggregate.ErrUnknownParent,
	aggregate.ErrNonFiniteValue,
	aggregate.ErrInvalidPolicy,
	policy.ErrUnknownWeight,
	policy.ErrDuplicateIndicator,
	etl.ErrNoSources,
}

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	msg := err.Error()
	code := http.StatusInternalServerError

	var (
		ce *constants.CodedError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &ce):
		code = ce.Code()
	case errors.As(err, &he):
		code = he.Code
		msg = fmt.Sprint(he.Message)
	default:
		for _, target := range unprocessable {
			if errors.Is(err, target) {
				code = http.StatusUnprocessableEntity
				break
			}
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Errorf(c.Request().Context(), "%s %s: %s", c.Request().Method, c.Path(), msg)
	}

	_ = c.JSON(code, domain.ErrorResponse{
		Message: msg,
		Code:    code,
	})
}
