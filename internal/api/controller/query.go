package controller

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
)

// Optional query parameters stay nil when absent so the services can fall
// back to configured defaults.

func queryFloat(ctx echo.Context, name string) (*float64, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", constants.ErrBadRequest, name, raw)
	}
	return &v, nil
}

func queryInt(ctx echo.Context, name string) (*int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", constants.ErrBadRequest, name, raw)
	}
	return &v, nil
}

// queryList collects a repeated parameter, dropping empty values.
func queryList(ctx echo.Context, name string) []string {
	var out []string
	for _, v := range ctx.QueryParams()[name] {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
