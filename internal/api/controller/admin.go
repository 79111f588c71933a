package controller

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/carbon4c/internal/domain/dto"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
)

const maxPolicyBody = 1 << 20

func (c *Controller) LoginAdmin(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	token, err := c.auth.LoginAdmin(ctx.Request().Context(), &req)
	if err != nil {
		return err
	}

	ctx.SetCookie(&http.Cookie{
		Name:     constants.CookieKeySecretToken,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(12 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	return ctx.NoContent(http.StatusNoContent)
}

func (c *Controller) RunETL(ctx echo.Context) error {
	report, err := c.etl.Run(ctx.Request().Context(), c.sources)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, report)
}

func (c *Controller) RunAggregate(ctx echo.Context) error {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		return fmt.Errorf("%w: year=%q", constants.ErrBadRequest, ctx.Param("year"))
	}

	report, err := c.footprint.Aggregate(ctx.Request().Context(), year)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, report)
}

// PutIndicators replaces the policy table with the YAML document in the
// request body.
func (c *Controller) PutIndicators(ctx echo.Context) error {
	raw, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxPolicyBody))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	indicators, err := c.policies.Parse(raw)
	if err != nil {
		return err
	}
	if err := c.policies.Sync(ctx.Request().Context(), indicators); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, indicators)
}

func (c *Controller) GetIndicators(ctx echo.Context) error {
	indicators, err := c.policies.List(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, indicators)
}
