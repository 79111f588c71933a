package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/domain/dto"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
)

func (c *Controller) GetRecords(ctx echo.Context) error {
	req := dto.RecordsRequest{
		Level:     domain.Level(ctx.QueryParam("level")),
		EntityID:  queryList(ctx, "entity_id"),
		Indicator: queryList(ctx, "indicator"),
	}

	var err error
	if req.Year, err = queryInt(ctx, "year"); err != nil {
		return err
	}
	if req.Month, err = queryInt(ctx, "month"); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	records, err := c.footprint.ListRecords(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, records)
}

func (c *Controller) GetReference(ctx echo.Context) error {
	req := dto.ReferenceRequest{
		Level:     domain.Level(ctx.QueryParam("level")),
		Indicator: queryList(ctx, "indicator"),
		GroupBy:   queryList(ctx, "group_by"),
	}

	var err error
	if req.Year, err = queryInt(ctx, "year"); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	groups, err := c.footprint.Reference(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, groups)
}

func (c *Controller) GetCompanies(ctx echo.Context) error {
	companies, err := c.footprint.ListCompanies(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, companies)
}

func (c *Controller) GetCompanyPlants(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return constants.ErrBadRequest
	}

	plants, err := c.footprint.ListPlants(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, plants)
}
