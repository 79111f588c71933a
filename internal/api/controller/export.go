package controller

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (c *Controller) ExportXLSX(ctx echo.Context) error {
	year, err := queryInt(ctx, "year")
	if err != nil {
		return err
	}
	if year == nil {
		return fmt.Errorf("%w: year is required", constants.ErrBadRequest)
	}

	buf := &bytes.Buffer{}
	if err := c.export.WriteWorkbook(ctx.Request().Context(), buf, *year); err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=carbon4c_%d.xlsx", *year))
	return ctx.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func (c *Controller) ExportChart(ctx echo.Context) error {
	year, err := queryInt(ctx, "year")
	if err != nil {
		return err
	}
	if year == nil {
		return fmt.Errorf("%w: year is required", constants.ErrBadRequest)
	}

	buf := &bytes.Buffer{}
	if err := c.export.WriteChart(ctx.Request().Context(), buf, *year, ctx.QueryParam("indicator")); err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, "image/png", buf.Bytes())
}
