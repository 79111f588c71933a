package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/domain/dto"
)

func (c *Controller) GetSchema(ctx echo.Context) error {
	req := dto.SchemaRequest{ProductType: domain.ProductType(ctx.QueryParam("product"))}

	var err error
	if req.ClinkerRatio, err = queryFloat(ctx, "clinker_ratio"); err != nil {
		return err
	}
	if req.Resistance, err = queryFloat(ctx, "resistance"); err != nil {
		return err
	}
	if req.ClassCount, err = queryInt(ctx, "class_count"); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	schema, err := c.footprint.Schema(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, schema)
}

func (c *Controller) Classify(ctx echo.Context) error {
	var req dto.ClassifyRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	result, err := c.footprint.Classify(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, result)
}
