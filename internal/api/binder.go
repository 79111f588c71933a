package api

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
)

type serializer struct{}

// NewSerializer encodes and decodes JSON bodies with sonic.
func NewSerializer() echo.JSONSerializer {
	return serializer{}
}

func (serializer) Serialize(c echo.Context, i any, indent string) error {
	enc := sonic.ConfigStd.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (serializer) Deserialize(c echo.Context, i any) error {
	if err := sonic.ConfigStd.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json: "+err.Error()).SetInternal(err)
	}
	return nil
}

type structValidator struct {
	validate *validator.Validate
}

func NewValidator() echo.Validator {
	return &structValidator{validate: validator.New()}
}

func (v *structValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return constants.WithCode(fmt.Errorf("validation: %w", err), http.StatusBadRequest)
	}
	return nil
}

type binder struct {
	echo.DefaultBinder
}

// NewBinder binds like echo's default binder and then validates the result.
func NewBinder() echo.Binder {
	return &binder{}
}

func (b *binder) Bind(i any, c echo.Context) error {
	if err := b.DefaultBinder.Bind(i, c); err != nil {
		return err
	}
	return c.Validate(i)
}
