package dto

import "github.com/ougirez/carbon4c/internal/domain"

type SchemaRequest struct {
	ProductType  domain.ProductType `query:"product" validate:"omitempty,oneof=cement concrete"`
	ClinkerRatio *float64           `query:"clinker_ratio"`
	Resistance   *float64           `query:"resistance" validate:"required_if=ProductType concrete"`
	ClassCount   *int               `query:"class_count" validate:"omitempty,min=1,max=7"`
}

type ClassifyRequest struct {
	Level         domain.Level       `json:"level" validate:"required,oneof=plant company national"`
	EntityID      string             `json:"entity_id" validate:"required"`
	ProductType   domain.ProductType `json:"product_type" validate:"required,oneof=cement concrete"`
	IndicatorCode string             `json:"indicator_code" validate:"required"`
	Year          domain.Year        `json:"year" validate:"required,gte=1900"`
	Month         domain.Month       `json:"month" validate:"gte=0,lte=12"`
	ClinkerRatio  *float64           `json:"clinker_ratio,omitempty"`
	Resistance    *float64           `json:"resistance,omitempty" validate:"required_if=ProductType concrete"`
	ClassCount    *int               `json:"class_count,omitempty" validate:"omitempty,min=1,max=7"`
}

type RecordsRequest struct {
	Level     domain.Level  `query:"level" validate:"required,oneof=plant company national"`
	EntityID  []string      `query:"entity_id"`
	Indicator []string      `query:"indicator"`
	Year      *domain.Year  `query:"year"`
	Month     *domain.Month `query:"month" validate:"omitempty,gte=0,lte=12"`
}

// ReferenceRequest groups records by any of entity, company, indicator,
// year and month. Every indicator becomes one summarised field.
type ReferenceRequest struct {
	Level     domain.Level `query:"level" validate:"required,oneof=plant company national"`
	Indicator []string     `query:"indicator"`
	Year      *domain.Year `query:"year"`
	GroupBy   []string     `query:"group_by" validate:"dive,oneof=entity company indicator year month"`
}

type LoginRequest struct {
	Secret string `json:"secret" validate:"required"`
}
