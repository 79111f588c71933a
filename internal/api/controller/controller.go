package controller

import (
	"github.com/ougirez/carbon4c/internal/config"
	"github.com/ougirez/carbon4c/internal/service/auth"
	"github.com/ougirez/carbon4c/internal/service/etl"
	"github.com/ougirez/carbon4c/internal/service/export"
	"github.com/ougirez/carbon4c/internal/service/footprint"
	"github.com/ougirez/carbon4c/internal/service/policy"
)

type Controller struct {
	footprint *footprint.Service
	etl       *etl.Service
	policies  *policy.Service
	export    *export.Service
	auth      *auth.Service
	sources   []config.SourceEntry
}

type Deps struct {
	Footprint *footprint.Service
	ETL       *etl.Service
	Policies  *policy.Service
	Export    *export.Service
	Auth      *auth.Service
	Sources   []config.SourceEntry
}

func NewController(deps Deps) *Controller {
	return &Controller{
		footprint: deps.Footprint,
		etl:       deps.ETL,
		policies:  deps.Policies,
		export:    deps.Export,
		auth:      deps.Auth,
		sources:   deps.Sources,
	}
}
