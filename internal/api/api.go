package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/carbon4c/internal/api/controller"
	"github.com/ougirez/carbon4c/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIService struct {
	router *echo.Echo
}

func (svc *APIService) Serve(addr string) error {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func (svc *APIService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc.router.ServeHTTP(w, r)
}

func NewAPIService(cfg config.HTTPConfig, logLevel string, deps controller.Deps) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(gommonLevel(logLevel))
	svc.router.JSONSerializer = NewSerializer()
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.Use(middleware.RequestID())
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())
	svc.router.Use(requestIDContext)
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{echo.GET, echo.PUT, echo.POST},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	cntrl := controller.NewController(deps)

	svc.router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := svc.router.Group("/api/v1")

	gcca := api.Group("/gcca")
	gcca.GET("/schema", cntrl.GetSchema)
	gcca.POST("/classify", cntrl.Classify)

	api.GET("/records", cntrl.GetRecords)
	api.GET("/reference", cntrl.GetReference)
	api.GET("/indicators", cntrl.GetIndicators)

	companies := api.Group("/companies")
	companies.GET("", cntrl.GetCompanies)
	companies.GET("/:id/plants", cntrl.GetCompanyPlants)

	export := api.Group("/export")
	export.GET("/xlsx", cntrl.ExportXLSX)
	export.GET("/chart", cntrl.ExportChart)

	admin := api.Group("/admin")
	admin.POST("/login", cntrl.LoginAdmin)
	admin.POST("/etl", cntrl.RunETL, svc.AdminMiddleware)
	admin.POST("/aggregate/:year", cntrl.RunAggregate, svc.AdminMiddleware)
	admin.PUT("/indicators", cntrl.PutIndicators, svc.AdminMiddleware)

	return svc, nil
}

func gommonLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
