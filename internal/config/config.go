// Package config loads the application configuration through viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ougirez/carbon4c/internal/gcca"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
	"github.com/spf13/viper"
)

type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	GCCA       GCCAConfig       `mapstructure:"gcca"`
	ETL        ETLConfig        `mapstructure:"etl"`
	Indicators IndicatorsConfig `mapstructure:"indicators"`
}

type LogConfig struct {
	Level    string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Encoding string `mapstructure:"encoding" validate:"oneof=json console"`
}

type HTTPConfig struct {
	Addr         string   `mapstructure:"addr" validate:"required"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns" validate:"gte=0"`
}

// RedisConfig is optional; without a URL schemas are cached in memory.
type RedisConfig struct {
	URL      string        `mapstructure:"url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type AuthConfig struct {
	Secret string `mapstructure:"secret"`
}

type GCCAConfig struct {
	ClinkerRatio       float64                `mapstructure:"clinker_ratio"`
	ClassCount         int                    `mapstructure:"class_count" validate:"min=1,max=7"`
	DeriveClinkerRatio bool                   `mapstructure:"derive_clinker_ratio"`
	ClinkerIndicator   string                 `mapstructure:"clinker_indicator" validate:"required_if=DeriveClinkerRatio true"`
	CementIndicator    string                 `mapstructure:"cement_indicator" validate:"required_if=DeriveClinkerRatio true"`
	ResistanceTable    []gcca.ResistancePoint `mapstructure:"resistance_table" validate:"dive"`
	FootprintIndicator string                 `mapstructure:"footprint_indicator" validate:"required"`
}

type ETLConfig struct {
	Concurrency int           `mapstructure:"concurrency" validate:"gte=1"`
	Table       SourceTable   `mapstructure:"table"`
	Sources     []SourceEntry `mapstructure:"sources" validate:"dive"`
}

// SourceTable names the table and columns read from each plant database.
type SourceTable struct {
	Name            string `mapstructure:"name" validate:"required"`
	IndicatorColumn string `mapstructure:"indicator_column" validate:"required"`
	YearColumn      string `mapstructure:"year_column" validate:"required"`
	MonthColumn     string `mapstructure:"month_column" validate:"required"`
	ValueColumn     string `mapstructure:"value_column" validate:"required"`
}

type SourceEntry struct {
	Path        string `mapstructure:"path" validate:"required"`
	CompanyCode string `mapstructure:"company_code" validate:"required"`
	CompanyName string `mapstructure:"company_name"`
	PlantCode   string `mapstructure:"plant_code" validate:"required"`
	PlantName   string `mapstructure:"plant_name"`
}

type IndicatorsConfig struct {
	File string `mapstructure:"file"`
}

var ErrInvalidConfig = errors.New("invalid configuration")

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.ViperLogLevel, "info")
	v.SetDefault(constants.ViperLogEncoding, "json")
	v.SetDefault(constants.ViperHTTPAddr, ":8080")
	v.SetDefault(constants.ViperHTTPAllowOrigin, []string{"http://localhost:3000"})
	v.SetDefault(constants.ViperPostgresMaxConns, 10)
	v.SetDefault(constants.ViperRedisCacheTTL, 24*time.Hour)
	v.SetDefault(constants.ViperClinkerRatio, 0.95)
	v.SetDefault(constants.ViperClassCount, gcca.DefaultClassCount)
	v.SetDefault(constants.ViperClinkerIndicator, "clinker_consumption")
	v.SetDefault(constants.ViperCementIndicator, "cement_production")
	v.SetDefault(constants.ViperFootprintIndicator, "co2_intensity")
	v.SetDefault(constants.ViperETLConcurrency, 4)
	v.SetDefault(constants.ViperETLTable+".name", "indicadores")
	v.SetDefault(constants.ViperETLTable+".indicator_column", "codigo")
	v.SetDefault(constants.ViperETLTable+".year_column", "anio")
	v.SetDefault(constants.ViperETLTable+".month_column", "mes")
	v.SetDefault(constants.ViperETLTable+".value_column", "valor")
	v.SetDefault(constants.ViperIndicatorsFile, "indicators.yaml")
}

// Load reads path (optional) and CARBON4C_* environment variables into v.
func Load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}
