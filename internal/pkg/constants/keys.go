package constants

// Viper keys.
const (
	ViperSecretKey = "auth.secret"

	ViperLogLevel    = "log.level"
	ViperLogEncoding = "log.encoding"

	ViperHTTPAddr        = "http.addr"
	ViperHTTPAllowOrigin = "http.allow_origins"

	ViperPostgresDSN      = "postgres.dsn"
	ViperPostgresMaxConns = "postgres.max_conns"

	ViperRedisURL      = "redis.url"
	ViperRedisCacheTTL = "redis.cache_ttl"

	ViperClinkerRatio       = "gcca.clinker_ratio"
	ViperClassCount         = "gcca.class_count"
	ViperDeriveClinkerRatio = "gcca.derive_clinker_ratio"
	ViperClinkerIndicator   = "gcca.clinker_indicator"
	ViperCementIndicator    = "gcca.cement_indicator"
	ViperResistanceTable    = "gcca.resistance_table"
	ViperFootprintIndicator = "gcca.footprint_indicator"

	ViperETLSources     = "etl.sources"
	ViperETLTable       = "etl.table"
	ViperETLConcurrency = "etl.concurrency"

	ViperIndicatorsFile = "indicators.file"
)

const (
	CookieKeySecretToken = "carbon4c_admin"
	EnvPrefix            = "CARBON4C"
)
