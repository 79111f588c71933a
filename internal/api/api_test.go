package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/ougirez/carbon4c/internal/api/controller"
	"github.com/ougirez/carbon4c/internal/config"
	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/gcca"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
	"github.com/ougirez/carbon4c/internal/service/auth"
	"github.com/ougirez/carbon4c/internal/service/etl"
	"github.com/ougirez/carbon4c/internal/service/export"
	"github.com/ougirez/carbon4c/internal/service/footprint"
	"github.com/ougirez/carbon4c/internal/service/policy"
	"github.com/ougirez/carbon4c/internal/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret"

func newTestAPI(t *testing.T) (*APIService, *testutil.MemStore) {
	t.Helper()

	viper.Set(constants.ViperSecretKey, testSecret)
	t.Cleanup(func() { viper.Set(constants.ViperSecretKey, "") })

	mem := testutil.NewMemStore()
	testutil.SeedHierarchy(t, mem)
	require.NoError(t, mem.UpsertRecords(context.Background(), []domain.IndicatorRecord{
		testutil.PlantRecord("P1", "cement_production", 2023, 1, 100),
		testutil.PlantRecord("P1", "co2_intensity", 2023, 1, 600),
		testutil.PlantRecord("P2", "cement_production", 2023, 1, 300),
		testutil.PlantRecord("P2", "co2_intensity", 2023, 1, 400),
		testutil.PlantRecord("P3", "cement_production", 2023, 1, 200),
		testutil.PlantRecord("P3", "co2_intensity", 2023, 1, 500),
	}))

	fp := footprint.NewFootprintService(mem, nil, footprint.Options{
		ClinkerRatio:       0.95,
		ClassCount:         gcca.DefaultClassCount,
		FootprintIndicator: "co2_intensity",
	})
	table := config.SourceTable{Name: "indicadores", IndicatorColumn: "codigo", YearColumn: "anio", MonthColumn: "mes", ValueColumn: "valor"}

	svc, err := NewAPIService(config.HTTPConfig{Addr: ":0"}, "error", controller.Deps{
		Footprint: fp,
		ETL:       etl.NewETLService(mem, table, 1),
		Policies:  policy.NewPolicyService(mem),
		Export:    export.NewExportService(fp, "co2_intensity"),
		Auth:      auth.NewService(testSecret),
	})
	require.NoError(t, err)

	return svc, mem
}

func do(t *testing.T, svc *APIService, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	svc.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func login(t *testing.T, svc *APIService) *http.Cookie {
	t.Helper()
	rec := do(t, svc, http.MethodPost, "/api/v1/admin/login", `{"secret":"`+testSecret+`"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == constants.CookieKeySecretToken {
			return c
		}
	}
	t.Fatal("admin cookie not set")
	return nil
}

func TestGetSchema(t *testing.T) {
	svc, _ := newTestAPI(t)

	tests := []struct {
		name   string
		query  string
		status int
		first  int64
	}{
		{name: "defaults", query: "", status: http.StatusOK, first: 120},
		{name: "ratio", query: "?clinker_ratio=0.5&class_count=3", status: http.StatusOK, first: 82},
		{name: "bad ratio", query: "?clinker_ratio=abc", status: http.StatusBadRequest},
		{name: "class count too high", query: "?class_count=9", status: http.StatusBadRequest},
		{name: "concrete without table", query: "?product=concrete&resistance=30", status: http.StatusUnprocessableEntity},
		{name: "concrete without resistance", query: "?product=concrete", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, svc, http.MethodGet, "/api/v1/gcca/schema"+tt.query, "")
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				return
			}
			schema := decode[gcca.BandSchema](t, rec)
			assert.Equal(t, tt.first, schema.Bands[1].Upper)
		})
	}
}

func TestClassify(t *testing.T) {
	svc, _ := newTestAPI(t)

	rec := do(t, svc, http.MethodPost, "/api/v1/gcca/classify",
		`{"level":"plant","entity_id":"P1","product_type":"cement","indicator_code":"co2_intensity","year":2023,"month":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[domain.ClassificationResult](t, rec)
	assert.Equal(t, "D", result.ClassLabel)
	assert.Equal(t, 600.0, result.MeasuredValue)
	assert.Len(t, result.Thresholds, 8)

	rec = do(t, svc, http.MethodPost, "/api/v1/gcca/classify",
		`{"level":"plant","entity_id":"P1","product_type":"cement","indicator_code":"co2_intensity","year":2023,"month":7}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, svc, http.MethodPost, "/api/v1/gcca/classify", `{"level":"plant"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, svc, http.MethodPost, "/api/v1/gcca/classify", `{"level":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecordsAndReference(t *testing.T) {
	svc, _ := newTestAPI(t)

	rec := do(t, svc, http.MethodGet, "/api/v1/records?level=plant&entity_id=P1&entity_id=P2&indicator=co2_intensity&year=2023", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	records := decode[[]domain.IndicatorRecord](t, rec)
	require.Len(t, records, 2)
	assert.Equal(t, "P1", records[0].EntityID)

	rec = do(t, svc, http.MethodGet, "/api/v1/records", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, svc, http.MethodGet, "/api/v1/reference?level=plant&indicator=co2_intensity&group_by=company", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	groups := decode[[]struct {
		Key    []string                      `json:"key"`
		Fields map[string]map[string]float64 `json:"fields"`
	}](t, rec)
	require.Len(t, groups, 2)
	assert.Equal(t, 500.0, groups[0].Fields["co2_intensity"]["mean"])

	rec = do(t, svc, http.MethodGet, "/api/v1/reference?level=plant&group_by=region", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompanies(t *testing.T) {
	svc, _ := newTestAPI(t)

	rec := do(t, svc, http.MethodGet, "/api/v1/companies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	companies := decode[[]domain.Company](t, rec)
	require.Len(t, companies, 2)

	rec = do(t, svc, http.MethodGet, "/api/v1/companies/1/plants", "")
	require.Equal(t, http.StatusOK, rec.Code)
	plants := decode[[]domain.Plant](t, rec)
	require.Len(t, plants, 2)
	assert.Equal(t, "P1", plants[0].Code)

	rec = do(t, svc, http.MethodGet, "/api/v1/companies/abc/plants", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin(t *testing.T) {
	svc, mem := newTestAPI(t)

	rec := do(t, svc, http.MethodPost, "/api/v1/admin/aggregate/2023", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, svc, http.MethodPost, "/api/v1/admin/login", `{"secret":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := login(t, svc)

	rec = do(t, svc, http.MethodPost, "/api/v1/admin/aggregate/2023", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode[footprint.AggregateReport](t, rec)
	assert.Equal(t, 2, report.National)

	rec = do(t, svc, http.MethodGet, "/api/v1/records?level=national&indicator=cement_production", "")
	require.Equal(t, http.StatusOK, rec.Code)
	national := decode[[]domain.IndicatorRecord](t, rec)
	require.Len(t, national, 1)
	assert.Equal(t, 600.0, national[0].Value)

	rec = do(t, svc, http.MethodPost, "/api/v1/admin/aggregate/abc", "", cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, svc, http.MethodPost, "/api/v1/admin/etl", "", cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	require.NoError(t, mem.UpsertRecords(context.Background(), []domain.IndicatorRecord{
		testutil.PlantRecord("P3", "cement_production", 2023, 1, 0),
	}))
	rec = do(t, svc, http.MethodPost, "/api/v1/admin/aggregate/2023", "", cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestPutIndicators(t *testing.T) {
	svc, _ := newTestAPI(t)
	cookie := login(t, svc)

	body := `
indicators:
  - code: cement_production
    name: Cement
    unit: t
  - code: co2_intensity
    name: CO2
    unit: kgCO2e/t
    policy: WEIGHTED_AVERAGE
    weight_code: cement_production
`
	rec := do(t, svc, http.MethodPut, "/api/v1/admin/indicators", body, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, svc, http.MethodGet, "/api/v1/indicators", "")
	require.Equal(t, http.StatusOK, rec.Code)
	indicators := decode[[]domain.Indicator](t, rec)
	var found bool
	for _, ind := range indicators {
		if ind.Code == "cement_production" {
			found = true
			assert.Equal(t, domain.PolicySum, ind.Policy)
			assert.Equal(t, "Cement", ind.Name)
		}
	}
	assert.True(t, found)

	rec = do(t, svc, http.MethodPut, "/api/v1/admin/indicators", "indicators:\n  - code: x\n    policy: WEIGHTED_AVERAGE\n    weight_code: y\n", cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestExportAndMetrics(t *testing.T) {
	svc, _ := newTestAPI(t)

	rec := do(t, svc, http.MethodGet, "/api/v1/export/xlsx?year=2023", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, rec.Body.Len())

	rec = do(t, svc, http.MethodGet, "/api/v1/export/xlsx", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, svc, http.MethodGet, "/api/v1/export/chart?year=2023", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, svc, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
