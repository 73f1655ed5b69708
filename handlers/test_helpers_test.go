package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"dental_care_app_go/config"
	"dental_care_app_go/models"
	"dental_care_app_go/services"
	"dental_care_app_go/services/clock/clocktest"
	"dental_care_app_go/services/pagesession"
	"dental_care_app_go/services/sessionstore"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(&models.Lead{}, &models.SessionFlag{}))
	return testDB
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:       "test",
		AppURL:            "https://delhidentalcare.com",
		EmailTestMode:     true,
		ClinicNotifyEmail: "clinic@example.com",
		AdminUser:         "admin",
	}
}

// newTestApp builds an app with a fake clock and the simulated backend
func newTestApp(t *testing.T) (*App, *clocktest.Clock) {
	t.Helper()
	clinic, err := services.LoadClinicProfile("")
	require.NoError(t, err)

	clk := clocktest.New(epoch)
	reg := pagesession.NewRegistry(pagesession.Config{
		Clock:         clk,
		Submitter:     services.NewSimulatedSubmitter(clk, 1500*time.Millisecond),
		Store:         sessionstore.NewMemoryStore(time.Hour),
		ResetDelay:    2000 * time.Millisecond,
		AutoOpenDelay: 6000 * time.Millisecond,
	})
	t.Cleanup(reg.Shutdown)

	testDB := setupTestDB(t)
	return &App{
		Config:  testConfig(),
		Clinic:  clinic,
		Pages:   reg,
		Leads:   services.NewLeadService(testDB, nil),
		Storage: services.NewLocalStorage(t.TempDir()),
	}, clk
}

func setupEcho(app *App, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set(ContextKeyApp, app)
	c.Set("config", app.Config)
	return c, rec
}

func htmxRequest(c echo.Context) {
	c.Request().Header.Set("HX-Request", "true")
}
