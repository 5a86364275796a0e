package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"jbucks/internal/flash"
	"jbucks/internal/handlers"
	"jbucks/internal/logger"
	"jbucks/internal/models"
	"jbucks/internal/services"
	"jbucks/internal/validator"
	"jbucks/web"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integration%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Payee{}, &models.Expense{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	expenseService := services.NewExpenseService(db)
	reportService := services.NewReportService(db)
	codec := flash.NewCodec("integration-test-secret")

	expenseHandler := handlers.NewExpenseHandler(expenseService, reportService, codec)
	reportHandler := handlers.NewReportHandler(reportService, codec)

	router := gin.New()
	router.Use(gin.Recovery())
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/", reportHandler.Dashboard)
	router.GET("/payees", reportHandler.PayeeTotals)
	router.GET("/payee/*name", reportHandler.PayeeDetail)
	router.GET("/expenses", expenseHandler.ListExpenses)
	router.GET("/add", expenseHandler.NewExpenseForm)
	router.POST("/add", expenseHandler.CreateExpense)
	router.GET("/edit/:id", expenseHandler.EditExpenseForm)
	router.POST("/edit/:id", expenseHandler.UpdateExpense)
	router.POST("/delete/:id", expenseHandler.DeleteExpense)

	return &testApp{DB: db, Router: router}
}

// get performs a GET request against the test router.
func (app *testApp) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// postForm performs a form-encoded POST request against the test router.
func (app *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// follow re-issues the redirect from a 303 response, carrying its cookies so
// flash messages survive the hop like they would in a browser.
func (app *testApp) follow(t *testing.T, rec *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()

	location := rec.Header().Get("Location")
	if location == "" {
		t.Fatalf("expected a redirect to follow, got %d", rec.Code)
	}
	req := httptest.NewRequest("GET", location, nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	next := httptest.NewRecorder()
	app.Router.ServeHTTP(next, req)
	return next
}

func assertSeeOther(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("expected redirect to %s, got %s", location, got)
	}
}
