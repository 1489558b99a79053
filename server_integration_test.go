package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	logger = zap.NewNop()
	initDB(Config{DBDSN: os.Getenv("DB_DSN"), AutoMigrate: true})
	r := gin.New()
	setupRoutes(r)
	return r
}

// registerAndLogin creates a fresh manager and returns a bearer token.
func registerAndLogin(t *testing.T, r *gin.Engine) string {
	t.Helper()
	email := fmt.Sprintf("manager-%d@example.com", time.Now().UnixNano())
	resp := performRequest(r, http.MethodPost, "/auth/register", jsonBody(t, gin.H{
		"email":      email,
		"password":   "Str0ng!pass",
		"first_name": "Test",
		"last_name":  "Manager",
	}), "")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = performRequest(r, http.MethodPost, "/auth/login", jsonBody(t, gin.H{
		"email":    email,
		"password": "Str0ng!pass",
	}), "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var loginResp map[string]any
	decode(t, resp, &loginResp)
	token, _ := loginResp["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createWorkplace(t *testing.T, r *gin.Engine, token, name string) uint {
	t.Helper()
	resp := performRequest(r, http.MethodPost, "/workplaces", jsonBody(t, gin.H{
		"name":    name,
		"address": "ul. Testowa 1",
	}), token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var body map[string]any
	decode(t, resp, &body)
	return uint(body["id"].(float64))
}

func createEmployee(t *testing.T, r *gin.Engine, token, firstName string) uint {
	t.Helper()
	resp := performRequest(r, http.MethodPost, "/employees", jsonBody(t, gin.H{
		"first_name":  firstName,
		"last_name":   "Kowalski",
		"email":       fmt.Sprintf("emp-%d@example.com", time.Now().UnixNano()),
		"hourly_rate": 25.50,
	}), token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var body map[string]any
	decode(t, resp, &body)
	return uint(body["id"].(float64))
}

func TestAuthRequired(t *testing.T) {
	r := setupTestServer(t)
	resp := performRequest(r, http.MethodGet, "/employees", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	resp = performRequest(r, http.MethodGet, "/employees", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestProfileManagement(t *testing.T) {
	r := setupTestServer(t)
	email := fmt.Sprintf("profile-%d@example.com", time.Now().UnixNano())
	resp := performRequest(r, http.MethodPost, "/auth/register", jsonBody(t, gin.H{
		"email":      email,
		"password":   "Str0ng!pass",
		"first_name": "Ewa",
		"last_name":  "Lis",
	}), "")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	resp = performRequest(r, http.MethodPost, "/auth/login", jsonBody(t, gin.H{
		"email":    email,
		"password": "Str0ng!pass",
	}), "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var loginResp map[string]any
	decode(t, resp, &loginResp)
	token := loginResp["access_token"].(string)

	resp = performRequest(r, http.MethodGet, "/users/profile", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	var profile map[string]any
	decode(t, resp, &profile)
	assert.Equal(t, email, profile["email"])
	assert.Equal(t, "Ewa", profile["first_name"])

	// Name and email update; the new address must not be taken.
	newEmail := fmt.Sprintf("renamed-%d@example.com", time.Now().UnixNano())
	resp = performRequest(r, http.MethodPut, "/users/profile", jsonBody(t, gin.H{
		"first_name": "Ewelina",
		"email":      newEmail,
	}), token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	decode(t, resp, &profile)
	assert.Equal(t, "Ewelina", profile["first_name"])
	assert.Equal(t, "Lis", profile["last_name"])
	assert.Equal(t, newEmail, profile["email"])

	otherEmail := fmt.Sprintf("other-%d@example.com", time.Now().UnixNano())
	resp = performRequest(r, http.MethodPost, "/auth/register", jsonBody(t, gin.H{
		"email":      otherEmail,
		"password":   "Str0ng!pass",
		"first_name": "Jan",
		"last_name":  "Nowak",
	}), "")
	require.Equal(t, http.StatusCreated, resp.Code)
	resp = performRequest(r, http.MethodPut, "/users/profile", jsonBody(t, gin.H{"email": otherEmail}), token)
	assert.Equal(t, http.StatusBadRequest, resp.Code, "taken email must be rejected")
	assert.Contains(t, resp.Body.String(), "already registered")

	// Password change: wrong current password and weak new password both fail.
	resp = performRequest(r, http.MethodPut, "/users/profile/password", jsonBody(t, gin.H{
		"current_password": "WrongPass1!",
		"new_password":     "N3w!password",
	}), token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "current password is incorrect")
	resp = performRequest(r, http.MethodPut, "/users/profile/password", jsonBody(t, gin.H{
		"current_password": "Str0ng!pass",
		"new_password":     "weak",
	}), token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = performRequest(r, http.MethodPut, "/users/profile/password", jsonBody(t, gin.H{
		"current_password": "Str0ng!pass",
		"new_password":     "N3w!password",
	}), token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// Old credentials are gone, the new ones work with the updated email.
	resp = performRequest(r, http.MethodPost, "/auth/login", jsonBody(t, gin.H{
		"email":    newEmail,
		"password": "Str0ng!pass",
	}), "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	resp = performRequest(r, http.MethodPost, "/auth/login", jsonBody(t, gin.H{
		"email":    newEmail,
		"password": "N3w!password",
	}), "")
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func TestCostAggregationWindows(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r)
	wID := createWorkplace(t, r, token, "Magazyn")

	for _, c := range []struct {
		amount float64
		date   string
	}{
		{100, "2024-03-05"},
		{50, "2024-04-01"},
	} {
		resp := performRequest(r, http.MethodPost, fmt.Sprintf("/workplaces/%d/costs", wID), jsonBody(t, gin.H{
			"description": "materiały",
			"amount":      c.amount,
			"date":        c.date,
		}), token)
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	}

	// March window picks up only the March entry; the boundary start day is
	// inclusive.
	resp := performRequest(r, http.MethodPost, "/reports/stats", jsonBody(t, gin.H{
		"start_date": "2024-03-01",
		"end_date":   "2024-03-31",
		"type":       "workplace",
	}), token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var stats map[string]any
	decode(t, resp, &stats)
	workplaces := stats["workplaces"].([]any)
	require.Len(t, workplaces, 1)
	ws := workplaces[0].(map[string]any)
	assert.EqualValues(t, 100, ws["total_costs"])
	assert.EqualValues(t, -100, ws["total_profit"])

	// The April entry sits exactly on the month start; monthly equals the
	// range sum over the calendar month.
	resp = performRequest(r, http.MethodGet, "/reports/monthly?year=2024&month=4&type=workplace", nil, token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	decode(t, resp, &stats)
	ws = stats["workplaces"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 50, ws["total_costs"])

	// End boundary is inclusive too.
	resp = performRequest(r, http.MethodPost, "/reports/stats", jsonBody(t, gin.H{
		"start_date": "2024-03-01",
		"end_date":   "2024-04-01",
		"type":       "workplace",
	}), token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	decode(t, resp, &stats)
	ws = stats["workplaces"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 150, ws["total_costs"])
}

func TestRevenueAttribution(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r)
	wID := createWorkplace(t, r, token, "Sklep")
	eID := createEmployee(t, r, token, "Jan")

	// Workplace revenue credited to the employee.
	resp := performRequest(r, http.MethodPost, fmt.Sprintf("/workplaces/%d/revenues", wID), jsonBody(t, gin.H{
		"description": "sprzedaż",
		"amount":      300,
		"date":        "2024-03-10",
		"employee_id": eID,
	}), token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	// Assignment covering March, then direct employee revenue inside it.
	resp = performRequest(r, http.MethodPost, fmt.Sprintf("/workplaces/%d/employees", wID), jsonBody(t, gin.H{
		"employee_id": eID,
		"start_date":  "2024-03-01",
	}), token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	resp = performRequest(r, http.MethodPost, fmt.Sprintf("/employees/%d/revenues", eID), jsonBody(t, gin.H{
		"description": "usługa",
		"amount":      70,
		"date":        "2024-03-15",
	}), token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = performRequest(r, http.MethodPost, "/reports/stats", jsonBody(t, gin.H{
		"start_date": "2024-03-01",
		"end_date":   "2024-03-31",
	}), token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var stats map[string]any
	decode(t, resp, &stats)

	ws := stats["workplaces"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 370, ws["total_revenues"], "workplace revenue includes assignment-attributed direct revenue")

	es := stats["employees"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 370, es["total_revenues"], "employee revenue combines workplace-attributed and direct entries")
	assert.EqualValues(t, 370, es["total_profit"])
}

func TestScheduleDailyCap(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r)
	wID := createWorkplace(t, r, token, "Biuro")
	eID := createEmployee(t, r, token, "Anna")

	post := func(date string, hours float64) *httptest.ResponseRecorder {
		return performRequest(r, http.MethodPost, "/schedules", jsonBody(t, gin.H{
			"workplace_id": wID,
			"employee_id":  eID,
			"date":         date,
			"hours":        hours,
		}), token)
	}

	require.Equal(t, http.StatusCreated, post("2024-05-01", 10).Code)
	created := post("2024-05-01", 14)
	require.Equal(t, http.StatusCreated, created.Code)
	var entry map[string]any
	decode(t, created, &entry)
	entryID := uint(entry["id"].(float64))

	resp := post("2024-05-01", 1)
	assert.Equal(t, http.StatusBadRequest, resp.Code, "the day is full, one more hour must be rejected")

	assert.Equal(t, http.StatusCreated, post("2024-05-02", 20).Code, "the next day is unaffected")

	resp = post("2024-05-03", 25)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	resp = post("2024-05-03", -2)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	resp = post("2024-05-03", 0)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "invalid number of hours")

	// Updating an entry excludes its own hours from the day total: the full
	// 10h+14h day still accepts re-saving the 14h entry, but not growing it.
	put := func(hours float64) *httptest.ResponseRecorder {
		return performRequest(r, http.MethodPut, fmt.Sprintf("/schedules/%d", entryID), jsonBody(t, gin.H{
			"workplace_id": wID,
			"employee_id":  eID,
			"date":         "2024-05-01",
			"hours":        hours,
		}), token)
	}
	assert.Equal(t, http.StatusOK, put(14).Code, "re-saving the same hours on a full day must succeed")
	resp = put(15)
	assert.Equal(t, http.StatusBadRequest, resp.Code, "growing the entry past the day cap must be rejected")
	assert.Equal(t, http.StatusOK, put(4).Code, "shrinking the entry must succeed")
	assert.Equal(t, http.StatusOK, put(14).Code)

	// Hours survive into the stats window.
	resp = performRequest(r, http.MethodPost, "/reports/stats", jsonBody(t, gin.H{
		"start_date": "2024-05-01",
		"end_date":   "2024-05-31",
		"type":       "employee",
	}), token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var stats map[string]any
	decode(t, resp, &stats)
	es := stats["employees"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 44, es["total_hours"])
}

func TestOwnershipIsolation(t *testing.T) {
	r := setupTestServer(t)
	tokenA := registerAndLogin(t, r)
	tokenB := registerAndLogin(t, r)
	eID := createEmployee(t, r, tokenA, "Piotr")
	wID := createWorkplace(t, r, tokenA, "Hala")

	// Another manager sees 404, never 403, for every verb.
	resp := performRequest(r, http.MethodGet, fmt.Sprintf("/employees/%d", eID), nil, tokenB)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = performRequest(r, http.MethodPut, fmt.Sprintf("/employees/%d", eID), jsonBody(t, gin.H{"first_name": "Hacked"}), tokenB)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/workplaces/%d", wID), nil, tokenB)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = performRequest(r, http.MethodPost, fmt.Sprintf("/workplaces/%d/costs", wID), jsonBody(t, gin.H{
		"description": "x", "amount": 1, "date": "2024-01-01",
	}), tokenB)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// The owner still has full access.
	resp = performRequest(r, http.MethodGet, fmt.Sprintf("/employees/%d", eID), nil, tokenA)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestCostRoundTrip(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r)
	eID := createEmployee(t, r, token, "Maria")

	resp := performRequest(r, http.MethodPost, "/costs", jsonBody(t, gin.H{
		"type":        "employee",
		"employee_id": eID,
		"description": "szkolenie",
		"amount":      199.99,
		"date":        "2024-06-10",
	}), token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created map[string]any
	decode(t, resp, &created)
	costID := uint(created["id"].(float64))

	resp = performRequest(r, http.MethodGet, "/costs", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	var costs []map[string]any
	decode(t, resp, &costs)
	require.NotEmpty(t, costs)
	found := false
	for _, item := range costs {
		if uint(item["id"].(float64)) == costID && item["type"] == "employee" {
			found = true
			assert.Equal(t, "szkolenie", item["description"])
			assert.EqualValues(t, 199.99, item["amount"])
			assert.Equal(t, "2024-06-10", item["date"])
		}
	}
	assert.True(t, found, "created cost must appear in the merged list")

	// Partial update through the allow-listed fields.
	resp = performRequest(r, http.MethodPut, fmt.Sprintf("/costs/employee/%d", costID), jsonBody(t, gin.H{
		"amount": 250,
	}), token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var updated map[string]any
	decode(t, resp, &updated)
	assert.EqualValues(t, 250, updated["amount"])
	assert.Equal(t, "szkolenie", updated["description"])

	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/costs/employee/%d", costID), nil, token)
	assert.Equal(t, http.StatusNoContent, resp.Code)
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/costs/employee/%d", costID), nil, token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestExcelReport(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r)
	wID := createWorkplace(t, r, token, "Fabryka")
	resp := performRequest(r, http.MethodPost, fmt.Sprintf("/workplaces/%d/costs", wID), jsonBody(t, gin.H{
		"description": "energia",
		"amount":      150,
		"date":        "2024-03-05",
	}), token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = performRequest(r, http.MethodPost, "/reports/excel", jsonBody(t, gin.H{
		"start_date": "2024-03-01",
		"end_date":   "2024-03-31",
	}), token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "raport_2024-03-01_2024-03-31.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.ElementsMatch(t, []string{"Miejsca pracy", "Pracownicy"}, f.GetSheetList())
	v, err := f.GetCellValue("Miejsca pracy", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Fabryka", v)
	v, err = f.GetCellValue("Miejsca pracy", "C2")
	require.NoError(t, err)
	assert.Equal(t, "150.00 zł", v)
}

func TestExcelReportEmpty(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r)

	// A manager with no data still gets a valid header-only workbook.
	resp := performRequest(r, http.MethodPost, "/reports/excel", jsonBody(t, gin.H{
		"start_date": "2024-01-01",
		"end_date":   "2024-12-31",
	}), token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	f, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Pracownicy", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Pracownik", v)
}
