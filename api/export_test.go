/*
export_test.go - Unit tests for backup export and import

Tests for:
- JSON backup round trip (ids and timestamps preserved)
- CSV flattening of a single plan
- Import keeping the local passcode
*/
package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s3h4n/moneee/budget"
)

func TestExportImportRoundTrip(t *testing.T) {
	// GIVEN: a populated instance
	router, _ := newTestAPI(t)
	plan := buildFundedPlan(t, router)

	rec := doRequest(t, router, http.MethodPost, "/api/scenarios",
		CreateScenarioRequest{BasePlanID: plan.ID, Name: "tweak"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	var backup ExportDTO
	decodeInto(t, rec, &backup)
	assert.Equal(t, 1, backup.Version)
	require.Len(t, backup.Plans, 2) // seeded plan + funded plan
	require.Len(t, backup.Scenarios, 1)
	require.Len(t, backup.Presets, 2)

	// WHEN: the backup is imported into a fresh instance
	fresh, store := newTestAPI(t)
	rec = doRequest(t, fresh, http.MethodPost, "/api/import", backup)
	require.Equal(t, http.StatusOK, rec.Code)

	// THEN: the funded plan arrives with id and created-at intact
	rec = doRequest(t, fresh, http.MethodGet, "/api/plans/"+plan.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got budget.Plan
	decodeInto(t, rec, &got)
	assert.Equal(t, plan.Meta.CreatedAt, got.Meta.CreatedAt)
	assert.Len(t, got.Categories, 3)

	settings, err := store.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, backup.Settings.Currency, settings.Currency)
}

func TestImportKeepsLocalPasscode(t *testing.T) {
	router, store := newTestAPI(t)

	rec := doRequest(t, router, http.MethodPost, "/api/settings/passcode",
		PasscodeRequest{Passcode: "1234"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var backup ExportDTO
	decodeInto(t, rec, &backup)

	// The backup carries settings but never the hash; importing it back
	// must not lock the user out.
	rec = doRequest(t, router, http.MethodPost, "/api/import", backup)
	require.Equal(t, http.StatusOK, rec.Code)

	settings, err := store.GetSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, settings.EnablePasscode)
	assert.NotEmpty(t, settings.PasscodeHash)
}

func TestImportSinglePlanPreservesIdentity(t *testing.T) {
	router, _ := newTestAPI(t)
	plan := buildFundedPlan(t, router)

	// Re-importing the plan's own JSON replaces it in place.
	plan.Name = "Funded (restored)"
	rec := doRequest(t, router, http.MethodPost, "/api/plans/import", plan)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/plans", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var plans []budget.Plan
	decodeInto(t, rec, &plans)
	assert.Len(t, plans, 2) // seeded plan + the replaced one, no duplicate

	rec = doRequest(t, router, http.MethodGet, "/api/plans/"+plan.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got budget.Plan
	decodeInto(t, rec, &got)
	assert.Equal(t, "Funded (restored)", got.Name)
	assert.Equal(t, plan.Meta.CreatedAt, got.Meta.CreatedAt)
}

func TestImportRejectsNewerVersion(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doRequest(t, router, http.MethodPost, "/api/import",
		ExportDTO{Version: 99})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportPlanCSV(t *testing.T) {
	router, _ := newTestAPI(t)
	plan := buildFundedPlan(t, router)

	rec := doRequest(t, router, http.MethodPut, "/api/plans/"+plan.ID+"/debts",
		budget.Debt{ID: "debt-card", Name: "Card", Balance: 1200, APR: 24, Minimum: 50})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, router, http.MethodPut, "/api/plans/"+plan.ID+"/goals",
		budget.Goal{ID: "goal-fund", Name: "Emergency", Target: 100000, Current: 20000, DueDate: "2026-12-31"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/plans/"+plan.ID+"/export.csv?asOf=2025-01-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	// 3 section headers + 3 categories + 1 debt + 1 goal
	assert.Len(t, lines, 8)
	assert.Equal(t, "Section,Name,Type,Bucket,Monthly", lines[0])
	assert.Contains(t, body, "Category,Rent,fixed,needs,1500")
	assert.Contains(t, body, "Debt,Card,1200,24,50")
	assert.Contains(t, body, "Goal,Emergency,100000,20000,2026-12-31")
}
