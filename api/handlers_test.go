/*
handlers_test.go - HTTP-level tests for the API surface

Tests exercise the full stack: router, validator gate, engines, DTO
conversion and error mapping, using httptest against NewRouter.
*/
package api_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preventia/indicator-engine/api"
	"github.com/preventia/indicator-engine/factory"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := api.NewHandler(factory.DefaultEngineConfig())
	srv := httptest.NewServer(api.NewRouter(h, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func reactiveBody() map[string]any {
	return map[string]any{
		"rows": []map[string]any{
			{
				"mes": "enero", "num_trabajadores": 100, "horas_hombre_mes": 16000,
				"acc_baja": 2, "acc_sin_baja": 0, "enf_ocupacionales": 0, "dias_perdidos": 10,
			},
		},
	}
}

func TestHealth(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestValidate_DetectsKindAndReportsMissing(t *testing.T) {
	// GIVEN: Reactive-looking rows without dias_perdidos
	// WHEN: POSTing to /api/validate with no explicit kind
	// THEN: 200 with ok=false and an error naming the column

	srv := newServer(t)
	resp := postJSON(t, srv.URL+"/api/validate", map[string]any{
		"rows": []map[string]any{
			{"mes": "enero", "horas_trabajadas": 16000, "num_lesiones": 2},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.ValidateResponse
	decode(t, resp, &out)
	assert.False(t, out.OK)
	assert.Equal(t, "reactivo", out.Kind)
	require.NotEmpty(t, out.Errors)
	assert.Contains(t, out.Errors[0].Message, "dias_perdidos")
}

func TestProcessReactive_FullRun(t *testing.T) {
	srv := newServer(t)
	resp := postJSON(t, srv.URL+"/api/reactive/process", reactiveBody())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.ReactiveProcessResponse
	decode(t, resp, &out)

	require.NotEmpty(t, out.Meta.RunID)
	assert.Equal(t, 1, out.Meta.Months)

	// One month row, one quarter row, one year row.
	require.Len(t, out.Report, 3)
	month := out.Report[0]
	assert.Equal(t, "enero", month.Label)
	assert.InDelta(t, 2.08, month.IF, 0.001)
	assert.InDelta(t, 10.42, month.IG, 0.001)
	assert.InDelta(t, 5.0, month.TR, 0.001)
	assert.Equal(t, "TOTAL AÑO", out.Report[2].Label)

	assert.Equal(t, []string{"enero"}, out.Chart.Months)
	assert.Equal(t, 2.0, out.Stats.TotalInjuries)
}

func TestProcessReactive_ValidationBlocksWith422(t *testing.T) {
	srv := newServer(t)
	resp := postJSON(t, srv.URL+"/api/reactive/process", map[string]any{
		"rows": []map[string]any{{"mes": "enero"}},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestProcessReactive_MalformedBodyIs400(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Post(srv.URL+"/api/reactive/process", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProcessProactive_DemoRoundTrip(t *testing.T) {
	// GIVEN: Demo rows fetched from the API itself
	// WHEN: Feeding them back into the proactive pipeline
	// THEN: Twelve computed rows with in-range composites

	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/api/demo/proactive?year=2025&seed=7")
	require.NoError(t, err)
	var demo api.RowsRequest
	decode(t, resp, &demo)
	require.Len(t, demo.Rows, 12)

	procResp := postJSON(t, srv.URL+"/api/proactive/process", demo)
	require.Equal(t, http.StatusOK, procResp.StatusCode)

	var out api.ProactiveProcessResponse
	decode(t, procResp, &out)
	require.Len(t, out.Rows, 12)
	for _, row := range out.Rows {
		assert.GreaterOrEqual(t, row.IGTotal, 0.0)
		assert.LessOrEqual(t, row.IGTotal, 100.0)
		assert.Contains(t, []string{"CUMPLE", "NO CUMPLE"}, row.Status)
	}
	assert.Equal(t, 80.0, out.Stats.Target)
}

func TestGetCatalog(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/api/proactive/catalog")
	require.NoError(t, err)

	var out []api.CatalogEntryDTO
	decode(t, resp, &out)
	require.Len(t, out, 8)
	assert.Equal(t, "IART", out[0].Code)
	assert.Equal(t, 5, out[0].Weight)
}

func TestDemoReactive_Deterministic(t *testing.T) {
	srv := newServer(t)
	var a, b api.RowsRequest
	for _, dst := range []*api.RowsRequest{&a, &b} {
		resp, err := http.Get(srv.URL + "/api/demo/reactive?year=2025&seed=42")
		require.NoError(t, err)
		decode(t, resp, dst)
	}
	assert.Equal(t, a, b)
}

// =============================================================================
// WORKSPACE FLOW
// =============================================================================

func TestWorkspace_FullFlow(t *testing.T) {
	srv := newServer(t)

	// Create
	create := postJSON(t, srv.URL+"/api/workspace/datasets", map[string]any{
		"name": "plan 2025",
		"rows": reactiveBody()["rows"],
	})
	require.Equal(t, http.StatusCreated, create.StatusCode)
	var ds api.DatasetDTO
	decode(t, create, &ds)
	require.NotEmpty(t, ds.ID)
	assert.Equal(t, "reactivo", ds.Kind)

	// List
	listResp, err := http.Get(srv.URL + "/api/workspace/datasets")
	require.NoError(t, err)
	var list []api.DatasetDTO
	decode(t, listResp, &list)
	require.Len(t, list, 1)

	// Edit a month
	put, err := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/api/workspace/datasets/%s/months/enero", srv.URL, ds.ID),
		bytes.NewReader([]byte(`{"values": {"dias_perdidos": 20}}`)))
	require.NoError(t, err)
	putResp, err := http.DefaultClient.Do(put)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, putResp.StatusCode)
	putResp.Body.Close()

	// Append a month
	add := postJSON(t, fmt.Sprintf("%s/api/workspace/datasets/%s/months", srv.URL, ds.ID),
		map[string]any{"values": map[string]any{"mes": "febrero", "num_trabajadores": 95}})
	require.Equal(t, http.StatusOK, add.StatusCode)
	var updated api.DatasetDTO
	decode(t, add, &updated)
	assert.Len(t, updated.Rows, 2)

	// Process
	proc := postJSON(t, fmt.Sprintf("%s/api/workspace/datasets/%s/process", srv.URL, ds.ID), nil)
	require.Equal(t, http.StatusOK, proc.StatusCode)
	var out struct {
		Reactive *api.ReactiveProcessResponse `json:"reactive"`
	}
	decode(t, proc, &out)
	require.NotNil(t, out.Reactive)
	// The edit took: enero now reports 20 lost days.
	assert.Equal(t, 20.0, out.Reactive.Report[0].LostDays)

	// Replace the rows wholesale; the ID survives.
	put2, err := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/api/workspace/datasets/%s", srv.URL, ds.ID),
		bytes.NewReader([]byte(`{"rows": [{"mes": "marzo", "horas_trabajadas": 14000, "num_lesiones": 0, "dias_perdidos": 0}]}`)))
	require.NoError(t, err)
	put2Resp, err := http.DefaultClient.Do(put2)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, put2Resp.StatusCode)
	var replaced api.DatasetDTO
	decode(t, put2Resp, &replaced)
	assert.Equal(t, ds.ID, replaced.ID)
	require.Len(t, replaced.Rows, 1)
	assert.Equal(t, "marzo", replaced.Rows[0]["mes"])

	// Delete
	del, err := http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/api/workspace/datasets/%s", srv.URL, ds.ID), nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(del)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()

	gone, err := http.Get(fmt.Sprintf("%s/api/workspace/datasets/%s", srv.URL, ds.ID))
	require.NoError(t, err)
	defer gone.Body.Close()
	assert.Equal(t, http.StatusNotFound, gone.StatusCode)
}

func TestWorkspace_UnknownDatasetIs404(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/api/workspace/datasets/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
