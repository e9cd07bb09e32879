package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv, err := NewServer(":0", t.TempDir())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJob(t *testing.T, ts *httptest.Server, config JobConfig) (*http.Response, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(config)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/v1/jobs", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if resp.StatusCode == http.StatusCreated {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp, decoded
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func waitForState(t *testing.T, ts *httptest.Server, jobID, want string) map[string]interface{} {
	t.Helper()

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		var status map[string]interface{}
		code := getJSON(t, fmt.Sprintf("%s/api/v1/jobs/%s/status", ts.URL, jobID), &status)
		require.Equal(t, http.StatusOK, code)

		state, _ := status["state"].(string)
		if state == want {
			return status
		}
		if state == string(StateFailed) {
			t.Fatalf("job failed: %v", status["error"])
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("job %s never reached state %s", jobID, want)
	return nil
}

func TestListProblems(t *testing.T) {
	ts := newTestServer(t)

	var names []string
	code := getJSON(t, ts.URL+"/api/v1/problems", &names)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, names, "boundary")
	assert.Contains(t, names, "wards")
}

func TestCreateJobValidation(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := postJob(t, ts, JobConfig{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJob(t, ts, JobConfig{Problem: "no-such-problem"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateJobRunsToCompletion(t *testing.T) {
	ts := newTestServer(t)

	resp, job := postJob(t, ts, JobConfig{
		Problem:       "boundary",
		SafetyLambda:  1e6,
		MaxSteps:      3,
		MaxIterations: 500,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	jobID, _ := job["id"].(string)
	require.NotEmpty(t, jobID)

	status := waitForState(t, ts, jobID, string(StateCompleted))

	steps, _ := status["steps"].(float64)
	assert.Greater(t, steps, 0.0)

	// The boundary problem ends at the safety boundary within numeric
	// tolerance; the best point is on record.
	minMargin, _ := status["minMargin"].(float64)
	assert.GreaterOrEqual(t, minMargin, -1e-3)
	assert.NotEmpty(t, status["x"])
}

func TestJobReportEndpoint(t *testing.T) {
	ts := newTestServer(t)

	_, job := postJob(t, ts, JobConfig{
		Problem:       "boundary",
		MaxSteps:      2,
		MaxIterations: 500,
	})
	jobID, _ := job["id"].(string)
	waitForState(t, ts, jobID, string(StateCompleted))

	var report map[string]interface{}
	code := getJSON(t, fmt.Sprintf("%s/api/v1/jobs/%s/report", ts.URL, jobID), &report)
	require.Equal(t, http.StatusOK, code)

	assert.Contains(t, report, "constraints")
	assert.Contains(t, report, "fields")
}

func TestJobTraceEndpoint(t *testing.T) {
	ts := newTestServer(t)

	_, job := postJob(t, ts, JobConfig{
		Problem:       "boundary",
		MaxSteps:      2,
		MaxIterations: 500,
	})
	jobID, _ := job["id"].(string)
	waitForState(t, ts, jobID, string(StateCompleted))

	var entries []map[string]interface{}
	code := getJSON(t, fmt.Sprintf("%s/api/v1/jobs/%s/trace", ts.URL, jobID), &entries)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0], "safetyLambda")
	assert.Contains(t, entries[0], "minMargin")
}

func TestUnknownJobRoutes(t *testing.T) {
	ts := newTestServer(t)

	var out map[string]interface{}
	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/api/v1/jobs/absent/status", &out))
	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/api/v1/jobs/absent/report", &out))
	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/api/v1/jobs/absent/trace", &out))
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/jobs", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
