package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (app *TestApp) registerAndLogin(t *testing.T, email string) tokenPairResponse {
	t.Helper()
	creds := map[string]string{"email": email, "password": "secret1"}

	resp := app.postJSON(t, "/api/auth/register", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.postJSON(t, "/api/auth/login", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeJSON[tokenPairResponse](t, resp)
}

func (app *TestApp) doAuthed(t *testing.T, method, path, accessToken string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) seedExercises(t *testing.T) {
	t.Helper()
	for _, row := range [][2]string{
		{"0001", "barbell bench press"},
		{"0002", "barbell squat"},
	} {
		_, err := app.DB.Exec(
			"INSERT INTO exercises (id, name, target, body_part, equipment, api_source) VALUES ($1, $2, 'pectorals', 'chest', 'barbell', 'exercisedb')",
			row[0], row[1],
		)
		require.NoError(t, err)
	}
}

// TestWorkoutFlow drives the whole training surface: list exercises, create a
// routine, start a workout from it, finish it with sets, read history and the
// stats summary.
func TestWorkoutFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)
	app.seedExercises(t)

	tokens := app.registerAndLogin(t, "lifter@example.com")
	access := tokens.AccessToken

	// Step 1: the seeded catalog is visible
	resp := app.doAuthed(t, http.MethodGet, "/api/exercises?search=bench", access, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	exercises := decodeJSON[[]map[string]any](t, resp)
	require.Len(t, exercises, 1)
	assert.Equal(t, "barbell bench press", exercises[0]["name"])

	// Step 2: create a routine with defaults filled in
	resp = app.doAuthed(t, http.MethodPost, "/api/routines/", access, map[string]any{
		"name": "Push day",
		"exercises": []map[string]any{
			{"exerciseId": "0001"},
			{"exerciseId": "0002", "defaultSeries": 5, "defaultReps": 5},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	routine := decodeJSON[map[string]any](t, resp)
	routineID := routine["id"].(string)
	require.NotEmpty(t, routineID)

	routineExercises := routine["exercises"].([]any)
	require.Len(t, routineExercises, 2)
	first := routineExercises[0].(map[string]any)
	assert.EqualValues(t, 3, first["default_series"])
	assert.EqualValues(t, 10, first["default_reps"])

	resp = app.doAuthed(t, http.MethodGet, "/api/routines/", access, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	routines := decodeJSON[[]map[string]any](t, resp)
	require.Len(t, routines, 1)

	// Step 3: start a workout from the routine
	resp = app.doAuthed(t, http.MethodPost, "/api/workouts/start", access, map[string]any{
		"routineId": routineID,
		"name":      "Push day session",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	workout := decodeJSON[map[string]any](t, resp)
	workoutID := workout["id"].(string)
	require.NotEmpty(t, workoutID)
	assert.Nil(t, workout["ended_at"])

	// Step 4: finish it with recorded sets
	resp = app.doAuthed(t, http.MethodPut, "/api/workouts/"+workoutID+"/finish", access, map[string]any{
		"endedAt":  time.Now().Format(time.RFC3339),
		"duration": 3600,
		"sets": []map[string]any{
			{"exerciseId": "0001", "seriesIndex": 0, "reps": 10, "weight": 60, "completed": true},
			{"exerciseId": "0001", "seriesIndex": 1, "reps": 8, "weight": 60, "completed": true},
			{"exerciseId": "0002", "seriesIndex": 0, "reps": 5, "weight": 100, "completed": true},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	finished := decodeJSON[map[string]any](t, resp)
	assert.NotNil(t, finished["ended_at"])
	assert.EqualValues(t, 3600, finished["duration"])

	// Step 5: history lists the finished workout with its sets
	resp = app.doAuthed(t, http.MethodGet, "/api/workouts/history", access, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := decodeJSON[[]map[string]any](t, resp)
	require.Len(t, history, 1)
	sets := history[0]["sets"].([]any)
	assert.Len(t, sets, 3)

	// Step 6: the stats summary aggregates volume = sum(weight * reps)
	resp = app.doAuthed(t, http.MethodGet, "/api/stats/summary", access, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decodeJSON[map[string]any](t, resp)
	assert.EqualValues(t, 1, summary["totalWorkouts"])
	assert.EqualValues(t, 3, summary["totalSets"])
	assert.EqualValues(t, 10*60+8*60+5*100, summary["totalVolume"])
}

func TestWorkoutOwnership(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)
	app.seedExercises(t)

	owner := app.registerAndLogin(t, "owner@example.com")
	intruder := app.registerAndLogin(t, "intruder@example.com")

	resp := app.doAuthed(t, http.MethodPost, "/api/workouts/start", owner.AccessToken, map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	workout := decodeJSON[map[string]any](t, resp)
	workoutID := workout["id"].(string)

	// An unnamed workout falls back to the default name.
	assert.Equal(t, "Entraînement libre", workout["name"])

	// Another user cannot finish it; the workout is simply not found.
	resp = app.doAuthed(t, http.MethodPut, "/api/workouts/"+workoutID+"/finish", intruder.AccessToken, map[string]any{
		"endedAt":  time.Now().Format(time.RFC3339),
		"duration": 60,
		"sets":     []map[string]any{},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Its history stays empty too.
	resp = app.doAuthed(t, http.MethodGet, "/api/workouts/history", intruder.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := decodeJSON[[]map[string]any](t, resp)
	assert.Empty(t, history)
}
