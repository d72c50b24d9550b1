package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	h := NewHealthHandlers(mock)
	c, rec := newJSONContext(http.MethodGet, "/health", "")

	require.NoError(t, h.HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])

	ts, err := time.Parse(time.RFC3339, body["timestamp"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, 5*time.Second)
}

func TestReadinessCheckReady(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))

	h := NewHealthHandlers(mock)
	c, rec := newJSONContext(http.MethodGet, "/health/ready", "")

	require.NoError(t, h.ReadinessCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, "All systems operational", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadinessCheckDatabaseDown(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("SELECT 1").WillReturnError(errors.New("connection refused"))

	h := NewHealthHandlers(mock)
	c, rec := newJSONContext(http.MethodGet, "/health/ready", "")

	require.NoError(t, h.ReadinessCheck(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body["status"])
	assert.Equal(t, "Database unavailable", body["message"])
}
