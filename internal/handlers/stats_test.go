package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"taskboard/internal/handlers"
	"taskboard/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockService := new(MockStatsService)
	mockService.On("GetStats").Return(models.NewStats(6, 1, 3, 3), nil)

	router := gin.New()
	router.GET("/stats", handlers.NewStatsHandler(nil, mockService, nil).GetStats)

	w := doJSON(router, "GET", "/stats", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(6), body["totalTasks"])
	assert.Equal(t, int64(1), body["completedTasks"])
	assert.Equal(t, int64(3), body["pendingTasks"])
	assert.Equal(t, int64(3), body["totalUsers"])
	assert.Equal(t, int64(2), body["inProgressTasks"])
}

func TestGetStatsError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockService := new(MockStatsService)
	mockService.On("GetStats").Return(models.Stats{}, errDB)

	router := gin.New()
	router.GET("/stats", handlers.NewStatsHandler(nil, mockService, nil).GetStats)

	w := doJSON(router, "GET", "/stats", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, handlers.MsgStatsFetchFailed, errorBody(t, w))
}
