package handlers

import (
	"net/http"

	"taskboard/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StatsHandler struct {
	base
	statsService services.StatsService
}

func NewStatsHandler(db *gorm.DB, statsService services.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{base: newBase(db, logger), statsService: statsService}
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(h.dbFor(c))
	if err != nil {
		h.fail(c, http.StatusInternalServerError, MsgStatsFetchFailed, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
