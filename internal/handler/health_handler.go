package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/adboard/internal/pkg/response"
)

type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Get(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		logutil.GetLogger(c.Request.Context()).Error("store ping failed", zap.Error(err))
		response.Error(c, http.StatusServiceUnavailable, "unavailable", "store unavailable")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}
