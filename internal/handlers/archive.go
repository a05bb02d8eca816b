package handlers

import (
	"net/http"
	"strconv"

	"interview-engine-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ArchiveHandler struct {
	archive *services.ArchiveService
}

func NewArchiveHandler(archive *services.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{archive: archive}
}

// List godoc
// @Summary      List archived interviews
// @Tags         archives
// @Produce      json
// @Param        limit query int false "Max records"
// @Router       /api/v1/archives [get]
func (h *ArchiveHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.archive.List(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "archives": records})
}

// Get godoc
// @Summary      Get one archived interview with its full report
// @Tags         archives
// @Produce      json
// @Param        id path string true "Session ID"
// @Router       /api/v1/archives/{id} [get]
func (h *ArchiveHandler) Get(c *gin.Context) {
	record, results, err := h.archive.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "archive": record, "results": results})
}
