package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// PresetHandler handles preset-related HTTP requests
type PresetHandler struct {
	presetUseCase usecase.PresetUseCase
	logger        coreport.Logger
}

// NewPresetHandler creates a new preset handler instance
func NewPresetHandler(presetUseCase usecase.PresetUseCase, logger coreport.Logger) *PresetHandler {
	return &PresetHandler{
		presetUseCase: presetUseCase,
		logger:        logger,
	}
}

// List handles GET /presets
func (h *PresetHandler) List(c *gin.Context) {
	presets, err := h.presetUseCase.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "preset list", err)
		return
	}

	resp := dto.PresetListResponse{Presets: make([]dto.PresetResponse, len(presets))}
	for i, p := range presets {
		resp.Presets[i] = dto.NewPresetResponse(p)
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /presets
func (h *PresetHandler) Create(c *gin.Context) {
	var req dto.PresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	preset, err := h.presetUseCase.Create(c.Request.Context(), req.Name, req.Duration, req.Description)
	if err != nil {
		respondError(c, h.logger, "preset create", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPresetResponse(preset))
}

// Get handles GET /presets/:name
func (h *PresetHandler) Get(c *gin.Context) {
	preset, err := h.presetUseCase.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, h.logger, "preset lookup", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPresetResponse(preset))
}

// Update handles PUT /presets/:name
func (h *PresetHandler) Update(c *gin.Context) {
	var req dto.PresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	preset, err := h.presetUseCase.Update(c.Request.Context(), c.Param("name"), req.Duration, req.Description)
	if err != nil {
		respondError(c, h.logger, "preset update", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPresetResponse(preset))
}

// Delete handles DELETE /presets/:name
func (h *PresetHandler) Delete(c *gin.Context) {
	if err := h.presetUseCase.Delete(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, h.logger, "preset delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}
