package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/movetank-go/internal/analysis"
	"github.com/jengzang/movetank-go/internal/config"
	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/service"
	"github.com/jengzang/movetank-go/pkg/response"
)

// SceneHandler handles HTTP requests for the playback scene
type SceneHandler struct {
	service *service.SceneService
	cfg     *config.Config
}

// NewSceneHandler creates a new scene handler
func NewSceneHandler(service *service.SceneService, cfg *config.Config) *SceneHandler {
	return &SceneHandler{service: service, cfg: cfg}
}

// strategyRequest is the body of PUT /strategy
type strategyRequest struct {
	Strategy string `json:"strategy" binding:"required"`
}

// frameQuery holds the query of GET /frames/:time
type frameQuery struct {
	models.FrameParams
	Strategy string `form:"strategy"`
}

// fail maps service errors onto HTTP statuses
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidControl), errors.Is(err, analysis.ErrUnknownRenderer):
		response.BadRequest(c, err.Error())
	case errors.Is(err, analysis.ErrUnknownKey):
		response.NotFound(c, err.Error())
	case errors.Is(err, analysis.ErrNotDrawn):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}

// GetDataset handles GET /api/v1/dataset
func (h *SceneHandler) GetDataset(c *gin.Context) {
	response.Success(c, h.service.Summary())
}

// GetState handles GET /api/v1/state
func (h *SceneHandler) GetState(c *gin.Context) {
	response.Success(c, h.service.State())
}

// GetScene handles GET /api/v1/scene
func (h *SceneHandler) GetScene(c *gin.Context) {
	response.Success(c, h.service.View())
}

// GetFrame handles GET /api/v1/frames/:time
// The frame is drawn on its own canvas and does not touch playback
func (h *SceneHandler) GetFrame(c *gin.Context) {
	t, err := strconv.Atoi(c.Param("time"))
	if err != nil {
		response.BadRequest(c, "Invalid time step")
		return
	}

	var q frameQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	q.Time = t
	if q.Strategy == "" {
		q.Strategy = h.cfg.Playback.Strategy
	}
	if q.Feature == "" {
		q.Feature = models.NoFeature
	}

	sc, res, err := service.RenderFrame(h.service.Dataset(), h.cfg, q.Strategy, q.FrameParams)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"result": res,
		"scene":  sc,
	})
}

// Play handles POST /api/v1/play
func (h *SceneHandler) Play(c *gin.Context) {
	response.Success(c, h.service.Play())
}

// Pause handles POST /api/v1/pause
func (h *SceneHandler) Pause(c *gin.Context) {
	response.Success(c, h.service.Pause())
}

// Step handles POST /api/v1/step
func (h *SceneHandler) Step(c *gin.Context) {
	res, err := h.service.Step()
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"result": res,
		"state":  h.service.State(),
	})
}

// UpdateControls handles PUT /api/v1/controls
func (h *SceneHandler) UpdateControls(c *gin.Context) {
	var u service.ControlUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	st, res, err := h.service.UpdateControls(u)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"result": res,
		"state":  st,
	})
}

// SetStrategy handles PUT /api/v1/strategy
func (h *SceneHandler) SetStrategy(c *gin.Context) {
	var req strategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	st, err := h.service.SetStrategy(req.Strategy)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, st)
}

// Hover handles POST /api/v1/hover/:key
func (h *SceneHandler) Hover(c *gin.Context) {
	res, err := h.service.Hover(c.Param("key"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res)
}

// Unhover handles DELETE /api/v1/hover
func (h *SceneHandler) Unhover(c *gin.Context) {
	h.service.Unhover()
	response.Success(c, nil)
}
