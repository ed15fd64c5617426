package handler

import (
	"context"
	"io"
	"log"

	"eightify/dto"
	"eightify/middleware"
	"eightify/model"
	"eightify/usecase"
	"eightify/utils"

	"github.com/gin-gonic/gin"
)

type TimerHandler struct {
	registry *usecase.Registry
}

func NewTimerHandler(registry *usecase.Registry) *TimerHandler {
	return &TimerHandler{registry: registry}
}

// tracker resolves the caller's tracker and brings its auth state and
// timezone in line with this request.
func (h *TimerHandler) tracker(c *gin.Context) *usecase.Tracker {
	return h.registry.Get(
		storageContext(c),
		middleware.ClientID(c),
		middleware.UserID(c),
		middleware.Location(c),
	)
}

// storageContext outlives the request so a client hanging up mid-stop
// does not cancel the writes that record it.
func storageContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func (h *TimerHandler) GetTimer(c *gin.Context) {
	t := h.tracker(c)
	utils.Success(c, dto.ToTimerResponse(t.Status()))
}

func (h *TimerHandler) StartTimer(c *gin.Context) {
	var req model.StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("validation")
		utils.BadRequest(c, "Invalid request body")
		return
	}
	category, err := model.ParseCategory(req.Category)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	t := h.tracker(c)
	stopped, status, err := t.Start(storageContext(c), category, req.Name, middleware.Device(c))
	if err != nil {
		log.Printf("Error starting timer for client %s: %v", t.ClientID(), err)
		utils.RespondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "Timer started", dto.TimerActionResponse{
		Recorded: stopped,
		Timer:    dto.ToTimerResponse(status),
	})
}

func (h *TimerHandler) StopTimer(c *gin.Context) {
	t := h.tracker(c)
	record, status := t.Stop(storageContext(c))
	message := "Timer stopped"
	if record == nil {
		message = "Nothing recorded"
	}
	utils.SuccessWithMessage(c, message, dto.TimerActionResponse{
		Recorded: record,
		Timer:    dto.ToTimerResponse(status),
	})
}

// GetTotals serves today's totals panel, formatted for display.
func (h *TimerHandler) GetTotals(c *gin.Context) {
	t := h.tracker(c)
	t.CheckRollover(storageContext(c))
	status := t.Status()
	utils.Success(c, dto.ToTotalsResponse(status.DayKey, status.Totals, status.SignedIn))
}

// StreamTimer pushes the current status, then one tick per second while a
// timer runs, as server-sent events.
func (h *TimerHandler) StreamTimer(c *gin.Context) {
	t := h.tracker(c)
	ticks, cancel := t.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("status", dto.ToTimerResponse(t.Status()))
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case tick, ok := <-ticks:
			if !ok {
				return false
			}
			c.SSEvent("tick", dto.ToTickEvent(tick))
			return true
		}
	})
}
