package handler

import (
	"log"
	"time"

	"eightify/dto"
	"eightify/middleware"
	"eightify/model"
	"eightify/usecase"
	"eightify/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	stats *usecase.StatsService
	clock utils.Clock
}

func NewStatsHandler(stats *usecase.StatsService, clock utils.Clock) *StatsHandler {
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &StatsHandler{stats: stats, clock: clock}
}

func requestLocation(c *gin.Context) *time.Location {
	if loc := middleware.Location(c); loc != nil {
		return loc
	}
	return time.UTC
}

// GetDailySummary returns the durable totals for ?day=YYYY-MM-DD, today by default.
func (h *StatsHandler) GetDailySummary(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	dayKey := c.Query("day")
	if dayKey == "" {
		dayKey = model.DayKey(h.clock.Now(), requestLocation(c))
	} else if _, err := time.Parse(model.DayKeyLayout, dayKey); err != nil {
		utils.BadRequest(c, "day must be YYYY-MM-DD")
		return
	}

	summary := h.stats.DailySummary(c.Request.Context(), userID, dayKey)
	utils.Success(c, gin.H{
		"summary": summary,
		"totals":  dto.ToTotalsResponse(summary.DayKey, summary.Totals, true),
	})
}

func (h *StatsHandler) GetTimeline(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	filter := c.DefaultQuery("filter", string(model.FilterToday))
	records, err := h.stats.Timeline(c.Request.Context(), userID, filter, h.clock.Now(), requestLocation(c))
	if err != nil {
		log.Printf("Error fetching timeline for user %s: %v", userID, err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, dto.ToTimelineResponse(filter, records))
}
