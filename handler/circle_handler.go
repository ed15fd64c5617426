package handler

import (
	"log"
	"strconv"
	"time"

	"eightify/dto"
	"eightify/middleware"
	"eightify/model"
	"eightify/usecase"
	"eightify/utils"

	"github.com/gin-gonic/gin"
)

type CircleHandler struct {
	circles *usecase.CircleService
	clock   utils.Clock
}

func NewCircleHandler(circles *usecase.CircleService, clock utils.Clock) *CircleHandler {
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &CircleHandler{circles: circles, clock: clock}
}

func (h *CircleHandler) CreateCircle(c *gin.Context) {
	var req model.CreateCircleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("validation")
		utils.BadRequest(c, "Invalid request body")
		return
	}

	circle, err := h.circles.CreateCircle(c.Request.Context(), middleware.UserID(c), req.Name)
	if err != nil {
		log.Printf("Error creating circle for user %s: %v", middleware.UserID(c), err)
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, circle)
}

func (h *CircleHandler) JoinCircle(c *gin.Context) {
	var req model.JoinCircleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("validation")
		utils.BadRequest(c, "Invalid request body")
		return
	}

	circle, err := h.circles.JoinCircle(c.Request.Context(), middleware.UserID(c), req.InviteCode)
	if err != nil {
		log.Printf("Error joining circle for user %s: %v", middleware.UserID(c), err)
		utils.RespondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "Joined circle", circle)
}

func (h *CircleHandler) GetMyCircle(c *gin.Context) {
	circle, err := h.circles.MyCircle(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, circle)
}

func (h *CircleHandler) GetLeaderboard(c *gin.Context) {
	dayKey := model.DayKey(h.clock.Now(), requestLocation(c))
	entries, err := h.circles.Leaderboard(c.Request.Context(), middleware.UserID(c), dayKey)
	if err != nil {
		log.Printf("Error building leaderboard for user %s: %v", middleware.UserID(c), err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, gin.H{
		"day_key": dayKey,
		"entries": dto.ToLeaderboardResponse(dayKey, entries),
	})
}

// GetFeed accepts ?limit=N and ?since=RFC3339; both fall back to the service defaults.
func (h *CircleHandler) GetFeed(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 || n > 500 {
			utils.BadRequest(c, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	var since time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.BadRequest(c, "since must be an RFC3339 timestamp")
			return
		}
		since = t
	}

	items, err := h.circles.Feed(c.Request.Context(), middleware.UserID(c), since, limit)
	if err != nil {
		log.Printf("Error fetching feed for user %s: %v", middleware.UserID(c), err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, dto.ToFeedResponse(items))
}
