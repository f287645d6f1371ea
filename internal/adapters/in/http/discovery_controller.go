package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/booking-slot-discovery/internal/config"
	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/in"
	"github.com/suchimauz/booking-slot-discovery/internal/core/services/calendar_service"
	"github.com/suchimauz/booking-slot-discovery/internal/utils"
)

type DiscoveryController struct {
	recommendations in.RecommendationUseCase
	calendar        in.CalendarUseCase
	activityFeed    in.ActivityFeedUseCase
	stats           in.StatsUseCase
	refresher       *calendar_service.CalendarRefresher
	cfg             *config.Config
}

func NewDiscoveryController(
	recommendations in.RecommendationUseCase,
	calendar in.CalendarUseCase,
	activityFeed in.ActivityFeedUseCase,
	stats in.StatsUseCase,
	refresher *calendar_service.CalendarRefresher,
	cfg *config.Config,
) *DiscoveryController {
	return &DiscoveryController{
		recommendations: recommendations,
		calendar:        calendar,
		activityFeed:    activityFeed,
		stats:           stats,
		refresher:       refresher,
		cfg:             cfg,
	}
}

func (c *DiscoveryController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/recommendations", c.getRecommendations)

		api.GET("/calendar", c.getCalendar)
		api.GET("/calendar/live", c.getLiveCalendar)
		api.POST("/calendar/live/navigate", c.navigateLiveCalendar)
		api.POST("/calendar/live/filter", c.filterLiveCalendar)
		api.POST("/calendar/live/view", c.viewLiveCalendar)

		api.GET("/slots/:slotId/activity", c.getSlotActivity)
		api.POST("/slots/:slotId/activity", c.startSlotActivity)
		api.DELETE("/slots/:slotId/activity", c.stopSlotActivity)

		api.GET("/stats", c.getStats)
	}
}

type recommendationResponse struct {
	Slot   domain.Slot   `json:"slot"`
	Doctor domain.Doctor `json:"doctor"`
	Score  int           `json:"score"`
	Reason string        `json:"reason"`
}

func (c *DiscoveryController) getRecommendations(ctx *gin.Context) {
	recommendations, err := c.recommendations.Recommend(ctx.Request.Context())
	if err != nil {
		// Полный отказ отдается как пустой список, секция просто скрывается
		ctx.JSON(http.StatusOK, gin.H{
			"recommendations": []recommendationResponse{},
			"error":           "data unavailable",
		})
		return
	}

	response := make([]recommendationResponse, 0, len(recommendations))
	for _, rec := range recommendations {
		response = append(response, recommendationResponse{
			Slot:   rec.Slot,
			Doctor: rec.Doctor,
			Score:  rec.RoundedScore(),
			Reason: rec.Reason,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"recommendations": response})
}

func (c *DiscoveryController) getCalendar(ctx *gin.Context) {
	filter := domain.DoctorFilter(ctx.DefaultQuery("doctor", string(domain.DoctorFilterAll)))

	view := domain.CalendarViewMode(ctx.DefaultQuery("view", string(domain.CalendarViewWeek)))
	if view != domain.CalendarViewWeek && view != domain.CalendarViewMonth {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view mode"})
		return
	}

	anchor := time.Now()
	if anchorParam := ctx.Query("anchor"); anchorParam != "" {
		parsed, err := utils.ParseDate(anchorParam)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid anchor date format"})
			return
		}
		anchor = parsed
	}

	grid, err := c.calendar.BuildGrid(ctx.Request.Context(), filter, view, anchor)
	if err != nil {
		// Сетка недоступна - отдаем пустую, слой отображения покажет "no slots"
		ctx.JSON(http.StatusOK, gin.H{
			"window": calendar_service.ComputeWindow(view, anchor),
			"filter": filter,
			"cells":  []domain.CalendarCell{},
			"error":  "data unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"window": grid.Window,
		"filter": grid.Filter,
		"cells":  grid.CellList(),
	})
}

func (c *DiscoveryController) getLiveCalendar(ctx *gin.Context) {
	grid := c.refresher.Grid()
	if grid == nil {
		ctx.JSON(http.StatusOK, gin.H{
			"cells": []domain.CalendarCell{},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"window": grid.Window,
		"filter": grid.Filter,
		"cells":  grid.CellList(),
	})
}

type navigateRequest struct {
	Direction string `json:"direction" binding:"required,oneof=next prev"`
}

func (c *DiscoveryController) navigateLiveCalendar(ctx *gin.Context) {
	var req navigateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	direction := 1
	if req.Direction == "prev" {
		direction = -1
	}

	if err := c.refresher.Navigate(ctx.Request.Context(), direction); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.getLiveCalendar(ctx)
}

type filterRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
}

func (c *DiscoveryController) filterLiveCalendar(ctx *gin.Context) {
	var req filterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.refresher.SetFilter(ctx.Request.Context(), domain.DoctorFilter(req.DoctorID)); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.getLiveCalendar(ctx)
}

type viewRequest struct {
	View string `json:"view" binding:"required,oneof=week month"`
}

func (c *DiscoveryController) viewLiveCalendar(ctx *gin.Context) {
	var req viewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.refresher.SetViewMode(ctx.Request.Context(), domain.CalendarViewMode(req.View)); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.getLiveCalendar(ctx)
}

// Первый запрос активности запускает ленту слота, дальше отдаются живые события
func (c *DiscoveryController) getSlotActivity(ctx *gin.Context) {
	slotID := ctx.Param("slotId")

	c.activityFeed.StartFeed(slotID)

	events := c.activityFeed.Events(slotID)
	if events == nil {
		events = []domain.ActivityEventView{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"slotId": slotID,
		"events": events,
	})
}

func (c *DiscoveryController) startSlotActivity(ctx *gin.Context) {
	slotID := ctx.Param("slotId")
	c.activityFeed.StartFeed(slotID)
	ctx.Status(http.StatusAccepted)
}

func (c *DiscoveryController) stopSlotActivity(ctx *gin.Context) {
	slotID := ctx.Param("slotId")
	c.activityFeed.StopFeed(slotID)
	ctx.Status(http.StatusNoContent)
}

func (c *DiscoveryController) getStats(ctx *gin.Context) {
	stats, err := c.stats.CollectStats(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{
			"stats": domain.Stats{},
			"error": "data unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (c *DiscoveryController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1
			passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1
			if usernameMatch && passwordMatch {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
