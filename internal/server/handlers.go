package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/abdulachik/feedfilter/internal/feed"
	"github.com/abdulachik/feedfilter/internal/filter"
	"github.com/abdulachik/feedfilter/internal/settings"
	"github.com/gin-gonic/gin"
)

// triggerAPI labels passes run through the classify endpoint.
const triggerAPI = "api"

type addKeywordsRequest struct {
	Input string `json:"input" binding:"required"`
}

type classifyRequest struct {
	Posts    []feed.Post      `json:"posts"`
	Settings *filter.Settings `json:"settings,omitempty"`
}

type postVerdict struct {
	ID string `json:"id,omitempty"`
	filter.Verdict
}

type classifyResponse struct {
	Results []postVerdict `json:"results"`
	Summary feed.Result   `json:"summary"`
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(c *gin.Context) {
	status := http.StatusOK
	healthy := s.health.IsOverallHealthy()
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"healthy":    healthy,
		"components": s.health.GetAllStatuses(),
	})
}

// handleGetSettings handles GET /api/v1/settings.
func (s *Server) handleGetSettings(c *gin.Context) {
	current, err := s.settings.Load(c.Request.Context())
	if err != nil {
		s.internalError(c, "load settings", err)
		return
	}
	c.JSON(http.StatusOK, current)
}

// handlePutSettings handles PUT /api/v1/settings.
func (s *Server) handlePutSettings(c *gin.Context) {
	var req filter.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.settings.Save(c.Request.Context(), req); err != nil {
		s.internalError(c, "save settings", err)
		return
	}

	s.handleGetSettings(c)
}

// handleAddKeywords handles POST /api/v1/keywords.
func (s *Server) handleAddKeywords(c *gin.Context) {
	var req addKeywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := s.settings.AddKeywords(c.Request.Context(), req.Input)
	if errors.Is(err, settings.ErrEmptyKeyword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.internalError(c, "add keywords", err)
		return
	}

	if added == nil {
		added = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// handleRemoveKeyword handles DELETE /api/v1/keywords/:keyword.
func (s *Server) handleRemoveKeyword(c *gin.Context) {
	err := s.settings.RemoveKeyword(c.Request.Context(), c.Param("keyword"))
	switch {
	case errors.Is(err, settings.ErrKeywordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, settings.ErrEmptyKeyword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		s.internalError(c, "remove keyword", err)
	default:
		c.Status(http.StatusNoContent)
	}
}

// handleClearKeywords handles DELETE /api/v1/keywords.
func (s *Server) handleClearKeywords(c *gin.Context) {
	if err := s.settings.ClearKeywords(c.Request.Context()); err != nil {
		s.internalError(c, "clear keywords", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleClassify handles POST /api/v1/classify. Posts are classified against
// the settings in the request, or the stored settings when none are given.
func (s *Server) handleClassify(c *gin.Context) {
	start := time.Now()

	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var snapshot filter.Settings
	if req.Settings != nil {
		snapshot = req.Settings.Clone()
	} else {
		current, err := s.settings.Load(c.Request.Context())
		if err != nil {
			s.internalError(c, "load settings", err)
			return
		}
		snapshot = current
	}

	for i := range req.Posts {
		if req.Posts[i].Kind != feed.KindAd {
			req.Posts[i].Kind = feed.KindPost
		}
	}

	result := feed.Apply(req.Posts, snapshot)
	s.metrics.ObservePass(triggerAPI, result, time.Since(start))

	resp := classifyResponse{
		Results: make([]postVerdict, len(req.Posts)),
		Summary: result,
	}
	for i, p := range req.Posts {
		resp.Results[i] = postVerdict{ID: p.ID, Verdict: result.Verdicts[i]}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) internalError(c *gin.Context, op string, err error) {
	slog.Error("request failed", "op", op, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": op + " failed"})
}
