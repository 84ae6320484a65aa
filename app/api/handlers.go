package api

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/podcast-comb/app/feed"
	"github.com/lysyi3m/podcast-comb/app/tasks"
)

func NewHandler(feedConfig *feed.Config, scheduler tasks.TaskSchedulerInterface,
	newTask func() *tasks.BuildFeedTask) *Handler {
	return &Handler{
		feedConfig: feedConfig,
		scheduler:  scheduler,
		newTask:    newTask,
	}
}

func (h *Handler) GetFeed(c *gin.Context) {
	info, err := os.Stat(h.feedConfig.OutputPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Error("Failed to stat feed file", "path", h.feedConfig.OutputPath, "error", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNotFound)
		return
	}

	status := h.scheduler.Status()

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(status.Result.Published))
	c.Header("X-Feed-Name", h.feedConfig.Name)
	c.Header("X-Last-Updated", info.ModTime().Format(time.RFC3339))

	c.File(h.feedConfig.OutputPath)
}

func (h *Handler) GetHealth(c *gin.Context) {
	status := h.scheduler.Status()

	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"feed":      h.feedConfig.Name,
		"source":    h.feedConfig.SourceURL,
		"builds":    status.Builds,
	}

	if status.LastAttemptAt != nil {
		health["last_attempt_at"] = status.LastAttemptAt.Format(time.RFC3339)
	}

	if status.LastSuccessAt != nil {
		health["last_success_at"] = status.LastSuccessAt.Format(time.RFC3339)
		health["items"] = map[string]interface{}{
			"total":     status.Result.Total,
			"matched":   status.Result.Matched,
			"published": status.Result.Published,
			"fallback":  status.Result.Fallback,
		}
	}

	code := http.StatusOK
	if status.LastError != "" {
		health["last_error"] = status.LastError
		// Still serving the previous file, but the operator should know
		if status.LastSuccessAt == nil {
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, health)
}

func (h *Handler) APIRebuildFeed(c *gin.Context) {
	task := h.newTask()

	err := h.scheduler.EnqueueTask(task)
	if errors.Is(err, tasks.ErrBuildPending) {
		c.JSON(http.StatusConflict, gin.H{"error": "A build is already queued"})
		return
	}
	if err != nil {
		slog.Error("Error enqueueing build task", "feed", h.feedConfig.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue build task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Build task enqueued",
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}
