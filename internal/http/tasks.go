package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/catalog/internal/logger"
)

// TasksController enqueues library warm-ups and reports task status.
type TasksController struct {
	queue TaskQueue
	log   logger.Logger
}

func NewTasksController(queue TaskQueue, log logger.Logger) *TasksController {
	return &TasksController{queue: queue, log: log}
}

// WarmLibrary handles POST /api/self/library/warm
func (tc *TasksController) WarmLibrary(c *gin.Context) {
	username := currentUsername(c)

	id, err := tc.queue.AddLibraryWarmup(c.Request.Context(), username)
	if err != nil {
		respondInternalError(c, tc.log, err, "enqueue library warm-up")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_id": id,
		"message": "library warm-up enqueued",
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, tc.log, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
