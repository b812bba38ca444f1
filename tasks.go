package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/eadminhq/eadmin_backend/models"
	"github.com/eadminhq/eadmin_backend/utils"
	"github.com/eadminhq/eadmin_backend/workflow"
	"github.com/gin-gonic/gin"
)

func createTaskHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "No token provided."})
			return
		}

		var input models.NewTask
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.BindingErrorsToFields(err))
			return
		}

		task, err := workflow.CreateTask(c.Request.Context(), user.ID, user.Role, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"Success": true,
			"Message": "Task created successfully",
			"Data":    task,
		})
	}
}

type taskListRequest struct {
	Status      string `json:"status"`
	SearchValue string `json:"searchValue"`
	Page        int    `json:"page"`
}

func listTasksHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "No token provided."})
			return
		}

		// An empty body means "first page, no filter".
		var req taskListRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(c, utils.BindingErrorsToFields(err))
			return
		}

		filter := models.TaskFilter{SearchValue: req.SearchValue, Page: req.Page}
		if req.Status != "" {
			status, err := models.ParseTaskStatus(req.Status)
			if err != nil {
				respondError(c, err)
				return
			}
			filter.Status = &status
		}

		tasks, totalPages, err := workflow.ListTasks(c.Request.Context(), user.ID, user.Role, &filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"Success":    true,
			"Data":       tasks,
			"TotalPages": totalPages,
		})
	}
}

func getTaskByIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "No token provided."})
			return
		}

		task, err := workflow.GetTask(c.Request.Context(), user.ID, user.Role, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"Success": true, "Data": task})
	}
}

func changeTaskStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "No token provided."})
			return
		}

		task, err := workflow.AdvanceTask(c.Request.Context(), user.ID, user.Role, id)
		if err != nil {
			// The frontend treats any advance failure here as a 400.
			if errors.Is(err, utils.ErrorUnauthorized) {
				c.JSON(http.StatusBadRequest, gin.H{"Success": false, "Message": "You are not authorized to perform this action"})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"Success": true,
			"Message": "Task status changed successfully",
			"Data":    task,
		})
	}
}

func cancelTaskHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "No token provided."})
			return
		}

		task, err := workflow.CancelTask(c.Request.Context(), user.ID, user.Role, id)
		if err != nil {
			if errors.Is(err, utils.ErrorUnauthorized) {
				c.JSON(http.StatusBadRequest, gin.H{"Success": false, "Message": "You are not authorized to perform this action"})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"Success": true,
			"Message": "Task canceled successfully",
			"Data":    task,
		})
	}
}

func editTaskHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "No token provided."})
			return
		}

		var input models.EditTask
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.BindingErrorsToFields(err))
			return
		}

		task, err := workflow.EditTask(c.Request.Context(), user.ID, user.Role, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"Success": true,
			"Message": "Task updated successfully",
			"Data":    task,
		})
	}
}
