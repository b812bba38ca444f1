package main

import (
	"net/http"

	"github.com/eadminhq/eadmin_backend/models"
	"github.com/gin-gonic/gin"
)

func listNotificationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "No token provided."})
			return
		}

		notifications, unreadCount, err := models.ListNotifications(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if len(notifications) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"Success": false, "Message": "No notifications found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"Success":     true,
			"Data":        notifications,
			"UnreadCount": unreadCount,
		})
	}
}

func markNotificationAsReadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		if _, err := getSessionUser(c.Request.Context()); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "No token provided."})
			return
		}

		notification, err := models.MarkNotificationAsRead(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"Success": true,
			"Message": "Notification marked as read",
			"Data":    notification,
		})
	}
}
