package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/eadminhq/eadmin_backend/config"
	"github.com/eadminhq/eadmin_backend/models"
	"github.com/eadminhq/eadmin_backend/utils"
	"github.com/eadminhq/eadmin_backend/workflow"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// respondError translates store/workflow errors into the response envelope.
func respondError(c *gin.Context, err error) {
	var fieldErrs utils.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"Success": false,
			"Errors":  map[string]string(fieldErrs),
			"Message": "Invalid information! Please check the errors of the fields again.",
		})
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"Success": false, "Message": "Record not found"})
	case errors.Is(err, utils.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "You are not authorized to perform this action"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"Success": false, "Message": err.Error()})
	}
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"Success": false, "Message": "Invalid id"})
		return 0, false
	}
	return id, true
}

func createReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		senderId, err := strconv.Atoi(c.PostForm("senderId"))
		if err != nil || senderId <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"Success": false, "Message": "Invalid SenderId"})
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"Success": false, "Message": "Invalid multipart form"})
			return
		}

		input := models.NewReport{
			Title:    c.PostForm("title"),
			Content:  c.PostForm("content"),
			SenderId: senderId,
			Images:   form.File["images"],
		}

		report, err := workflow.CreateReport(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"Success": true, "Data": report})
	}
}

func getReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		report, err := models.GetReportById(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"Success": false, "Message": "Report not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"Success": true, "Data": report})
	}
}

func reportFilterFromQuery(c *gin.Context) (*models.ReportFilter, error) {
	filter := models.ReportFilter{}

	if category := c.Query("category"); category != "" {
		parsed, err := models.ParseReportCategory(category)
		if err != nil {
			return nil, err
		}
		filter.Category = &parsed
	}
	if status := c.Query("status"); status != "" {
		parsed, err := models.ParseReportStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = &parsed
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(config.SearchLimit)))
	return &filter, nil
}

func listOwnReportsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		senderId, err := strconv.Atoi(c.Query("senderId"))
		if err != nil || senderId <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"Success": false, "Message": "Invalid SenderId"})
			return
		}

		filter, err := reportFilterFromQuery(c)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.SenderId = senderId

		reports, totalCount, err := models.ListReports(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"Success":    true,
			"Data":       reports,
			"TotalCount": totalCount,
			"TotalPages": utils.TotalPages(totalCount, filter.PageSize),
		})
	}
}

func listAllReportsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "No token provided."})
			return
		}
		if !user.Role.IsAdmin() {
			c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "You do not have permission to view all reports."})
			return
		}

		filter, err := reportFilterFromQuery(c)
		if err != nil {
			respondError(c, err)
			return
		}

		reports, totalCount, err := models.ListReports(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"Success":    true,
			"Message":    "Reports retrieved successfully!",
			"Data":       reports,
			"TotalCount": totalCount,
			"TotalPages": utils.TotalPages(totalCount, filter.PageSize),
		})
	}
}

type updateReportStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func updateReportStatusHandler() gin.HandlerFunc {
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

		var req updateReportStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, utils.BindingErrorsToFields(err))
			return
		}
		status, err := models.ParseReportStatus(req.Status)
		if err != nil {
			respondError(c, err)
			return
		}

		report, err := workflow.UpdateReportStatus(c.Request.Context(), user.ID, id, status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"Success": true,
			"Message": "Report status updated successfully",
			"Data":    report,
		})
	}
}

func addCommentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}

		var req models.NewComment
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, utils.BindingErrorsToFields(err))
			return
		}

		commenter, err := models.GetUserById(c.Request.Context(), req.UserId)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"Success": false, "Message": "User not found"})
			return
		}

		comment, err := workflow.AddComment(c.Request.Context(), commenter.Role, id, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"Success": true, "Data": comment})
	}
}

func deleteReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		if err := workflow.DeleteReport(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"Success": true, "Message": "Report deleted successfully"})
	}
}

// exportReportsHandler streams every report as an .xlsx workbook (admin only).
func exportReportsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "No token provided."})
			return
		}
		if !user.Role.IsAdmin() {
			c.JSON(http.StatusUnauthorized, gin.H{"Success": false, "Message": "You do not have permission to export reports."})
			return
		}

		ctx, span := tracer.Start(c.Request.Context(), "reports.export")
		defer span.End()

		reports, _, err := models.ListReports(ctx, &models.ReportFilter{Page: 1, PageSize: 1 << 30})
		if err != nil {
			respondError(c, err)
			return
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := "Reports"
		f.SetSheetName("Sheet1", sheet)
		headers := []string{"ID", "Title", "Status", "Content", "Sender", "Images", "Created At", "Last Updated"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		for row, report := range reports {
			senderName := ""
			if report.Sender != nil {
				senderName = report.Sender.FullName
			}
			imageURLs := make([]string, 0, len(report.Images))
			for _, key := range report.Images {
				imageURLs = append(imageURLs, utils.BuildObjectAccessURL(key))
			}
			values := []interface{}{
				report.ID, string(report.Title), string(report.Status), report.Content,
				senderName,
				strings.Join(imageURLs, "\n"),
				report.CreatedAt.Format("2006-01-02 15:04:05"),
				report.UpdatedAt.Format("2006-01-02 15:04:05"),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		c.Header("Content-Disposition", `attachment; filename="reports.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil {
			logger := config.GetLogger()
			config.LogError(logger, "reports.go", "exportReportsHandler", "excelize.Write", nil, err)
		}
	}
}
