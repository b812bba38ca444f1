package models_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/eadminhq/eadmin_backend/config"
	"github.com/eadminhq/eadmin_backend/models"
	"github.com/eadminhq/eadmin_backend/utils"
	"github.com/eadminhq/eadmin_backend/workflow"
)

// End-to-end flow against real MySQL and Redis containers: a student files a
// report, an administrator works it through comments and a task, and the
// notification rows produced along the way are checked at each step.
func TestReportTaskNotificationFlow(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "eadmin_test")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	admin, err := models.CreateUser(ctx, &models.NewUser{
		Username: "admin1", FullName: "Admin One", Password: "pw", Role: models.UserRoleAdmin,
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	instructor, err := models.CreateUser(ctx, &models.NewUser{
		Username: "inst1", FullName: "Instructor One", Password: "pw", Role: models.UserRoleInstructor,
	})
	if err != nil {
		t.Fatalf("create instructor: %v", err)
	}
	student, err := models.CreateUser(ctx, &models.NewUser{
		Username: "stud1", FullName: "Student One", Password: "pw", Role: models.UserRoleStudent,
	})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}

	// Student files a report; every administrator is told.
	report, err := workflow.CreateReport(ctx, &models.NewReport{
		Title:    "Equipment",
		Content:  "Projector in lab 3 will not power on",
		SenderId: student.ID,
	})
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if report.Status != models.ReportStatusPending {
		t.Fatalf("new report status = %s", report.Status)
	}
	adminNotifs, _, err := models.ListNotifications(ctx, admin.ID)
	if err != nil {
		t.Fatalf("ListNotifications(admin): %v", err)
	}
	if len(adminNotifs) != 1 || adminNotifs[0].ActionType != models.ActionNewReport {
		t.Fatalf("admin notifications after report = %+v", adminNotifs)
	}

	// Status change notifies the sender; repeating the same status stays silent.
	if _, err := workflow.UpdateReportStatus(ctx, admin.ID, report.ID, models.ReportStatusInProgress); err != nil {
		t.Fatalf("UpdateReportStatus: %v", err)
	}
	if _, err := workflow.UpdateReportStatus(ctx, admin.ID, report.ID, models.ReportStatusInProgress); err != nil {
		t.Fatalf("UpdateReportStatus repeat: %v", err)
	}
	studentNotifs, _, err := models.ListNotifications(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListNotifications(student): %v", err)
	}
	if len(studentNotifs) != 1 || studentNotifs[0].ActionType != models.ActionStatusChange {
		t.Fatalf("student notifications after status change = %+v", studentNotifs)
	}
	if want := "Your report status has been updated to InProgress"; studentNotifs[0].Content != want {
		t.Fatalf("status change content = %q", studentNotifs[0].Content)
	}

	// Admin comment alerts the sender; the sender commenting on their own
	// report alerts the administrators.
	if _, err := workflow.AddComment(ctx, admin.Role, report.ID, &models.NewComment{
		UserId: admin.ID, Content: "We are looking into it",
	}); err != nil {
		t.Fatalf("AddComment(admin): %v", err)
	}
	if _, err := workflow.AddComment(ctx, student.Role, report.ID, &models.NewComment{
		UserId: student.ID, Content: "Thanks, it is still down",
	}); err != nil {
		t.Fatalf("AddComment(student): %v", err)
	}
	studentNotifs, _, _ = models.ListNotifications(ctx, student.ID)
	if len(studentNotifs) != 2 {
		t.Fatalf("student should have status + admin-comment notifications, got %d", len(studentNotifs))
	}
	adminNotifs, _, _ = models.ListNotifications(ctx, admin.ID)
	if len(adminNotifs) != 2 || adminNotifs[0].ActionType != models.ActionUserComment {
		t.Fatalf("admin notifications after user comment = %+v", adminNotifs)
	}

	// Only administrators create tasks; the assignee is told.
	reportId := report.ID
	if _, err := workflow.CreateTask(ctx, student.ID, student.Role, &models.NewTask{
		Title: "nope", Content: "nope", AssigneesId: instructor.ID,
	}); !errors.Is(err, utils.ErrorUnauthorized) {
		t.Fatalf("student CreateTask err = %v, want unauthorized", err)
	}
	task, err := workflow.CreateTask(ctx, admin.ID, admin.Role, &models.NewTask{
		Title:       "Check projector",
		Content:     "Inspect the lab 3 projector and replace the bulb if needed",
		AssigneesId: instructor.ID,
		ReportId:    &reportId,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	instNotifs, _, _ := models.ListNotifications(ctx, instructor.ID)
	if len(instNotifs) != 1 || instNotifs[0].ActionType != models.ActionNewTask {
		t.Fatalf("instructor notifications after task = %+v", instNotifs)
	}

	// Visibility: the assignee and administrators see the task, others get an
	// authorization failure even though the record exists.
	if _, err := workflow.GetTask(ctx, student.ID, student.Role, task.ID); !errors.Is(err, utils.ErrorUnauthorized) {
		t.Fatalf("student GetTask err = %v, want unauthorized", err)
	}
	if _, err := workflow.GetTask(ctx, instructor.ID, instructor.Role, task.ID); err != nil {
		t.Fatalf("assignee GetTask: %v", err)
	}

	// Pending -> InProgress -> Completed, then no further advance.
	task, err = workflow.AdvanceTask(ctx, instructor.ID, instructor.Role, task.ID)
	if err != nil {
		t.Fatalf("first advance: %v", err)
	}
	if task.Status != models.TaskStatusInProgress {
		t.Fatalf("first advance status = %s", task.Status)
	}
	task, err = workflow.AdvanceTask(ctx, instructor.ID, instructor.Role, task.ID)
	if err != nil {
		t.Fatalf("second advance: %v", err)
	}
	if task.Status != models.TaskStatusCompleted {
		t.Fatalf("second advance status = %s", task.Status)
	}
	if task.ComplatedAt == nil {
		t.Fatal("completion timestamp not set")
	}
	if _, err := workflow.AdvanceTask(ctx, instructor.ID, instructor.Role, task.ID); err == nil {
		t.Fatal("advance past Completed should fail")
	}

	// Cancel works from any status and drops the task from the default list.
	task, err = workflow.CancelTask(ctx, admin.ID, admin.Role, task.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if task.Status != models.TaskStatusCanceled {
		t.Fatalf("cancel status = %s", task.Status)
	}
	tasks, _, err := workflow.ListTasks(ctx, admin.ID, admin.Role, &models.TaskFilter{Page: 1})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	for _, tk := range tasks {
		if tk.ID == task.ID {
			t.Fatal("canceled task still in default list")
		}
	}
	canceled := models.TaskStatusCanceled
	tasks, _, err = workflow.ListTasks(ctx, admin.ID, admin.Role, &models.TaskFilter{Status: &canceled, Page: 1})
	if err != nil || len(tasks) != 1 {
		t.Fatalf("explicit Canceled filter: tasks=%d err=%v", len(tasks), err)
	}

	// The unread counter is system-wide; reading one row decrements it for
	// everyone.
	_, unreadBefore, err := models.ListNotifications(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	studentNotifs, _, _ = models.ListNotifications(ctx, student.ID)
	if _, err := models.MarkNotificationAsRead(ctx, studentNotifs[0].ID); err != nil {
		t.Fatalf("MarkNotificationAsRead: %v", err)
	}
	_, unreadAfterStudent, _ := models.ListNotifications(ctx, student.ID)
	_, unreadAfterAdmin, _ := models.ListNotifications(ctx, admin.ID)
	if unreadAfterStudent != unreadBefore-1 || unreadAfterAdmin != unreadBefore-1 {
		t.Fatalf("unread counts: before=%d student=%d admin=%d", unreadBefore, unreadAfterStudent, unreadAfterAdmin)
	}

	// Deleting the report removes its comments and detaches the task.
	if err := workflow.DeleteReport(ctx, report.ID); err != nil {
		t.Fatalf("DeleteReport: %v", err)
	}
	if _, err := models.GetReportById(ctx, report.ID); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("deleted report lookup err = %v", err)
	}
	detached, err := models.GetTaskById(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskById after delete: %v", err)
	}
	if detached.ReportId != nil {
		t.Fatal("task still references the deleted report")
	}
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("eadmin-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "redis-cli", "ping")
		if err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("eadmin-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=eadmin_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	// Example: "127.0.0.1:49154\n"
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
