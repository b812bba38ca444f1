package workflow

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/eadminhq/eadmin_backend/config"
	"github.com/eadminhq/eadmin_backend/models"
	"github.com/eadminhq/eadmin_backend/utils"
	"github.com/sirupsen/logrus"
)

const (
	licenseEmailSubject = "e-Administration: Software License Expiration"
	// Reminders for the same address are suppressed inside this window.
	licenseEmailResendWindow = 7 * 24 * time.Hour
	// Licenses expiring inside this window trigger reminders.
	licenseExpiryWindow = 30 * 24 * time.Hour

	licenseSweepLockKey = "license-email-sweep"
)

type LicenseEmailSweeper struct {
	Logger       *logrus.Logger
	PollInterval time.Duration
}

func NewLicenseEmailSweeper(logger *logrus.Logger) *LicenseEmailSweeper {
	interval := 10 * time.Minute
	if v := strings.TrimSpace(os.Getenv("LICENSE_SWEEP_INTERVAL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			interval = time.Duration(n) * time.Second
		}
	}
	return &LicenseEmailSweeper{
		Logger:       logger,
		PollInterval: interval,
	}
}

// Run sweeps on a fixed interval until the context is canceled. The sweep is
// independent of request traffic and re-checks state before every send, so
// overlapping with request-driven mutations is harmless.
func (s *LicenseEmailSweeper) Run(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		s.sweepOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.PollInterval):
		}
	}
}

func (s *LicenseEmailSweeper) sweepOnce(ctx context.Context) {
	// Redis lock keeps replicas from sweeping concurrently. Best-effort: if
	// redis is down we still sweep; the 7-day resend throttle bounds the
	// damage of a duplicate.
	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, licenseSweepLockKey, s.PollInterval, nil)
		if err == redislock.ErrNotObtained {
			return
		}
		if err == nil {
			defer lock.Release(ctx)
		}
	}

	softwareList, err := models.GetExpiringSoftware(ctx, licenseExpiryWindow)
	if err != nil {
		config.LogError(s.Logger, "licenseEmailWorkflow.go", "sweepOnce", "GetExpiringSoftware", nil, err)
		return
	}

	for _, software := range softwareList {
		emails, err := models.InstructorEmailsForSoftware(ctx, software)
		if err != nil {
			config.LogError(s.Logger, "licenseEmailWorkflow.go", "sweepOnce", "InstructorEmailsForSoftware", software.ID, err)
			continue
		}
		for _, email := range emails {
			s.sendReminder(ctx, software, email)
		}
	}
}

func (s *LicenseEmailSweeper) sendReminder(ctx context.Context, software *models.Software, toEmail string) {
	recent, err := models.LastEmailSentWithin(ctx, toEmail, licenseEmailSubject, licenseEmailResendWindow)
	if err != nil {
		config.LogError(s.Logger, "licenseEmailWorkflow.go", "sendReminder", "LastEmailSentWithin", toEmail, err)
		return
	}
	if recent {
		return
	}

	body := licenseEmailBody(software)
	if err := utils.SendEmail(toEmail, licenseEmailSubject, body); err != nil {
		// Fire-and-forget: log and move on, no retry.
		config.LogError(s.Logger, "licenseEmailWorkflow.go", "sendReminder", "SendEmail", toEmail, err)
		return
	}
	if err := models.RecordEmail(ctx, toEmail, licenseEmailSubject, body); err != nil {
		config.LogError(s.Logger, "licenseEmailWorkflow.go", "sendReminder", "RecordEmail", toEmail, err)
	}
	s.Logger.WithFields(logrus.Fields{
		"module": "licenseEmailWorkflow.go",
		"email":  toEmail,
	}).Info("license expiration reminder sent")
}

func licenseEmailBody(software *models.Software) string {
	expire := "Expire Date"
	if software.LicenseExpire != nil {
		expire = software.LicenseExpire.Format("2006-01-02")
	}
	return fmt.Sprintf(
		"This email is sent from the e-Administration system to inform you that your software license for:\n"+
			"- Software: %s\n"+
			"- License Expiration Date: %s\n\n"+
			"is about to expire. Kindly notify the Admin or Technical Support team to take the necessary actions.\n\n"+
			"Best regards,\ne-Administration Team\n",
		software.Name, expire)
}
