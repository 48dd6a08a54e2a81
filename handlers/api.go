// Package handlers wires the scan, enrollment and admin flows to the HTTP
// API.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/D13garg/ucs503p-202526odd-alpha/attendance"
	"github.com/D13garg/ucs503p-202526odd-alpha/auth"
	"github.com/D13garg/ucs503p-202526odd-alpha/camera"
	"github.com/D13garg/ucs503p-202526odd-alpha/config"
	"github.com/D13garg/ucs503p-202526odd-alpha/database"
	"github.com/D13garg/ucs503p-202526odd-alpha/models"
	"github.com/D13garg/ucs503p-202526odd-alpha/scanner"
)

// ScanRunner is the camera-owning operation surface the API calls into.
// Satisfied by scanner.Service; faked in tests.
type ScanRunner interface {
	ScanOnce(ctx context.Context, expected []string, timeout time.Duration) models.ScanOutcome
	Enroll(ctx context.Context, roll string, timeout time.Duration) error
}

type API struct {
	cfg    config.Config
	scans  ScanRunner
	db     *database.DB
	logbk  *attendance.Log
	slots  []models.SlotContext
	groups models.GroupMembership
	active *ActiveSlot
	tokens *auth.TokenStore
	now    func() time.Time
	log    *slog.Logger
}

func NewAPI(cfg config.Config, scans ScanRunner, db *database.DB, logbk *attendance.Log,
	slots []models.SlotContext, groups models.GroupMembership, tokens *auth.TokenStore) *API {
	return &API{
		cfg:    cfg,
		scans:  scans,
		db:     db,
		logbk:  logbk,
		slots:  slots,
		groups: groups,
		active: &ActiveSlot{},
		tokens: tokens,
		now:    time.Now,
		log:    slog.Default().With("component", "api"),
	}
}

func (a *API) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Attendance backend running"})
}

func (a *API) Slots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": a.slots})
}

func (a *API) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "password required"})
		return
	}
	token, ok := a.tokens.Login(req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "Invalid password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token})
}

func (a *API) GetActiveSlot(c *gin.Context) {
	slot, ok := a.active.Get()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"active_slot": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_slot": slot})
}

func (a *API) SetSlot(c *gin.Context) {
	var req models.SetSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "slot_id required"})
		return
	}
	slot, ok := config.FindSlot(a.slots, req.SlotID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Slot not found"})
		return
	}
	a.active.Set(slot)
	a.log.Info("active slot set", "slot", slot.ID, "subject", slot.Subject)
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Active slot set", "active": slot})
}

func (a *API) Attendance(c *gin.Context) {
	subject := c.Query("subject")
	if subject == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "subject query param required"})
		return
	}
	rows, err := a.logbk.Rows(subject, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": err.Error()})
		return
	}

	type namedRow struct {
		attendance.Row
		Name string `json:"name,omitempty"`
	}
	out := make([]namedRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, namedRow{Row: r, Name: a.db.StudentName(r.RollNumber)})
	}
	c.JSON(http.StatusOK, gin.H{"subject": subject, "rows": out})
}

func (a *API) Enroll(c *gin.Context) {
	var req models.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "roll_no required"})
		return
	}

	// With a roster configured, only known students can enroll.
	if a.db.HasRoster() && a.db.StudentName(req.RollNumber) == "" {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "roll_no": req.RollNumber,
			"message": "Roll number not in roster"})
		return
	}

	timeout := time.Duration(a.cfg.EnrollTimeoutSeconds) * time.Second
	err := a.scans.Enroll(c.Request.Context(), req.RollNumber, timeout)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true, "roll_no": req.RollNumber,
			"message": "Enrollment complete for " + req.RollNumber})
	case errors.Is(err, scanner.ErrInvalidRoll):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "roll_no": req.RollNumber, "message": err.Error()})
	case errors.Is(err, scanner.ErrNoFaceCaptured):
		c.JSON(http.StatusOK, gin.H{"ok": false, "roll_no": req.RollNumber,
			"message": "No face captured. Please try again."})
	case errors.Is(err, camera.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "roll_no": req.RollNumber, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "roll_no": req.RollNumber, "message": err.Error()})
	}
}

// Scan runs one verification session against the active (or explicitly
// named) slot and records the decision whenever a roll number is known.
func (a *API) Scan(c *gin.Context) {
	var req models.ScanRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	var slot models.SlotContext
	var ok bool
	if req.ExpectedSlotID != "" {
		slot, ok = config.FindSlot(a.slots, req.ExpectedSlotID)
	} else {
		slot, ok = a.active.Get()
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "No active slot"})
		return
	}

	timeout := time.Duration(a.cfg.ScanTimeoutSeconds) * time.Second
	outcome := a.scans.ScanOnce(c.Request.Context(), slot.Students, timeout)
	decision := attendance.Decide(outcome, slot, a.groups)

	// INVALID_BARCODE_FORMAT carries the raw decoded string, not a roll
	// number; only outcomes identifying a student are persisted.
	if outcome.HasRollNumber() {
		date := a.now().Format("2006-01-02")
		if err := a.logbk.Append(slot.Subject, date, slot.Time, decision.RollNumber, decision.Status); err != nil {
			a.log.Error("recording attendance", "error", err)
		}
	}
	c.JSON(http.StatusOK, decision)
}
