package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-portal/internal/appointment"
	"hospital-portal/internal/middleware"
	"hospital-portal/internal/upstream"
	"hospital-portal/internal/utils"
)

// AppointmentHandler exposes the booking form data, the caller's booking
// list, and the submit/cancel operations.
type AppointmentHandler struct {
	API *upstream.Client
	Log *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(api *upstream.Client, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{API: api, Log: log}
}

func (h *AppointmentHandler) workflow(c *gin.Context) *appointment.Workflow {
	resolver, _ := middleware.GetResolver(c)
	return appointment.NewWorkflow(h.API, resolver, c.Request.Cookies(), h.Log)
}

// Doctors returns the roster and the slot table for the booking form.
// When the backend roster is down the built-in fallback is served and the
// response is flagged degraded; the form stays usable.
func (h *AppointmentHandler) Doctors(c *gin.Context) {
	wf := h.workflow(c)
	if err := wf.LoadDoctors(c.Request.Context()); err != nil {
		writeUpstreamError(c, err)
		return
	}
	utils.Success(c, "Doctor roster", gin.H{
		"doctors":   wf.Doctors(),
		"degraded":  wf.Degraded(),
		"timeSlots": appointment.TimeSlots(),
	})
}

// List returns the caller's bookings.
func (h *AppointmentHandler) List(c *gin.Context) {
	wf := h.workflow(c)
	if err := wf.LoadAppointments(c.Request.Context()); err != nil {
		writeUpstreamError(c, err)
		return
	}
	utils.Success(c, "Appointments", wf.Appointments())
}

// Create books an appointment from a draft.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var draft appointment.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	created, err := h.workflow(c).Submit(c.Request.Context(), draft)
	if err != nil {
		var validationErr *appointment.ValidationError
		switch {
		case errors.Is(err, appointment.ErrLoginRequired):
			utils.Unauthorized(c, "Please log in or sign up to book an appointment.")
		case errors.Is(err, appointment.ErrBusy):
			utils.Conflict(c, "A booking is already being submitted.")
		case errors.As(err, &validationErr):
			utils.BadRequest(c, validationErr.Error())
		default:
			writeUpstreamError(c, err)
		}
		return
	}
	utils.Created(c, "Appointment booked", created)
}

// Cancel removes a booking after interactive confirmation, passed by the
// client as confirm=true. The list is updated optimistically and returned
// reconciled.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid appointment id")
		return
	}
	confirmed := c.Query("confirm") == "true"

	wf := h.workflow(c)
	if err := wf.LoadAppointments(c.Request.Context()); err != nil {
		writeUpstreamError(c, err)
		return
	}

	if err := wf.Cancel(c.Request.Context(), id, confirmed); err != nil {
		switch {
		case errors.Is(err, appointment.ErrConfirmationRequired):
			utils.BadRequest(c, "Cancellation must be confirmed.")
		case errors.Is(err, appointment.ErrUnknownAppointment):
			utils.NotFound(c, "Appointment not found")
		default:
			writeUpstreamError(c, err)
		}
		return
	}
	utils.Success(c, "Appointment cancelled", gin.H{"appointments": wf.Appointments()})
}
