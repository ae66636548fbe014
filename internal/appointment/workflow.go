package appointment

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"hospital-portal/internal/models"
	"hospital-portal/internal/session"
	"hospital-portal/internal/upstream"
)

var (
	// ErrLoginRequired means an unauthenticated caller tried to book; the
	// view should offer login/signup instead of calling the backend.
	ErrLoginRequired = errors.New("login required to book an appointment")
	// ErrBusy means a submission is already in flight.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrClosed means the workflow's view has been unmounted.
	ErrClosed = errors.New("appointment view is closed")
	// ErrConfirmationRequired means a cancel was attempted without the
	// interactive confirmation.
	ErrConfirmationRequired = errors.New("cancellation requires confirmation")
	// ErrUnknownAppointment means the id is not in the local booking list.
	ErrUnknownAppointment = errors.New("no such appointment in the booking list")
)

// Workflow drives one appointment view: the doctor roster, the caller's
// booking list and the submission of new drafts. It is created per view
// and must be Closed when the view unmounts so late responses are ignored.
type Workflow struct {
	api      *upstream.Client
	resolver *session.Resolver
	cookies  []*http.Cookie
	log      *zap.Logger

	mu           sync.Mutex
	busy         bool
	closed       bool
	gen          uint64
	degraded     bool
	doctors      []models.Doctor
	appointments []models.Appointment
}

// NewWorkflow creates a workflow bound to the caller's session.
func NewWorkflow(api *upstream.Client, resolver *session.Resolver, cookies []*http.Cookie, log *zap.Logger) *Workflow {
	return &Workflow{
		api:      api,
		resolver: resolver,
		cookies:  cookies,
		log:      log,
	}
}

// Doctors returns a copy of the loaded roster.
func (w *Workflow) Doctors() []models.Doctor {
	w.mu.Lock()
	defer w.mu.Unlock()
	doctors := make([]models.Doctor, len(w.doctors))
	copy(doctors, w.doctors)
	return doctors
}

// Appointments returns a copy of the cached booking list.
func (w *Workflow) Appointments() []models.Appointment {
	w.mu.Lock()
	defer w.mu.Unlock()
	appointments := make([]models.Appointment, len(w.appointments))
	copy(appointments, w.appointments)
	return appointments
}

// Degraded reports whether the roster is the built-in fallback.
func (w *Workflow) Degraded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.degraded
}

// Close marks the view as unmounted. In-flight operations that complete
// afterwards leave the workflow state untouched.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.gen++
}

// begin snapshots the current generation, failing if the view is closed.
func (w *Workflow) begin() (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, ErrClosed
	}
	return w.gen, nil
}

// commit re-acquires the state lock if the workflow is still on the same
// generation. A false return means the response arrived too late.
func (w *Workflow) commit(gen uint64) bool {
	w.mu.Lock()
	if w.closed || w.gen != gen {
		w.mu.Unlock()
		return false
	}
	return true
}

// LoadDoctors fetches the roster. On any failure it substitutes the
// built-in fallback roster so the booking form stays usable; that path is
// a degraded mode, not an error.
func (w *Workflow) LoadDoctors(ctx context.Context) error {
	gen, err := w.begin()
	if err != nil {
		return err
	}

	doctors, err := w.api.Doctors(ctx, w.cookies)

	if !w.commit(gen) {
		return ErrClosed
	}
	defer w.mu.Unlock()

	if err != nil {
		w.log.Warn("doctor roster unavailable, using built-in fallback", zap.Error(err))
		w.doctors = FallbackRoster()
		w.degraded = true
		return nil
	}
	w.doctors = doctors
	w.degraded = false
	return nil
}

// LoadAppointments fetches the caller's bookings. A failure here is
// reported but must not block the booking form.
func (w *Workflow) LoadAppointments(ctx context.Context) error {
	gen, err := w.begin()
	if err != nil {
		return err
	}

	appointments, err := w.api.Appointments(ctx, w.cookies)

	if !w.commit(gen) {
		return ErrClosed
	}
	defer w.mu.Unlock()

	if err != nil {
		return err
	}
	w.appointments = appointments
	return nil
}

// Submit books an appointment from a draft. The busy flag is taken
// synchronously at entry so a rapid double submission cannot race. An
// unauthenticated caller gets ErrLoginRequired before any network call,
// and an invalid draft is rejected locally.
func (w *Workflow) Submit(ctx context.Context, draft Draft) (*models.Appointment, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, ErrClosed
	}
	if w.busy {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	w.busy = true
	gen := w.gen
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
	}()

	if !w.resolver.Current().Authenticated {
		return nil, ErrLoginRequired
	}
	if err := ValidateDraft(draft, time.Now()); err != nil {
		return nil, err
	}

	created, err := w.api.CreateAppointment(ctx, w.cookies, models.AppointmentRequest{
		DoctorID:        draft.DoctorID,
		AppointmentDate: draft.Date,
		AppointmentTime: draft.Time,
		Symptoms:        draft.Symptoms,
		Status:          models.StatusScheduled,
	})
	if err != nil {
		return nil, err
	}

	if !w.commit(gen) {
		return nil, ErrClosed
	}
	w.appointments = append(w.appointments, *created)
	w.mu.Unlock()
	return created, nil
}

// Cancel removes a booking. The entry is taken out of the local list
// before the backend call and put back in place if the call fails, so the
// view updates immediately but never lies for long.
func (w *Workflow) Cancel(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	gen := w.gen
	index := -1
	for i, a := range w.appointments {
		if a.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		w.mu.Unlock()
		return ErrUnknownAppointment
	}
	removed := w.appointments[index]
	w.appointments = append(w.appointments[:index], w.appointments[index+1:]...)
	w.mu.Unlock()

	if err := w.api.CancelAppointment(ctx, w.cookies, id); err != nil {
		if w.commit(gen) {
			// Roll the optimistic removal back at its original position.
			w.appointments = append(w.appointments, models.Appointment{})
			copy(w.appointments[index+1:], w.appointments[index:])
			w.appointments[index] = removed
			w.mu.Unlock()
		}
		return err
	}
	return nil
}
