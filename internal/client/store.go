package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hbjsyndicate/syndicate-api/internal/api/validation"
	"github.com/hbjsyndicate/syndicate-api/internal/models"
)

// Fixed texts for failures the server did not explain.
const (
	MessageNetworkError = "Network error. Please check your connection and try again."
	MessageUnknownError = "Something went wrong"
)

var (
	// ErrInFlight is returned when a submission is already outstanding.
	ErrInFlight = errors.New("a submission is already in progress")
	// ErrIncomplete is returned when a required field is empty.
	ErrIncomplete = errors.New("required fields are missing")
	// ErrUnknownField is returned by SetField for a name the form does not have.
	ErrUnknownField = errors.New("unknown form field")
)

// Status is the lifecycle position of a Store.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSubmitted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSubmitted:
		return "submitted"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is a snapshot of a Store.
type State struct {
	Status         Status
	IsLoading      bool
	IsSubmitted    bool
	Error          string
	SuccessMessage string
}

// Pending is one outstanding submission.
type Pending struct {
	done  chan struct{}
	final State
}

// Done is closed once the submission has resolved.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the submission resolves or ctx ends.
func (p *Pending) Wait(ctx context.Context) (State, error) {
	select {
	case <-p.done:
		return p.final, nil
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

// Store holds one contact form and drives its submission lifecycle. At most
// one request is in flight per Store.
type Store struct {
	transport Transport

	mu    sync.Mutex
	form  models.Submission
	state State

	notifyMu    sync.Mutex
	subscribers map[int]func(State)
	nextSubID   int
}

// NewStore creates an idle store with an empty form.
func NewStore(transport Transport) *Store {
	return &Store{
		transport:   transport,
		subscribers: make(map[int]func(State)),
	}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Form returns the current form values.
func (s *Store) Form() models.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Subscribe registers fn to receive the state after every change and
// returns a function that removes it. fn must not modify the store.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.notifyMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.notifyMu.Unlock()

	return func() {
		s.notifyMu.Lock()
		delete(s.subscribers, id)
		s.notifyMu.Unlock()
	}
}

func (s *Store) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	state := s.State()
	for _, fn := range s.subscribers {
		fn(state)
	}
}

// Submit starts sending the form. The form must pass the required-fields
// check and no other submission may be outstanding; otherwise nothing is
// sent and the state is unchanged. Once started, the request is not
// cancelled by ctx; use Pending.Wait to stop waiting for it.
func (s *Store) Submit(ctx context.Context) (*Pending, error) {
	s.mu.Lock()
	if s.state.IsLoading {
		s.mu.Unlock()
		return nil, ErrInFlight
	}
	if !validation.HasRequiredFields(s.form) {
		s.mu.Unlock()
		return nil, ErrIncomplete
	}

	payload := s.form
	s.state = State{Status: StatusLoading, IsLoading: true}
	s.mu.Unlock()
	s.notify()

	reqCtx := context.WithoutCancel(ctx)
	p := &Pending{done: make(chan struct{})}
	go func() {
		result, err := s.transport.Submit(reqCtx, payload)

		s.mu.Lock()
		s.state = resolve(result, err)
		p.final = s.state
		s.mu.Unlock()

		s.notify()
		close(p.done)
	}()

	return p, nil
}

func resolve(result *Result, err error) State {
	if err != nil || result == nil {
		return State{Status: StatusFailed, Error: MessageNetworkError}
	}
	if result.Success {
		return State{Status: StatusSubmitted, IsSubmitted: true, SuccessMessage: result.Message}
	}
	return State{Status: StatusFailed, Error: rejectionText(result)}
}

func rejectionText(result *Result) string {
	if result.Message != "" {
		return result.Message
	}
	if len(result.Errors) > 0 {
		return strings.Join(result.Errors, ", ")
	}
	return MessageUnknownError
}

// UpdateForm applies edit to the form and clears any displayed error.
func (s *Store) UpdateForm(edit func(*models.Submission)) {
	s.mu.Lock()
	edit(&s.form)
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}

// SetField sets one form field by its JSON name. newsletter accepts "true"
// and "false".
func (s *Store) SetField(name, value string) error {
	var set func(*models.Submission)
	switch name {
	case "firstName":
		set = func(f *models.Submission) { f.FirstName = value }
	case "lastName":
		set = func(f *models.Submission) { f.LastName = value }
	case "email":
		set = func(f *models.Submission) { f.Email = value }
	case "phone":
		set = func(f *models.Submission) { f.Phone = value }
	case "company":
		set = func(f *models.Submission) { f.Company = value }
	case "service":
		set = func(f *models.Submission) { f.Service = value }
	case "budget":
		set = func(f *models.Submission) { f.Budget = value }
	case "timeline":
		set = func(f *models.Submission) { f.Timeline = value }
	case "message":
		set = func(f *models.Submission) { f.Message = value }
	case "newsletter":
		switch value {
		case "true":
			set = func(f *models.Submission) { f.Newsletter = true }
		case "false":
			set = func(f *models.Submission) { f.Newsletter = false }
		default:
			return fmt.Errorf("newsletter must be true or false, got %q", value)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	s.UpdateForm(set)
	return nil
}

// ClearError hides the current error without touching the form.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}

// Reset empties the form and returns to idle. It is refused while a
// submission is outstanding.
func (s *Store) Reset() error {
	s.mu.Lock()
	if s.state.IsLoading {
		s.mu.Unlock()
		return ErrInFlight
	}
	s.form = models.Submission{}
	s.state = State{Status: StatusIdle}
	s.mu.Unlock()
	s.notify()
	return nil
}
