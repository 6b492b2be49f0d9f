// Package form walks a respondent through the ten waitlist questions.
//
// A Machine holds the current step, the answers typed so far and the state of
// the final submission. Answers are edited with Set and ToggleFeature and only
// checked when the respondent asks to move on with Advance. The network call
// for the last step is not made here; callers take the answers with Begin and
// report the outcome with Finish.
package form

import (
	"errors"
	"fmt"
	"sync"

	tourconnect "github.com/himaSH97/tc-servey"
)

var (
	ErrSubmitRequired    = errors.New("last step is submitted, not advanced")
	ErrSubmissionPending = errors.New("a submission is already in flight")
	ErrNotReady          = errors.New("answers can only be submitted from the last step")
	ErrAlreadySubmitted  = errors.New("response was already submitted")
	ErrUnknownField      = errors.New("unknown field")
)

// Step is a 1-based question number.
type Step int

const (
	StepEmail Step = iota + 1
	StepName
	StepUserType
	StepInterest
	StepFeatures
	StepWillingToPay
	StepFeeStructure
	StepComfortableAmount
	StepLikelihood
	StepComments
)

// Steps is the number of questions, used for progress display.
const Steps = int(StepComments)

var stepNames = map[Step]string{
	StepEmail:             "email",
	StepName:              "name",
	StepUserType:          "user type",
	StepInterest:          "interest",
	StepFeatures:          "features",
	StepWillingToPay:      "willing to pay",
	StepFeeStructure:      "fee structure",
	StepComfortableAmount: "comfortable amount",
	StepLikelihood:        "likelihood",
	StepComments:          "comments",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// SubmissionState tracks the final submission.
type SubmissionState int

const (
	Idle SubmissionState = iota
	Pending
	Succeeded
	Failed
)

func (s SubmissionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Field names a scalar answer. The names match the JSON payload.
type Field string

const (
	FieldEmail              Field = "email"
	FieldName               Field = "name"
	FieldUserType           Field = "userType"
	FieldUserTypeOther      Field = "userTypeOther"
	FieldInterested         Field = "interested"
	FieldFeaturesOther      Field = "featuresOther"
	FieldWillingToPay       Field = "willingToPay"
	FieldFeeStructure       Field = "feeStructure"
	FieldFeeStructureOther  Field = "feeStructureOther"
	FieldComfortableAmount  Field = "comfortableAmount"
	FieldLikelihood         Field = "likelihood"
	FieldAdditionalComments Field = "additionalComments"
)

// Machine is the form state. It is safe for concurrent use.
type Machine struct {
	mu      sync.Mutex
	step    Step
	answers tourconnect.Response
	state   SubmissionState
}

func New() *Machine {
	return &Machine{step: StepEmail}
}

func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

func (m *Machine) State() SubmissionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Answers returns a copy of the answers typed so far.
func (m *Machine) Answers() tourconnect.Response {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.answers.Clone()
}

// Set stores a scalar answer.
func (m *Machine) Set(field Field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Pending {
		return ErrSubmissionPending
	}

	a := &m.answers
	switch field {
	case FieldEmail:
		a.Email = value
	case FieldName:
		a.Name = value
	case FieldUserType:
		a.UserType = value
	case FieldUserTypeOther:
		a.UserTypeOther = value
	case FieldInterested:
		a.Interested = value
	case FieldFeaturesOther:
		a.FeaturesOther = value
	case FieldWillingToPay:
		a.WillingToPay = value
	case FieldFeeStructure:
		a.FeeStructure = value
	case FieldFeeStructureOther:
		a.FeeStructureOther = value
	case FieldComfortableAmount:
		a.ComfortableAmount = value
	case FieldLikelihood:
		score, err := tourconnect.ParseScore(value)
		if err != nil {
			return err
		}
		a.Likelihood = score
	case FieldAdditionalComments:
		a.AdditionalComments = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// ToggleFeature selects feature when it is not selected and deselects it
// otherwise.
func (m *Machine) ToggleFeature(feature string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Pending {
		return ErrSubmissionPending
	}

	features := m.answers.Features
	for i, f := range features {
		if f == feature {
			m.answers.Features = append(features[:i:i], features[i+1:]...)
			return nil
		}
	}
	m.answers.Features = append(features, feature)
	return nil
}

// Advance checks the current step and moves to the next one. A failed check
// returns a *ValidationError and leaves the machine where it was.
func (m *Machine) Advance() (Step, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Pending {
		return m.step, ErrSubmissionPending
	}
	if m.step == StepComments {
		return m.step, ErrSubmitRequired
	}
	if err := check(m.step, m.answers); err != nil {
		return m.step, err
	}

	m.step = next(m.step, m.answers)
	return m.step, nil
}

// Begin hands the answers over for submission and marks the machine pending.
// A response that was submitted successfully stays submitted until Reset.
func (m *Machine) Begin() (tourconnect.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.state == Pending:
		return tourconnect.Response{}, ErrSubmissionPending
	case m.state == Succeeded:
		return tourconnect.Response{}, ErrAlreadySubmitted
	case m.step != StepComments:
		return tourconnect.Response{}, ErrNotReady
	}

	m.state = Pending
	return m.answers.Clone(), nil
}

// Finish records the outcome of the submission started by Begin. A successful
// submission clears the answers; a failed one keeps them for another try.
func (m *Machine) Finish(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Pending {
		return
	}
	if err != nil {
		m.state = Failed
		return
	}
	m.answers = tourconnect.Response{}
	m.state = Succeeded
}

// Reset starts the form over.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.step = StepEmail
	m.answers = tourconnect.Response{}
	m.state = Idle
}
