package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	tourconnect "github.com/himaSH97/tc-servey"
	"github.com/himaSH97/tc-servey/client"
	"github.com/himaSH97/tc-servey/form"
	"github.com/himaSH97/tc-servey/locale"
	"go.uber.org/zap"
	"golang.org/x/text/message"
)

var errQuit = errors.New("quit")

type question struct {
	title   string
	field   form.Field
	options []string
	other   form.Field
}

var questions = map[form.Step]question{
	form.StepEmail:             {title: "Welcome! Let's start with your email", field: form.FieldEmail},
	form.StepName:              {title: "What's your name?", field: form.FieldName},
	form.StepUserType:          {title: "What best describes you?", field: form.FieldUserType, options: tourconnect.UserTypes, other: form.FieldUserTypeOther},
	form.StepInterest:          {title: "Would you be interested in joining our platform?", field: form.FieldInterested, options: tourconnect.InterestLevels},
	form.StepFeatures:          {title: "Which features matter most to you? (numbers toggle, empty line continues)", options: tourconnect.Features, other: form.FieldFeaturesOther},
	form.StepWillingToPay:      {title: "Would you be willing to pay a small fee to use the platform?", field: form.FieldWillingToPay, options: tourconnect.PaymentAnswers},
	form.StepFeeStructure:      {title: "Which fee structure would you prefer?", field: form.FieldFeeStructure, options: tourconnect.FeeStructures, other: form.FieldFeeStructureOther},
	form.StepComfortableAmount: {title: "How much would you be comfortable paying? (e.g., Rs. 500 or 10%)", field: form.FieldComfortableAmount},
	form.StepLikelihood:        {title: "How likely are you to use the platform? (1-5)", field: form.FieldLikelihood},
	form.StepComments:          {title: "Anything else you'd like to share? (optional)", field: form.FieldAdditionalComments},
}

// terminal runs the waitlist form over a line-based reader and writer.
type terminal struct {
	in      *bufio.Scanner
	mu      sync.Mutex
	out     io.Writer
	session *client.Session
	pref    *locale.Preference
	log     *zap.SugaredLogger
}

func (t *terminal) printer() *message.Printer {
	return locale.Printer(t.pref.Tag())
}

func (t *terminal) printf(format string, args ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

// notice prints the localized text for key.
func (t *terminal) notice(key string) {
	t.printf("! %s\n", t.printer().Sprintf(key))
}

// celebrate is the session's success callback.
func (t *terminal) celebrate(name string) {
	t.printf("🎉🎊 Welcome aboard, %s! 🎊🎉\n", name)
}

// readLine returns the next input line. Lines starting with ':' are
// commands and handled here.
func (t *terminal) readLine() (string, error) {
	for {
		t.printf("> ")
		if !t.in.Scan() {
			if err := t.in.Err(); err != nil {
				return "", err
			}
			return "", errQuit
		}
		line := strings.TrimSpace(t.in.Text())

		switch {
		case line == ":quit":
			return "", errQuit
		case strings.HasPrefix(line, ":lang"):
			if err := t.pref.Set(strings.TrimSpace(strings.TrimPrefix(line, ":lang"))); err != nil {
				t.printf("! %v\n", err)
				continue
			}
			t.printf("language: %s\n", t.pref.Tag())
			continue
		}
		return line, nil
	}
}

// run walks the form until the respondent quits.
func (t *terminal) run(ctx context.Context) error {
	m := t.session.Form()
	for {
		step := m.Step()
		q := questions[step]
		t.printf("\nStep %d of %d: %s\n", step, form.Steps, q.title)

		if err := t.ask(step, q); err != nil {
			return err
		}

		if step == form.StepComments {
			t.printf("%s\n", t.printer().Sprintf("submit.pending"))
		}

		_, err := t.session.Advance(ctx)
		switch {
		case err == nil && m.State() == form.Succeeded:
			t.notice(client.Notice(nil))
			again, err := t.confirm("Submit another response? [y/N]")
			if err != nil || !again {
				return err
			}
			t.session.SubmitAnother()
		case err != nil:
			t.log.Debugw("advance", "step", step.String(), "error", err)
			t.notice(client.Notice(err))
		}
	}
}

// ask collects the answers for one step.
func (t *terminal) ask(step form.Step, q question) error {
	m := t.session.Form()

	if step == form.StepFeatures {
		return t.askFeatures(q)
	}

	if len(q.options) == 0 {
		line, err := t.readLine()
		if err != nil {
			return err
		}
		err = m.Set(q.field, line)
		if errors.Is(err, tourconnect.ErrInvalidScore) {
			// Unset, so advancing reports the step's own notice.
			return m.Set(q.field, "")
		}
		return err
	}

	t.list(q.options, nil)
	line, err := t.readLine()
	if err != nil {
		return err
	}
	choice := pick(line, q.options)
	if err := m.Set(q.field, choice); err != nil {
		return err
	}

	if choice == tourconnect.Other && q.other != "" {
		t.printf("Please specify\n")
		line, err := t.readLine()
		if err != nil {
			return err
		}
		return m.Set(q.other, line)
	}
	return nil
}

func (t *terminal) askFeatures(q question) error {
	m := t.session.Form()
	for {
		t.list(q.options, m.Answers().HasFeature)
		line, err := t.readLine()
		if err != nil {
			return err
		}
		if line == "" {
			break
		}
		for _, field := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' }) {
			if choice := pick(field, q.options); choice != "" {
				if err := m.ToggleFeature(choice); err != nil {
					return err
				}
			}
		}
	}

	if m.Answers().HasFeature(tourconnect.Other) {
		t.printf("Please specify\n")
		line, err := t.readLine()
		if err != nil {
			return err
		}
		return m.Set(q.other, line)
	}
	return nil
}

func (t *terminal) list(options []string, selected func(string) bool) {
	for i, o := range options {
		mark := " "
		if selected != nil && selected(o) {
			mark = "x"
		}
		t.printf("  [%s] %d. %s\n", mark, i+1, o)
	}
}

func (t *terminal) confirm(prompt string) (bool, error) {
	t.printf("%s\n", prompt)
	line, err := t.readLine()
	if err != nil {
		if errors.Is(err, errQuit) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(line, "y") || strings.EqualFold(line, "yes"), nil
}

// pick resolves a 1-based option number or an exact option text. Anything
// else resolves to the empty answer.
func pick(input string, options []string) string {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1]
		}
		return ""
	}
	for _, o := range options {
		if strings.EqualFold(o, input) {
			return o
		}
	}
	return ""
}
