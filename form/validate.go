package form

import (
	"fmt"
	"regexp"
	"strings"

	tourconnect "github.com/himaSH97/tc-servey"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Notice keys reported by ValidationError. The locale package holds the text.
const (
	NoticeEmailInvalid              = "notice.email_invalid"
	NoticeNameRequired              = "notice.name_required"
	NoticeUserTypeRequired          = "notice.user_type_required"
	NoticeUserTypeOtherRequired     = "notice.user_type_other_required"
	NoticeInterestRequired          = "notice.interest_required"
	NoticeFeaturesRequired          = "notice.features_required"
	NoticeFeaturesOtherRequired     = "notice.features_other_required"
	NoticeWillingToPayRequired      = "notice.willing_to_pay_required"
	NoticeFeeStructureRequired      = "notice.fee_structure_required"
	NoticeFeeStructureOtherRequired = "notice.fee_structure_other_required"
	NoticeAmountRequired            = "notice.amount_required"
	NoticeLikelihoodRequired        = "notice.likelihood_required"
)

// ValidationError reports the first unmet requirement of a step.
type ValidationError struct {
	Step Step
	Key  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Key)
}

func invalid(step Step, key string) *ValidationError {
	return &ValidationError{Step: step, Key: key}
}

// check returns nil when the answers satisfy step.
func check(step Step, r tourconnect.Response) error {
	switch step {
	case StepEmail:
		if r.Email == "" || !emailRegex.MatchString(r.Email) {
			return invalid(step, NoticeEmailInvalid)
		}
	case StepName:
		if strings.TrimSpace(r.Name) == "" {
			return invalid(step, NoticeNameRequired)
		}
	case StepUserType:
		if !oneOf(r.UserType, tourconnect.UserTypes) {
			return invalid(step, NoticeUserTypeRequired)
		}
		if r.UserType == tourconnect.Other && strings.TrimSpace(r.UserTypeOther) == "" {
			return invalid(step, NoticeUserTypeOtherRequired)
		}
	case StepInterest:
		if !oneOf(r.Interested, tourconnect.InterestLevels) {
			return invalid(step, NoticeInterestRequired)
		}
	case StepFeatures:
		if len(r.Features) == 0 {
			return invalid(step, NoticeFeaturesRequired)
		}
		for _, f := range r.Features {
			if !oneOf(f, tourconnect.Features) {
				return invalid(step, NoticeFeaturesRequired)
			}
		}
		if r.HasFeature(tourconnect.Other) && strings.TrimSpace(r.FeaturesOther) == "" {
			return invalid(step, NoticeFeaturesOtherRequired)
		}
	case StepWillingToPay:
		if !oneOf(r.WillingToPay, tourconnect.PaymentAnswers) {
			return invalid(step, NoticeWillingToPayRequired)
		}
	case StepFeeStructure:
		if !r.OpenToPaying() {
			return nil
		}
		if !oneOf(r.FeeStructure, tourconnect.FeeStructures) {
			return invalid(step, NoticeFeeStructureRequired)
		}
		if r.FeeStructure == tourconnect.Other && strings.TrimSpace(r.FeeStructureOther) == "" {
			return invalid(step, NoticeFeeStructureOtherRequired)
		}
	case StepComfortableAmount:
		if r.OpenToPaying() && strings.TrimSpace(r.ComfortableAmount) == "" {
			return invalid(step, NoticeAmountRequired)
		}
	case StepLikelihood:
		if !r.Likelihood.Valid() {
			return invalid(step, NoticeLikelihoodRequired)
		}
	}
	return nil
}

// next is the transition table. The fee questions only apply to respondents
// open to paying; everyone else goes straight to the likelihood question.
func next(step Step, r tourconnect.Response) Step {
	switch step {
	case StepWillingToPay, StepFeeStructure, StepComfortableAmount:
		if r.WillingToPay == tourconnect.PayNo {
			return StepLikelihood
		}
	}
	return step + 1
}

// Validate checks a complete response the way the form would have while
// walking it, returning the first *ValidationError.
func Validate(r tourconnect.Response) error {
	for step := StepEmail; step < StepComments; step = next(step, r) {
		if err := check(step, r); err != nil {
			return err
		}
	}
	return nil
}

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
