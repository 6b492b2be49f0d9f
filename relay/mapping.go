package relay

import (
	"fmt"
	"strings"

	tourconnect "github.com/himaSH97/tc-servey"
)

// Record property names in the waitlist database.
const (
	PropName              = "Name"
	PropEmail             = "Email"
	PropUserType          = "User Type"
	PropInterestLevel     = "Interest Level"
	PropDesiredFeatures   = "Desired Features"
	PropWillingToPay      = "Willing to Pay"
	PropFeeStructure      = "Fee Structure Preference"
	PropComfortableAmount = "Comfortable Amount"
	PropLikelihood        = "Likelihood Score"
	PropComments          = "Additional Comments"
)

const (
	unknownName  = "Unknown"
	notSpecified = "Not specified"
	notAvailable = "N/A"
	noFeatures   = "None"
)

// FeaturesText joins the selected features, noting the free-text feature
// when one was given.
func FeaturesText(r tourconnect.Response) string {
	if len(r.Features) == 0 {
		return noFeatures
	}
	text := strings.Join(r.Features, ", ")
	if r.FeaturesOther != "" {
		text += fmt.Sprintf(" (Other: %s)", r.FeaturesOther)
	}
	return text
}

func UserTypeText(r tourconnect.Response) string {
	return otherText(r.UserType, r.UserTypeOther)
}

func FeeStructureText(r tourconnect.Response) string {
	return otherText(r.FeeStructure, r.FeeStructureOther)
}

func otherText(choice, other string) string {
	if choice == tourconnect.Other {
		return "Other: " + other
	}
	return choice
}

// Properties maps a response onto the waitlist database columns.
func Properties(r tourconnect.Response) []tourconnect.Property {
	return []tourconnect.Property{
		{Name: PropName, Type: tourconnect.PropertyTitle, Text: text(or(r.Name, unknownName))},
		{Name: PropEmail, Type: tourconnect.PropertyEmail, Text: text(r.Email)},
		{Name: PropUserType, Type: tourconnect.PropertyRichText, Text: text(UserTypeText(r))},
		{Name: PropInterestLevel, Type: tourconnect.PropertyRichText, Text: text(or(r.Interested, notSpecified))},
		{Name: PropDesiredFeatures, Type: tourconnect.PropertyRichText, Text: text(FeaturesText(r))},
		{Name: PropWillingToPay, Type: tourconnect.PropertyRichText, Text: text(or(r.WillingToPay, notSpecified))},
		{Name: PropFeeStructure, Type: tourconnect.PropertyRichText, Text: text(FeeStructureText(r))},
		{Name: PropComfortableAmount, Type: tourconnect.PropertyRichText, Text: text(or(r.ComfortableAmount, notAvailable))},
		{Name: PropLikelihood, Type: tourconnect.PropertyRichText, Text: optional(r.Likelihood.String())},
		{Name: PropComments, Type: tourconnect.PropertyRichText, Text: optional(r.AdditionalComments)},
	}
}

func text(s string) []string {
	return []string{s}
}

// optional writes no text at all for an empty value.
func optional(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func or(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
