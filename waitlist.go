package tourconnect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrRecordNotCreated = errors.New("record store did not create a record")
	ErrInvalidScore     = errors.New("likelihood must be a whole number")
)

// Other is the free-text choice offered by the user type, features and fee
// structure questions.
const Other = "Other"

const (
	UserTypeDriver = "Driver with a tourist vehicle"
	UserTypeGuide  = "Tour guide"
	UserTypeBoth   = "Both"
)

const (
	InterestYes   = "Yes, definitely"
	InterestMaybe = "Maybe, depends on the details"
	InterestNo    = "Not interested"
)

const (
	FeatureRideBookings  = "Tourist ride bookings"
	FeatureGuideBookings = "Tour guide bookings"
	FeatureTripRequests  = "Real-time trip requests"
	FeatureOwnPrices     = "Ability to set my own prices"
	FeatureReviews       = "Ratings and reviews"
	FeaturePayments      = "Secure in-app payments"
)

const (
	PayYes   = "Yes"
	PayMaybe = "Maybe, depends on the fee"
	PayNo    = "No"
)

const (
	FeeFlat         = "Flat fee per booking (e.g., Rs. 500)"
	FeePercentage   = "Percentage of the booking value (e.g., 10%)"
	FeeSubscription = "Monthly subscription"
)

// Answer choices in the order they are offered.
var (
	UserTypes      = []string{UserTypeDriver, UserTypeGuide, UserTypeBoth, Other}
	InterestLevels = []string{InterestYes, InterestMaybe, InterestNo}
	Features       = []string{FeatureRideBookings, FeatureGuideBookings, FeatureTripRequests, FeatureOwnPrices, FeatureReviews, FeaturePayments, Other}
	PaymentAnswers = []string{PayYes, PayMaybe, PayNo}
	FeeStructures  = []string{FeeFlat, FeePercentage, FeeSubscription, Other}
)

const (
	MinScore Score = 1
	MaxScore Score = 5
)

// Score is the 1..5 likelihood rating. The zero value means unset.
//
// Browsers post the rating as a string, so it is decoded from either a JSON
// string or number and always encoded back as a string.
type Score int

func (s Score) String() string {
	if s == 0 {
		return ""
	}
	return strconv.Itoa(int(s))
}

func (s Score) Valid() bool {
	return s >= MinScore && s <= MaxScore
}

// ParseScore reads a rating typed by a user. An empty string is unset.
func ParseScore(v string) (Score, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, v)
	}
	return Score(n), nil
}

func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Score) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = 0
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		v, err := ParseScore(text)
		if err != nil {
			return err
		}
		*s = v
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidScore, data)
	}
	*s = Score(n)
	return nil
}

// Response is the accumulated answer set of one waitlist signup.
type Response struct {
	Email              string   `json:"email"`
	Name               string   `json:"name"`
	UserType           string   `json:"userType"`
	UserTypeOther      string   `json:"userTypeOther"`
	Interested         string   `json:"interested"`
	Features           []string `json:"features"`
	FeaturesOther      string   `json:"featuresOther"`
	WillingToPay       string   `json:"willingToPay"`
	FeeStructure       string   `json:"feeStructure"`
	FeeStructureOther  string   `json:"feeStructureOther"`
	ComfortableAmount  string   `json:"comfortableAmount"`
	Likelihood         Score    `json:"likelihood"`
	AdditionalComments string   `json:"additionalComments"`
}

// OpenToPaying reports whether the fee questions apply to the respondent.
func (r Response) OpenToPaying() bool {
	return r.WillingToPay == PayYes || r.WillingToPay == PayMaybe
}

func (r Response) HasFeature(feature string) bool {
	for _, f := range r.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with r.
func (r Response) Clone() Response {
	c := r
	c.Features = make([]string, len(r.Features))
	copy(c.Features, r.Features)
	return c
}

// PropertyType tags how a property is stored in the external record.
type PropertyType string

const (
	PropertyTitle    PropertyType = "title"
	PropertyEmail    PropertyType = "email"
	PropertyRichText PropertyType = "rich_text"
)

// Property is one named column of an external record. Text holds the text
// segments written to it; a property with no segments is written empty.
type Property struct {
	Name string
	Type PropertyType
	Text []string
}

func (p Property) Content() string {
	return strings.Join(p.Text, "")
}

// RecordStore creates records in an external database.
type RecordStore interface {
	CreateRecord(ctx context.Context, databaseID string, props []Property) (string, error)
}

// Submission is a response that was relayed to the record store.
type Submission struct {
	ID        string    `json:"id"`
	RecordID  string    `json:"record_id"`
	Response  Response  `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

type SubmissionService interface {
	Create(ctx context.Context, s Submission) error
	Count(ctx context.Context) (int, error)
}
