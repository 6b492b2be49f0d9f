package locale

import "golang.org/x/text/language"

func init() {
	lang := language.English

	// Step notices
	set(lang, "notice.email_invalid", "Please enter a valid email address")
	set(lang, "notice.name_required", "Please enter your name")
	set(lang, "notice.user_type_required", "Please select what best describes you")
	set(lang, "notice.user_type_other_required", "Please specify your role")
	set(lang, "notice.interest_required", "Please select your level of interest")
	set(lang, "notice.features_required", "Please select at least one feature")
	set(lang, "notice.features_other_required", "Please specify the other feature you'd like")
	set(lang, "notice.willing_to_pay_required", "Please select an option")
	set(lang, "notice.fee_structure_required", "Please select a fee structure")
	set(lang, "notice.fee_structure_other_required", "Please specify your preferred fee structure")
	set(lang, "notice.amount_required", "Please enter an amount you'd be comfortable with")
	set(lang, "notice.likelihood_required", "Please rate your likelihood of using the platform")

	// Submission
	set(lang, "submit.pending", "Submitting your response... 🚀")
	set(lang, "submit.in_flight", "Your response is still being submitted")
	set(lang, "submit.success", "Thank you for your response! 🎉")
	set(lang, "submit.already_submitted", "Your response was already submitted. Start a new one to submit again")
	set(lang, "submit.rate_limited", "You're doing that too much. Please try again later")
	set(lang, "submit.insertion_failed", "Failed to save your details. Please try again 😢.")
	set(lang, "submit.failed", "An error occurred. Please try again 😢.")

	// Relay responses
	set(lang, "relay.created", "Response added to Notion")
	set(lang, "relay.failed", "Failed to add response to Notion")
	set(lang, "relay.bad_request", "The response could not be read")
	set(lang, "relay.rate_limited", "Too many submissions, please wait a moment")
}

func set(tag language.Tag, key, msg string) {
	if err := messages.SetString(tag, key, msg); err != nil {
		panic("locale: " + key + ": " + err.Error())
	}
}
