package domain

// Eligibility describes whether, and why not, a delivery can be validated right now.
type Eligibility string

const (
	EligibilityNoDelivery           Eligibility = "NO_DELIVERY"
	EligibilityPendingAcceptance    Eligibility = "PENDING_ACCEPTANCE"
	EligibilityAcceptedNotPickedUp  Eligibility = "ACCEPTED_NOT_PICKED_UP"
	EligibilityPickedUpNotInTransit Eligibility = "PICKED_UP_NOT_IN_TRANSIT"
	EligibilityReadyForValidation   Eligibility = "READY_FOR_VALIDATION"
	EligibilityAlreadyValidated     Eligibility = "ALREADY_VALIDATED"
	EligibilityCancelled            Eligibility = "CANCELLED"
	EligibilityUnknownStatus        Eligibility = "UNKNOWN_STATUS"
)

// Guidance is the user-facing explanation attached to an eligibility.
type Guidance struct {
	Reason       string
	NextStep     string
	Instructions []string
}

var guidance = map[Eligibility]Guidance{
	EligibilityNoDelivery: {
		Reason:   "No deliverer has accepted this announcement yet.",
		NextStep: "Wait for a deliverer to accept your announcement.",
		Instructions: []string{
			"Your announcement is visible to deliverers.",
			"You will be notified as soon as a deliverer accepts it.",
		},
	},
	EligibilityPendingAcceptance: {
		Reason:   "The delivery is waiting for the deliverer's confirmation.",
		NextStep: "Wait for the deliverer to confirm the delivery.",
		Instructions: []string{
			"A deliverer has applied for your announcement.",
			"You will be notified once the deliverer confirms.",
		},
	},
	EligibilityAcceptedNotPickedUp: {
		Reason:   "The deliverer has not picked up the goods yet.",
		NextStep: "Wait for the deliverer to pick up the goods.",
		Instructions: []string{
			"Make sure the goods are ready at the pickup address.",
			"You will be notified when the goods are picked up.",
		},
	},
	EligibilityPickedUpNotInTransit: {
		Reason:   "The goods are picked up but the delivery has not started.",
		NextStep: "Wait for the deliverer to start the delivery.",
		Instructions: []string{
			"Your validation code will be available once the delivery is on its way.",
		},
	},
	EligibilityReadyForValidation: {
		Reason:   "The delivery is on its way and can be validated.",
		NextStep: "Enter your 6-digit validation code once you have received the goods.",
		Instructions: []string{
			"Check that the goods match your announcement and are in good condition.",
			"Give your validation code to the deliverer only after receiving the goods.",
			"Enter the 6-digit code to confirm receipt; this releases the payment to the deliverer.",
			"If the code has expired, request a new one.",
		},
	},
	EligibilityAlreadyValidated: {
		Reason:   "This delivery has already been validated.",
		NextStep: "Rate your deliverer or download your invoice.",
		Instructions: []string{
			"The payment has been released to the deliverer.",
		},
	},
	EligibilityCancelled: {
		Reason:   "This delivery was cancelled.",
		NextStep: "Publish a new announcement if you still need a delivery.",
		Instructions: []string{
			"No payment will be taken for a cancelled delivery.",
		},
	},
	EligibilityUnknownStatus: {
		Reason:   "The delivery is in an unexpected state.",
		NextStep: "Contact support with your announcement reference.",
		Instructions: []string{
			"Do not share your validation code until support has checked the delivery.",
		},
	},
}

// Guidance returns the reason, next step and instructions for e.
func (e Eligibility) Guidance() Guidance {
	g, ok := guidance[e]
	if !ok {
		g = guidance[EligibilityUnknownStatus]
	}
	out := g
	out.Instructions = append([]string(nil), g.Instructions...)
	return out
}

// CanValidate reports whether e accepts the validate operation.
func (e Eligibility) CanValidate() bool {
	return e == EligibilityReadyForValidation
}
