package types

// CheckoutState models the checkout flow as a small state machine:
// Browsing -> Reviewing -> ConfirmingPayment -> Paid
type CheckoutState string

const (
	// CheckoutStateBrowsing is the default state while the user shops
	CheckoutStateBrowsing CheckoutState = "browsing"
	// CheckoutStateReviewing is the cart page; always reachable
	CheckoutStateReviewing CheckoutState = "reviewing"
	// CheckoutStateConfirmingPayment is the checkout form; requires a non-empty cart
	CheckoutStateConfirmingPayment CheckoutState = "confirming_payment"
	// CheckoutStatePaid is terminal for the generated invoice
	CheckoutStatePaid CheckoutState = "paid"
)

func (s CheckoutState) String() string {
	return string(s)
}

// Validate checks if the checkout state is one of the known states
func (s CheckoutState) Validate() bool {
	switch s {
	case CheckoutStateBrowsing, CheckoutStateReviewing,
		CheckoutStateConfirmingPayment, CheckoutStatePaid:
		return true
	}
	return false
}
