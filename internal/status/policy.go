package status

// OrderPaymentOnTransition computes the payment status forced by an order
// status transition.
//
// Rules:
// - delivered: unpaid or advance-paid settle to fully-paid; refunded and
//   fully-paid stay as they are.
// - cancelled: refunded unconditionally.
// - pending: payment untouched.
//
// Pure function; callers apply the result before saving so the change shows up
// in the order's dirty set.
func OrderPaymentOnTransition(newStatus OrderStatus, payment PaymentStatus) PaymentStatus {
	switch newStatus {
	case OrderDelivered:
		if payment == PaymentUnpaid || payment == PaymentAdvancePaid {
			return PaymentFullyPaid
		}
		return payment
	case OrderCancelled:
		return PaymentRefunded
	default:
		return payment
	}
}
