package status

import "testing"

func TestOrderPaymentOnTransition(t *testing.T) {
	cases := []struct {
		name      string
		newStatus OrderStatus
		payment   PaymentStatus
		want      PaymentStatus
	}{
		{"delivered settles unpaid", OrderDelivered, PaymentUnpaid, PaymentFullyPaid},
		{"delivered settles advance", OrderDelivered, PaymentAdvancePaid, PaymentFullyPaid},
		{"delivered keeps fully paid", OrderDelivered, PaymentFullyPaid, PaymentFullyPaid},
		{"delivered keeps refunded", OrderDelivered, PaymentRefunded, PaymentRefunded},
		{"cancelled refunds unpaid", OrderCancelled, PaymentUnpaid, PaymentRefunded},
		{"cancelled refunds advance", OrderCancelled, PaymentAdvancePaid, PaymentRefunded},
		{"cancelled refunds fully paid", OrderCancelled, PaymentFullyPaid, PaymentRefunded},
		{"pending leaves unpaid", OrderPending, PaymentUnpaid, PaymentUnpaid},
		{"pending leaves fully paid", OrderPending, PaymentFullyPaid, PaymentFullyPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OrderPaymentOnTransition(tc.newStatus, tc.payment); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStatusValidity(t *testing.T) {
	if Status(2).Valid() {
		t.Fatalf("expected 2 to be invalid")
	}
	if !Deleted.Valid() || !Inactive.Valid() || !Active.Valid() {
		t.Fatalf("expected tri-state values to be valid")
	}
	if PaymentStatus(3).Valid() {
		t.Fatalf("expected 3 to be an invalid payment status")
	}
	if OrderStatus(2).Valid() {
		t.Fatalf("expected 2 to be an invalid order status")
	}
}
