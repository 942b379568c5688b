package status

// Status is the tri-state lifecycle flag shared by master-data entities.
// Deletion is a soft delete via this flag, not a physical row removal.
type Status int

const (
	Deleted  Status = -1
	Inactive Status = 0
	Active   Status = 1
)

func (s Status) Valid() bool {
	switch s {
	case Deleted, Inactive, Active:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	switch s {
	case Deleted:
		return "deleted"
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// OrderStatus is the order delivery axis.
// Delivered and cancelled are terminal by product intent, but transitions out of
// them are not blocked here; callers own that decision.
type OrderStatus int

const (
	OrderCancelled OrderStatus = -1
	OrderPending   OrderStatus = 0
	OrderDelivered OrderStatus = 1
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderCancelled, OrderPending, OrderDelivered:
		return true
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	switch s {
	case OrderCancelled:
		return "cancelled"
	case OrderPending:
		return "pending"
	case OrderDelivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// PaymentStatus is the order payment axis, coupled to OrderStatus via policy.
type PaymentStatus int

const (
	PaymentRefunded    PaymentStatus = -1
	PaymentUnpaid      PaymentStatus = 0
	PaymentAdvancePaid PaymentStatus = 1
	PaymentFullyPaid   PaymentStatus = 2
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentRefunded, PaymentUnpaid, PaymentAdvancePaid, PaymentFullyPaid:
		return true
	default:
		return false
	}
}

func (s PaymentStatus) String() string {
	switch s {
	case PaymentRefunded:
		return "refunded"
	case PaymentUnpaid:
		return "unpaid"
	case PaymentAdvancePaid:
		return "advance_paid"
	case PaymentFullyPaid:
		return "fully_paid"
	default:
		return "unknown"
	}
}
