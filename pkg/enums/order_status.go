package enums

import "fmt"

// OrderStatus tracks which view of the configurator session is active.
type OrderStatus string

const (
	OrderStatusForm          OrderStatus = "form"
	OrderStatusProcessing    OrderStatus = "processing"
	OrderStatusSuccess       OrderStatus = "success"
	OrderStatusCriticalError OrderStatus = "critical_error"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusForm,
	OrderStatusProcessing,
	OrderStatusSuccess,
	OrderStatusCriticalError,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
