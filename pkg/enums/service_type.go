package enums

import "fmt"

// ServiceType is the fulfillment mode chosen for an order.
type ServiceType string

const (
	ServiceTypeDineIn   ServiceType = "dine-in"
	ServiceTypePickup   ServiceType = "pickup"
	ServiceTypeDelivery ServiceType = "delivery"
)

var validServiceTypes = []ServiceType{
	ServiceTypeDineIn,
	ServiceTypePickup,
	ServiceTypeDelivery,
}

// String implements fmt.Stringer.
func (s ServiceType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ServiceType.
func (s ServiceType) IsValid() bool {
	for _, candidate := range validServiceTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseServiceType converts raw input into a ServiceType.
func ParseServiceType(value string) (ServiceType, error) {
	for _, candidate := range validServiceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service type %q", value)
}
