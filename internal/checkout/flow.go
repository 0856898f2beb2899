package checkout

import (
	"strings"

	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
)

// Step is a stage in the checkout flow.
type Step string

const (
	StepDetails   Step = "details"
	StepPayment   Step = "payment"
	StepSubmitted Step = "submitted"
)

// IsValid reports whether the value names a known step.
func (s Step) IsValid() bool {
	switch s {
	case StepDetails, StepPayment, StepSubmitted:
		return true
	}
	return false
}

// Details is what the customer fills in before choosing a payment method.
type Details struct {
	CustomerName  string
	ContactNumber string
	ServiceType   enums.ServiceType

	DeliveryAddress string
	Landmark        string
	PickupTime      string
	PartySize       int
	DineInTime      string
	Notes           string
}

// Validate checks the details against the chosen service type: delivery needs
// an address, pickup needs a time, dine-in needs a party size.
func (d Details) Validate() error {
	if strings.TrimSpace(d.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(d.ContactNumber) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "contact number is required")
	}
	if !d.ServiceType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid service type")
	}

	switch d.ServiceType {
	case enums.ServiceTypeDelivery:
		if strings.TrimSpace(d.DeliveryAddress) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
		}
	case enums.ServiceTypePickup:
		if strings.TrimSpace(d.PickupTime) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "pickup time is required")
		}
	case enums.ServiceTypeDineIn:
		if d.PartySize <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "party size must be positive")
		}
	}
	return nil
}

// Advance moves the flow forward one step, gated on valid details.
func Advance(current Step, details Details) (Step, error) {
	switch current {
	case StepDetails:
		if err := details.Validate(); err != nil {
			return current, err
		}
		return StepPayment, nil
	case StepPayment:
		return StepSubmitted, nil
	case StepSubmitted:
		return StepSubmitted, pkgerrors.New(pkgerrors.CodeConflict, "checkout already submitted")
	default:
		return current, pkgerrors.New(pkgerrors.CodeValidation, "unknown checkout step")
	}
}

// Back moves the flow one step toward details. A submitted checkout stays put.
func Back(current Step) Step {
	switch current {
	case StepPayment:
		return StepDetails
	default:
		return current
	}
}
