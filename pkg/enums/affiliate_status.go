package enums

import "fmt"

// AffiliateStatus controls whether a referral code resolves.
type AffiliateStatus string

const (
	AffiliateStatusActive    AffiliateStatus = "active"
	AffiliateStatusInactive  AffiliateStatus = "inactive"
	AffiliateStatusSuspended AffiliateStatus = "suspended"
)

var validAffiliateStatuses = []AffiliateStatus{
	AffiliateStatusActive,
	AffiliateStatusInactive,
	AffiliateStatusSuspended,
}

// String implements fmt.Stringer.
func (a AffiliateStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AffiliateStatus.
func (a AffiliateStatus) IsValid() bool {
	for _, candidate := range validAffiliateStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAffiliateStatus converts raw input into an AffiliateStatus.
func ParseAffiliateStatus(value string) (AffiliateStatus, error) {
	for _, candidate := range validAffiliateStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid affiliate status %q", value)
}
