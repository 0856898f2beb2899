package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sweetquest/sweetquest-backend/internal/cart"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
)

// SummaryInput is everything the Messenger order message needs.
type SummaryInput struct {
	Details           Details
	Cart              *cart.Cart
	PaymentMethodName string
	ReferredByName    string
	ReferralCode      string
}

// BuildSummary renders the order message a customer sends the store over
// Messenger. Staff read these by eye, so the layout mirrors the printed
// order slips.
func BuildSummary(input SummaryInput) string {
	d := input.Details
	var b strings.Builder

	b.WriteString("🛒 Sweet Quest ORDER\n\n")
	fmt.Fprintf(&b, "👤 Customer: %s\n", d.CustomerName)
	fmt.Fprintf(&b, "📞 Contact: %s\n", d.ContactNumber)
	fmt.Fprintf(&b, "📍 Service: %s\n", serviceLabel(d.ServiceType))

	switch d.ServiceType {
	case enums.ServiceTypeDelivery:
		fmt.Fprintf(&b, "🏠 Address: %s\n", d.DeliveryAddress)
		if d.Landmark != "" {
			fmt.Fprintf(&b, "🗺️ Landmark: %s\n", d.Landmark)
		}
	case enums.ServiceTypePickup:
		fmt.Fprintf(&b, "⏰ Pickup Time: %s\n", d.PickupTime)
	case enums.ServiceTypeDineIn:
		fmt.Fprintf(&b, "👥 Party Size: %d %s\n", d.PartySize, pluralPerson(d.PartySize))
		if d.DineInTime != "" {
			fmt.Fprintf(&b, "⏰ Dine-in Time: %s\n", d.DineInTime)
		}
	}

	b.WriteString("\n📋 ORDER DETAILS:\n")
	for _, line := range input.Cart.Lines {
		b.WriteString(formatLine(line))
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\n💰 TOTAL: ₱%s\n", input.Cart.TotalPrice().StringFixed(2))
	if d.ServiceType == enums.ServiceTypeDelivery {
		b.WriteString("🛵 DELIVERY FEE: to be confirmed\n")
	}

	if input.ReferredByName != "" {
		fmt.Fprintf(&b, "\n👥 Referred by: %s (%s)\n", input.ReferredByName, input.ReferralCode)
	}

	fmt.Fprintf(&b, "\n💳 Payment: %s\n", input.PaymentMethodName)
	b.WriteString("📸 Payment Screenshot: Please attach your payment receipt screenshot\n")

	if d.Notes != "" {
		fmt.Fprintf(&b, "\n📝 Notes: %s\n", d.Notes)
	}

	b.WriteString("\nPlease confirm this order to proceed. Thank you for choosing Sweet Quest! 🍯")
	return b.String()
}

// MessengerURL builds the m.me deep link that opens a chat with the store
// page and pre-fills the order summary.
func MessengerURL(pageID, summary string) string {
	return fmt.Sprintf("https://m.me/%s?text=%s", pageID, url.QueryEscape(summary))
}

func formatLine(line cart.Line) string {
	var b strings.Builder
	fmt.Fprintf(&b, "• %s", line.Name)
	if line.VariationName != "" {
		fmt.Fprintf(&b, " (%s)", line.VariationName)
	}
	if len(line.AddOns) > 0 {
		parts := make([]string, 0, len(line.AddOns))
		for _, addOn := range line.AddOns {
			if addOn.Quantity > 1 {
				parts = append(parts, fmt.Sprintf("%s x%d", addOn.Name, addOn.Quantity))
			} else {
				parts = append(parts, addOn.Name)
			}
		}
		fmt.Fprintf(&b, " + %s", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, " x%d - ₱%s", line.Quantity, line.Total().StringFixed(2))
	return b.String()
}

func serviceLabel(serviceType enums.ServiceType) string {
	switch serviceType {
	case enums.ServiceTypeDineIn:
		return "Dine-in"
	case enums.ServiceTypePickup:
		return "Pickup"
	case enums.ServiceTypeDelivery:
		return "Delivery"
	default:
		return string(serviceType)
	}
}

func pluralPerson(count int) string {
	if count == 1 {
		return "person"
	}
	return "persons"
}
