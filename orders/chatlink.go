package orders

import (
	"fmt"
	"net/url"
)

// BuildChatLink returns the pre-filled WhatsApp link a buyer opens to
// arrange the bank transfer. No programmatic response is expected.
func BuildChatLink(phone, projectTitle string, amountNGN int) string {
	msg := fmt.Sprintf(
		"Hello, I'm interested in the project titled %q. Please guide me on how to proceed with the payment of ₦%d.",
		projectTitle, amountNGN,
	)
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(msg)
}
