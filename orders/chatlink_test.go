package orders

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChatLink(t *testing.T) {
	link := BuildChatLink("2348112580260", "Impact of Microfinance Banks", 5000)

	require.True(t, strings.HasPrefix(link, "https://wa.me/2348112580260?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)

	msg := u.Query().Get("text")
	assert.Contains(t, msg, `"Impact of Microfinance Banks"`)
	assert.Contains(t, msg, "₦5000")
}

func TestBuildChatLinkEscapesTitle(t *testing.T) {
	link := BuildChatLink("2348112580260", "Supply & Demand: 100% Analysis", 1200)

	// raw & and % must not survive into the query string
	_, rest, _ := strings.Cut(link, "?text=")
	assert.NotContains(t, rest, " ")
	assert.NotContains(t, rest, "&")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("text"), "Supply & Demand: 100% Analysis")
}
