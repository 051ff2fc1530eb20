package notifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-tracker-bot/internal/notifier"
)

func TestRenderPriceDropEmail(t *testing.T) {
	body, err := notifier.RenderPriceDropEmail(
		"Mechanical Keyboard",
		1299,
		"https://shop.example/p/1",
		"2026-08-01 10:00:00",
	)
	require.NoError(t, err)

	assert.Contains(t, body, "Mechanical Keyboard")
	assert.Contains(t, body, "1,299")
	assert.Contains(t, body, `href="https://shop.example/p/1"`)
	assert.Contains(t, body, "View Product")
	assert.Contains(t, body, "Price Drop Alert!")
}

func TestRenderEscapesTitle(t *testing.T) {
	body, err := notifier.RenderPriceDropEmail(
		`<script>alert("x")</script>`,
		100,
		"https://shop.example/p/2",
		"",
	)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRenderTolerateUnparseableCreatedAt(t *testing.T) {
	body, err := notifier.RenderPriceDropEmail("Widget", 9.99, "https://shop.example/p/3", "not a timestamp")
	require.NoError(t, err)
	assert.Contains(t, body, "9.99")
}

func TestSubjectMentionsPriceDrop(t *testing.T) {
	assert.Contains(t, notifier.SubjectPriceDrop, "Price Drop")
}
