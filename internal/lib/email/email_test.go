package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPreview_ListingCreated(t *testing.T) {
	body, err := RenderPreview(TemplateListingCreated)
	require.NoError(t, err)

	assert.Contains(t, body, "A new Venue was listed")
	assert.Contains(t, body, "The Musical Hop")
	assert.Contains(t, body, `href="/venues/1"`)
}

func TestRenderPreview_UnknownTemplate(t *testing.T) {
	_, err := RenderPreview("welcome")
	assert.Error(t, err)
}

func TestRender_EscapesNames(t *testing.T) {
	body, err := Render(TemplateListingCreated, map[string]string{
		"Kind": "Artist",
		"Name": "<script>alert(1)</script>",
		"ID":   "7",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
