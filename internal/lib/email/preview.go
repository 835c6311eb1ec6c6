package email

import "fmt"

// PreviewData holds sample data per template for local previews.
var PreviewData = map[Template]map[string]string{
	TemplateListingCreated: {
		"Kind": "Venue",
		"Name": "The Musical Hop",
		"ID":   "1",
		"URL":  "/venues/1",
	},
}

// RenderPreview renders templateName with its sample data.
func RenderPreview(templateName Template) (string, error) {
	data, ok := PreviewData[templateName]
	if !ok {
		return "", fmt.Errorf("no preview data for template %q", templateName)
	}
	return Render(templateName, data)
}
