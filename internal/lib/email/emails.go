package email

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SendListingCreatedEmail tells the site operator that a venue, artist or
// show has just been listed.
func (c *Client) SendListingCreatedEmail(to, kind string, id int64, name, url string) error {
	kindTitle := cases.Title(language.English).String(kind)

	data := map[string]string{
		"Kind": kindTitle,
		"Name": name,
		"ID":   fmt.Sprintf("%d", id),
		"URL":  url,
	}

	return c.SendEmail(
		to,
		fmt.Sprintf("New %s listed on Fyyur: %s", kindTitle, name),
		TemplateListingCreated,
		data,
	)
}
