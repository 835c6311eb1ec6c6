package email

// Template names an embedded file under templates/.
type Template string

const (
	TemplateListingCreated Template = "listing_created"
)
