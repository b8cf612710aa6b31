package model

// ProductDraft is a product submitted to the commerce platform.
type ProductDraft struct {
	Title             string
	BodyHTML          string
	Vendor            string
	ProductType       string
	Status            string
	Price             float64
	InventoryQuantity int
	Tags              string
}

// GeneratedContent is the output of one text-generation round.
type GeneratedContent struct {
	Provider           string
	ProductDescription string
	SocialPost         string
}
