package shopify

// ProductImageCreateMutation attaches a new image to a product. The image is
// sent as a base64 attachment with alt text.
const ProductImageCreateMutation = `
mutation productImageCreate($productId: ID!, $image: ImageInput!) {
  productImageCreate(productId: $productId, image: $image) {
    image {
      id
      url
    }
    userErrors {
      field
      message
    }
  }
}
`

// ImageInput represents the input for creating a product image
type ImageInput struct {
	Attachment string `json:"attachment"`
	AltText    string `json:"altText"`
}

// UserError is the field/message pair Shopify reports on failed mutations
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}
