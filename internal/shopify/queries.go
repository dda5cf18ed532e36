package shopify

// ProductImagesQuery fetches the first images of a product (alt text only is
// needed for duplicate detection, id/url kept for logging)
const ProductImagesQuery = `
query getProductImages($id: ID!, $first: Int!) {
  product(id: $id) {
    images(first: $first) {
      edges {
        node {
          id
          url
          altText
        }
      }
    }
  }
}
`

// ProductsQuery fetches a page of products with descriptions and images
const ProductsQuery = `
query getProducts($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        handle
        descriptionHtml
        images(first: 10) {
          edges {
            node {
              id
              url
              altText
            }
          }
        }
      }
    }
  }
}
`

// CollectionProductsQuery fetches a page of products belonging to a collection
const CollectionProductsQuery = `
query getCollectionProducts($id: ID!, $first: Int!, $after: String) {
  collection(id: $id) {
    products(first: $first, after: $after) {
      pageInfo {
        hasNextPage
        endCursor
      }
      edges {
        node {
          id
          title
          handle
          descriptionHtml
          images(first: 10) {
            edges {
              node {
                id
                url
                altText
              }
            }
          }
        }
      }
    }
  }
}
`
