// Package catalog implements product, category and supplier management.
//
// Every created record gets a human-readable code minted from its sequence
// (product_code, category_code, supplier_code); product codes are unique and
// back the /products/code/:code lookup through the store's secondary index.
package catalog
