package feature

import (
	_ "embed"
)

//go:embed default.yml
var defaultCatalog []byte

// Default returns the catalog shipped with changemonger.
func Default() (*Catalog, error) {
	return New(defaultCatalog)
}
