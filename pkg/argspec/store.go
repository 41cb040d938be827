package argspec

import (
	_ "embed"
	"sync"
)

var (
	//go:embed data/cli_spec.yaml
	specData []byte

	storeOnce     sync.Once
	cachedCatalog *Catalog
	cachedErr     error
)

// LoadDefault loads and caches the embedded argument-specification catalog.
// Because the data is embedded at build time, it is parsed once and the
// in-memory representation reused for the lifetime of the process. Deferred
// choices are resolved against the registry supplied by the first caller;
// the hosting application registers its enumerations before this runs.
func LoadDefault(reg *EnumRegistry) (*Catalog, error) {
	storeOnce.Do(func() {
		cachedCatalog, cachedErr = Load(specData, reg)
	})
	return cachedCatalog, cachedErr
}
