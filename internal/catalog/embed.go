package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed data
var embeddedFS embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary. The catalog is
// loaded once and shared; it is immutable and safe for concurrent use.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embeddedFS, "data")
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = Load(sub)
	})
	return defaultCatalog, defaultErr
}
