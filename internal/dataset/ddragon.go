package dataset

import (
	"context"
	"fmt"
)

// cdnFile is a Data Dragon data file keyed by version and locale
type cdnFile struct {
	name     string
	filename string
	path     string // relative path within /cdn/{version}/data/en_US
}

func (d *cdnFile) Name() string     { return d.name }
func (d *cdnFile) Filename() string { return d.filename }

func (d *cdnFile) Fetch(ctx context.Context, fetcher *Fetcher, version string) ([]byte, error) {
	path := fmt.Sprintf("/cdn/%s/data/en_US/%s", version, d.path)
	body, err := fetcher.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", d.name, err)
	}
	return body, nil
}

// Champions is the champion summary data file
func Champions() Dataset {
	return &cdnFile{name: "champions", filename: "champion.json", path: "champion.json"}
}

// Items is the item data file
func Items() Dataset {
	return &cdnFile{name: "items", filename: "item.json", path: "item.json"}
}

// DefaultRegistry returns a registry with every standard dataset
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Champions())
	r.Register(Items())
	return r
}
