package presets

import (
	"embed"
	"fmt"
	"path"
	"sync"
)

//go:embed catalogs/*.hcl
var bundledFS embed.FS

// Bundled catalog sources.
const (
	SourceTwoState  = "two_state"
	SourceFourState = "four_state"
	SourceExtra     = "extra"
)

var (
	bundledOnce sync.Once
	bundled     map[string]*Catalog
	bundledErr  error
)

func loadBundled() (map[string]*Catalog, error) {
	bundledOnce.Do(func() {
		bundled = make(map[string]*Catalog, 3)
		for _, source := range []string{SourceTwoState, SourceFourState, SourceExtra} {
			name := path.Join("catalogs", source+".hcl")
			src, err := bundledFS.ReadFile(name)
			if err != nil {
				bundledErr = fmt.Errorf("bundled catalog %s: %w", name, err)
				return
			}
			c, err := Decode(source, name, src)
			if err != nil {
				bundledErr = err
				return
			}
			bundled[source] = c
		}
	})
	return bundled, bundledErr
}

func mustBundled(source string) *Catalog {
	catalogs, err := loadBundled()
	if err != nil {
		// The catalogs are compiled into the binary.
		panic(err)
	}
	return Merge(catalogs[source])
}

// Default2 returns a copy of the bundled two-state default catalog.
func Default2() *Catalog { return mustBundled(SourceTwoState) }

// Default4 returns a copy of the bundled four-state default catalog.
func Default4() *Catalog { return mustBundled(SourceFourState) }

// Extra returns a copy of the bundled opt-in catalog.
func Extra() *Catalog { return mustBundled(SourceExtra) }

// ExtraNames lists the presets that may be selected with --models.
func ExtraNames() []string { return Extra().Names() }

// Resolve builds the catalog for a run: both default catalogs followed by the
// selected extra presets.
func Resolve(extras []string) (*Catalog, error) {
	selected, err := Extra().Select(extras...)
	if err != nil {
		return nil, err
	}
	return Merge(Default2(), Default4(), selected), nil
}
