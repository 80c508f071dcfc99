package presets

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// catalogFile is the top-level schema of a catalog file.
type catalogFile struct {
	Presets []*presetBlock `hcl:"preset,block"`
}

type presetBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
	Major       int    `hcl:"major"`
	Minor       int    `hcl:"minor"`
	CopyNumber  *int   `hcl:"copy_number,optional"`
	Clonal      *bool  `hcl:"clonal,optional"`
}

// evalContext exposes named ploidy levels to catalog expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"haploid":    cty.NumberIntVal(1),
			"diploid":    cty.NumberIntVal(2),
			"triploid":   cty.NumberIntVal(3),
			"tetraploid": cty.NumberIntVal(4),
		},
	}
}

// Decode parses an HCL catalog. source is recorded on every preset and
// filename is used in diagnostics.
func Decode(source, filename string, src []byte) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse preset catalog %s: %w", filename, diags)
	}

	var root catalogFile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode preset catalog %s: %w", filename, diags)
	}

	seen := make(map[string]struct{}, len(root.Presets))
	catalog := NewCatalog()
	for _, b := range root.Presets {
		if _, dup := seen[b.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate preset %q", filename, b.Name)
		}
		seen[b.Name] = struct{}{}

		p, err := b.toPreset(source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		catalog.Set(p)
	}
	return catalog, nil
}

func (b *presetBlock) toPreset(source string) (Preset, error) {
	if b.Name == "" {
		return Preset{}, fmt.Errorf("preset name must not be empty")
	}
	if b.Minor < 0 || b.Major < b.Minor {
		return Preset{}, fmt.Errorf("preset %q: need major >= minor >= 0, got major=%d minor=%d", b.Name, b.Major, b.Minor)
	}

	p := Preset{
		Name:        b.Name,
		Description: b.Description,
		Major:       b.Major,
		Minor:       b.Minor,
		CopyNumber:  b.Major + b.Minor,
		Clonal:      true,
		Source:      source,
	}
	if b.CopyNumber != nil {
		p.CopyNumber = *b.CopyNumber
	}
	if b.Clonal != nil {
		p.Clonal = *b.Clonal
	}
	if p.CopyNumber < 1 {
		return Preset{}, fmt.Errorf("preset %q: copy_number must be positive, got %d", b.Name, p.CopyNumber)
	}
	return p, nil
}
