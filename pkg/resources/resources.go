// Package resources defines the declarative per-resource schema that
// parametrizes the reconciliation pipeline. The four facility types share one
// algorithm; everything that distinguishes them (filter predicate, field
// policies, creation defaults, output filenames) is data, loaded from an
// embedded YAML document.
package resources

import (
	"embed"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/guangfu250923/fieldsync/pkg/errors"
	"github.com/guangfu250923/fieldsync/pkg/placemarks"
)

//go:embed resources.yaml
var embedded embed.FS

// Type identifies a facility resource type.
type Type string

// Known resource types, in pipeline execution order.
const (
	Water    Type = "water"
	Medical  Type = "medical"
	Restroom Type = "restroom"
	Shower   Type = "shower"
)

// Order is the fixed execution order for an "all" run.
var Order = []Type{Water, Medical, Restroom, Shower}

// Policy names the reconciliation treatment of a single field.
type Policy string

// The three generic field policies.
const (
	// PolicyOverwrite includes the field in the delta whenever source and
	// remote values differ (null and empty string compare equal).
	PolicyOverwrite Policy = "overwrite"

	// PolicyFillIfEmpty fills the field from a coordinate-derived address
	// lookup, and only when the remote value is blank or a placeholder.
	PolicyFillIfEmpty Policy = "fill_if_empty"

	// PolicyCoordinates corrects the remote coordinate pair from source
	// coordinates when they differ.
	PolicyCoordinates Policy = "coordinates"
)

// FieldPolicy binds one field name to its update policy.
type FieldPolicy struct {
	Field  string `yaml:"field"`
	Policy Policy `yaml:"policy"`
}

// Filter selects candidate placemarks for a resource. A placemark matches
// when its folder equals Folder OR its name contains NameContains. The OR is
// intentional: a record filed under the wrong folder still qualifies by
// keyword. An empty clause never matches.
type Filter struct {
	Folder       string `yaml:"folder"`
	NameContains string `yaml:"name_contains"`
}

// Match reports whether the placemark is a candidate for this resource.
func (f Filter) Match(p placemarks.Placemark) bool {
	if f.Folder != "" && p.Folder == f.Folder {
		return true
	}
	return f.NameContains != "" && strings.Contains(p.Name, f.NameContains)
}

// Resource is the full declarative schema for one facility type.
type Resource struct {
	Type Type `yaml:"type"`

	// Path is the collection path segment on the remote datastore.
	Path string `yaml:"path"`

	Filter   Filter        `yaml:"filter"`
	Policies []FieldPolicy `yaml:"policies"`

	// AddressField is the remote field receiving geocoded addresses;
	// AddressAliases are additional creation-payload fields mirroring it.
	AddressField   string   `yaml:"address_field"`
	AddressAliases []string `yaml:"address_aliases"`

	// CreateDefaults are merged into every creation payload.
	CreateDefaults map[string]any `yaml:"create_defaults"`

	// SnapshotColumns is the column order of the remote-derived tabular dump.
	SnapshotColumns []string `yaml:"snapshot_columns"`

	// Fixed per-resource output filenames.
	SourceFile string `yaml:"source_file"`
	DBFile     string `yaml:"db_file"`
	PlanFile   string `yaml:"plan_file"`

	// Label is the human-readable name used in diagnostics.
	Label string `yaml:"label"`
}

// Endpoint returns the resource's collection URL under the given base.
func (r *Resource) Endpoint(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + r.Path
}

// Registry holds the loaded resource schemas.
type Registry struct {
	resources map[Type]*Resource
}

// Load parses the embedded schema document.
func Load() (*Registry, error) {
	data, err := embedded.ReadFile("resources.yaml")
	if err != nil {
		return nil, errors.WrapParse("yaml", "resources.yaml", err)
	}
	return parse(data, "resources.yaml")
}

// LoadFile parses a schema override document from disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, file string) (*Registry, error) {
	var doc struct {
		Resources []*Resource `yaml:"resources"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", file, err)
	}
	if len(doc.Resources) == 0 {
		return nil, &errors.ParseError{Format: "yaml", File: file, Message: "no resources defined"}
	}

	reg := &Registry{resources: make(map[Type]*Resource, len(doc.Resources))}
	for _, r := range doc.Resources {
		if r.Type == "" || r.Path == "" {
			return nil, &errors.ParseError{Format: "yaml", File: file, Message: "resource missing type or path"}
		}
		reg.resources[r.Type] = r
	}
	return reg, nil
}

// Get returns the schema for a resource type.
func (reg *Registry) Get(t Type) (*Resource, bool) {
	r, ok := reg.resources[t]
	return r, ok
}

// All returns the schemas in pipeline execution order, skipping types the
// document does not define.
func (reg *Registry) All() []*Resource {
	out := make([]*Resource, 0, len(reg.resources))
	for _, t := range Order {
		if r, ok := reg.resources[t]; ok {
			out = append(out, r)
		}
	}
	return out
}
