package metadata

import (
	"regexp"

	"github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/domain"
)

// UnknownLabel is the default for category fields with no source value.
const UnknownLabel = "Unknown"

// Descriptor field names used in FieldSpec.
const (
	FieldName      = "name"
	FieldSector    = "sector"
	FieldIndustry  = "industry"
	FieldType      = "type"
	FieldWeighting = "weighting"
)

// FieldSpec binds a descriptor field to the single column it is read from.
type FieldSpec struct {
	Field  string
	Column string
}

// EntitySchema describes how one entity kind is found in a dataset.
type EntitySchema struct {
	// KeyColumns are the identifying column candidates in priority order.
	KeyColumns []string
	// Fields are the overridable descriptor fields.
	Fields []FieldSpec
}

// MetricSpec binds a performance metric to its source column.
type MetricSpec struct {
	Metric string
	Column string
}

// Config holds every default table the resolvers consult. Build it once
// and hand it to New; New takes a private copy so later edits to the
// value passed in have no effect.
type Config struct {
	// Unknown is the sentinel for category fields.
	Unknown string
	// PackageRules is the ordered filename rule table. First match wins.
	PackageRules []PackageRule
	// DatePattern finds YYYY_MM_DD anywhere in a filename. It must have
	// three capture groups.
	DatePattern *regexp.Regexp
	Company     EntitySchema
	Index       EntitySchema
	Performance []MetricSpec
	// ComponentColumns are the index member column candidates.
	ComponentColumns []string
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	perf := make([]MetricSpec, 0, len(domain.PerformanceMetricNames))
	for _, name := range domain.PerformanceMetricNames {
		perf = append(perf, MetricSpec{Metric: name, Column: name})
	}

	return Config{
		Unknown:      UnknownLabel,
		PackageRules: DefaultPackageRules(),
		DatePattern:  regexp.MustCompile(`(\p{Nd}{4})_(\p{Nd}{2})_(\p{Nd}{2})`),
		Company: EntitySchema{
			KeyColumns: []string{"symbol"},
			Fields: []FieldSpec{
				{Field: FieldName, Column: "company_name"},
				{Field: FieldSector, Column: "sector"},
				{Field: FieldIndustry, Column: "industry"},
			},
		},
		Index: EntitySchema{
			KeyColumns: []string{"index_symbol", "symbol"},
			Fields: []FieldSpec{
				{Field: FieldName, Column: "index_name"},
				{Field: FieldType, Column: "index_type"},
				{Field: FieldWeighting, Column: "weighting_method"},
			},
		},
		Performance:      perf,
		ComponentColumns: []string{"component", "components", "symbol", "ticker"},
	}
}

func (c Config) clone() Config {
	out := c
	out.PackageRules = append([]PackageRule(nil), c.PackageRules...)
	out.Company = c.Company.clone()
	out.Index = c.Index.clone()
	out.Performance = append([]MetricSpec(nil), c.Performance...)
	out.ComponentColumns = append([]string(nil), c.ComponentColumns...)
	return out
}

func (s EntitySchema) clone() EntitySchema {
	return EntitySchema{
		KeyColumns: append([]string(nil), s.KeyColumns...),
		Fields:     append([]FieldSpec(nil), s.Fields...),
	}
}

// Resolver runs the metadata resolvers against one Config.
type Resolver struct {
	cfg Config
}

// New returns a Resolver over a private copy of cfg. Zero-valued parts of
// cfg fall back to DefaultConfig.
func New(cfg Config) *Resolver {
	def := DefaultConfig()
	if cfg.Unknown == "" {
		cfg.Unknown = def.Unknown
	}
	if cfg.PackageRules == nil {
		cfg.PackageRules = def.PackageRules
	}
	if cfg.DatePattern == nil {
		cfg.DatePattern = def.DatePattern
	}
	if cfg.Company.KeyColumns == nil && cfg.Company.Fields == nil {
		cfg.Company = def.Company
	}
	if cfg.Index.KeyColumns == nil && cfg.Index.Fields == nil {
		cfg.Index = def.Index
	}
	if cfg.Performance == nil {
		cfg.Performance = def.Performance
	}
	if cfg.ComponentColumns == nil {
		cfg.ComponentColumns = def.ComponentColumns
	}
	return &Resolver{cfg: cfg.clone()}
}

// Config returns a copy of the resolver's configuration.
func (r *Resolver) Config() Config {
	return r.cfg.clone()
}
