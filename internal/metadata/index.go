package metadata

import (
	"strings"

	"github.com/vorobyoffn/Financial-Dashboard/internal/dataset"
	"github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/domain"
)

// ResolveIndex returns the index descriptor for symbol, including its
// component list.
func (r *Resolver) ResolveIndex(symbol string, ds dataset.Dataset) domain.IndexInfo {
	fields := fillFields(ds, symbol, r.cfg.Index, map[string]string{
		FieldName:      symbol,
		FieldType:      r.cfg.Unknown,
		FieldWeighting: r.cfg.Unknown,
	})
	return domain.IndexInfo{
		Symbol:     symbol,
		Name:       fields[FieldName],
		Type:       fields[FieldType],
		Components: r.indexMembers(symbol, ds),
		Weighting:  fields[FieldWeighting],
	}
}

// IndexComponents returns the member symbols of an index. Candidate
// columns are tried in order; the first one that exists and holds at least
// one non-blank value wins. The result is never nil.
func (r *Resolver) IndexComponents(symbol string, ds dataset.Dataset) []string {
	return memberValues(scope(ds, symbol, r.memberKeyColumns()), r.cfg.ComponentColumns)
}

// indexMembers lists the members of symbol for its descriptor. The column
// that identifies the index is never read as a member column, so a plain
// symbol table yields no members instead of the index itself.
func (r *Resolver) indexMembers(symbol string, ds dataset.Dataset) []string {
	col, ok := keyColumn(ds, r.cfg.Index.KeyColumns)
	if !ok {
		return memberValues(ds, r.cfg.ComponentColumns)
	}
	candidates := make([]string, 0, len(r.cfg.ComponentColumns))
	for _, c := range r.cfg.ComponentColumns {
		if !strings.EqualFold(c, col) {
			candidates = append(candidates, c)
		}
	}
	return memberValues(dataset.Where(ds, col, symbol), candidates)
}

func memberValues(rows dataset.Dataset, candidates []string) []string {
	components := []string{}
	if rows == nil || rows.RowCount() == 0 {
		return components
	}
	for _, col := range candidates {
		if !rows.ColumnExists(col) {
			continue
		}
		seen := make(map[string]struct{})
		for _, v := range rows.UniqueValues(col) {
			s := dataset.String(v)
			if strings.TrimSpace(s) == "" {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			components = append(components, s)
		}
		if len(components) > 0 {
			break
		}
	}
	return components
}

// IndexPerformance reads the performance metrics of an index from the
// first row for symbol. Missing or non-numeric values stay 0.
func (r *Resolver) IndexPerformance(symbol string, ds dataset.Dataset) domain.IndexPerformance {
	var perf domain.IndexPerformance
	rows := scope(ds, symbol, r.cfg.Index.KeyColumns)
	if rows == nil || rows.RowCount() == 0 {
		return perf
	}
	for _, m := range r.cfg.Performance {
		if !rows.ColumnExists(m.Column) {
			continue
		}
		v, _ := rows.Get(0, m.Column)
		if f, ok := dataset.Float(v); ok {
			perf.Set(m.Metric, f)
		}
	}
	return perf
}

// IndexList returns one descriptor per distinct non-blank index symbol,
// taken from index_symbol or, failing that, symbol.
func (r *Resolver) IndexList(ds dataset.Dataset) []domain.IndexInfo {
	col, keys := entityKeys(ds, r.cfg.Index.KeyColumns)
	indices := make([]domain.IndexInfo, 0, len(keys))
	for _, key := range keys {
		indices = append(indices, r.ResolveIndex(key, dataset.Where(ds, col, key)))
	}
	return indices
}

// memberKeyColumns are the index key columns that can scope a component
// lookup. A column that also lists members ("symbol" in a plain member
// table) cannot identify the index.
func (r *Resolver) memberKeyColumns() []string {
	cols := make([]string, 0, len(r.cfg.Index.KeyColumns))
	for _, k := range r.cfg.Index.KeyColumns {
		member := false
		for _, c := range r.cfg.ComponentColumns {
			if strings.EqualFold(k, c) {
				member = true
				break
			}
		}
		if !member {
			cols = append(cols, k)
		}
	}
	return cols
}
