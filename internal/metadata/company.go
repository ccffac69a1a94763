package metadata

import (
	"github.com/vorobyoffn/Financial-Dashboard/internal/dataset"
	"github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/domain"
)

// ResolveCompany returns the company descriptor for symbol. ds may be nil
// or empty, in which case every field holds its default.
func (r *Resolver) ResolveCompany(symbol string, ds dataset.Dataset) domain.CompanyInfo {
	fields := fillFields(ds, symbol, r.cfg.Company, map[string]string{
		FieldName:     symbol,
		FieldSector:   r.cfg.Unknown,
		FieldIndustry: r.cfg.Unknown,
	})
	return domain.CompanyInfo{
		Symbol:      symbol,
		Name:        fields[FieldName],
		Sector:      fields[FieldSector],
		Industry:    fields[FieldIndustry],
		Description: "Company information for " + symbol,
	}
}

// CompanyList returns one descriptor per distinct non-blank symbol. It is
// empty when ds has no identifying column.
func (r *Resolver) CompanyList(ds dataset.Dataset) []domain.CompanyInfo {
	col, keys := entityKeys(ds, r.cfg.Company.KeyColumns)
	companies := make([]domain.CompanyInfo, 0, len(keys))
	for _, key := range keys {
		companies = append(companies, r.ResolveCompany(key, dataset.Where(ds, col, key)))
	}
	return companies
}
