// Package metadata derives canonical identifiers from loosely structured
// financial exports: package names and dates from filenames, company and
// index descriptors from tabular data, index component lists and
// performance metrics.
//
// Every resolver always succeeds. Missing columns, absent rows,
// non-numeric values and unmatched filenames are absorbed into documented
// defaults ("Unknown", 0, an empty list, an empty date), so callers detect
// missing data by comparing against those sentinels rather than by
// checking errors.
//
// All default tables live in an immutable Config held by a Resolver.
// Resolvers keep no other state and never log, so one Resolver may be
// shared freely across goroutines:
//
//	r := metadata.New(metadata.DefaultConfig())
//	pkg := r.ResolvePackageInfo("Package_US_2024_01_15.xlsx")
//	companies := r.CompanyList(tbl)
package metadata
