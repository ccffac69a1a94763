// Package exporter writes resolved catalogs as CSV and JSON.
//
// CSV files start with a UTF-8 BOM so spreadsheet applications detect the
// encoding. CatalogExporter.Export writes companies.csv, indices.csv,
// packages.csv and catalog.json into the output directory:
//
//	exp := exporter.NewCatalogExporter(paths.OutputDir, logger)
//	res, err := exp.Export(catalogs)
package exporter
