package domain

// CompanyInfo describes a listed company resolved from tabular data.
// Fields the source does not provide hold their documented default
// ("Unknown", or the symbol itself for Name).
type CompanyInfo struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}
