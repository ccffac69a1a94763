package domain

// PackageInfo describes a data package derived from a source filename.
type PackageInfo struct {
	Filename    string   `json:"filename"`
	PackageName string   `json:"package_name"`
	DateInfo    DateInfo `json:"date_info"`
}

// DateInfo holds the date embedded in a filename as YYYY_MM_DD.
// All fields are empty when the filename carries no date, which
// serializes as an empty object.
type DateInfo struct {
	Year  string `json:"year,omitempty"`
	Month string `json:"month,omitempty"`
	Day   string `json:"day,omitempty"`
	Date  string `json:"date,omitempty"` // YYYY-MM-DD
}

// IsZero reports whether no date was found.
func (d DateInfo) IsZero() bool {
	return d == DateInfo{}
}
