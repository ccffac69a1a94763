package metadata

import (
	"regexp"
	"strings"

	"github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/domain"
)

// PackageRule is one entry of the filename rule table.
type PackageRule struct {
	Name    string
	Pattern *regexp.Regexp
	// Format builds the package name from the capture groups (index 0 is
	// the first group, not the whole match).
	Format func(groups []string) string
}

// FormatPackageGroups is the stock formatter: Package_<g1>_<g2> when the
// pattern has two or more groups, Package_<g1> otherwise.
func FormatPackageGroups(groups []string) string {
	if len(groups) >= 2 {
		return "Package_" + groups[0] + "_" + groups[1]
	}
	return "Package_" + groups[0]
}

// Word and digit classes for filename patterns. Letters and digits of any
// script count, so "Package_Société" keeps its full name.
const (
	wordClass  = `[\p{L}\p{N}_]`
	digitClass = `\p{Nd}`
)

// DefaultPackageRules returns the stock filename rules in priority order.
// Matching is case-insensitive and unanchored.
func DefaultPackageRules() []PackageRule {
	rule := func(name, expr string) PackageRule {
		return PackageRule{
			Name:    name,
			Pattern: regexp.MustCompile(`(?i)` + expr),
			Format:  FormatPackageGroups,
		}
	}
	return []PackageRule{
		rule("package_dated", `Package_(`+wordClass+`+)_(`+digitClass+`{4})_(`+digitClass+`{2})_(`+digitClass+`{2})`),
		rule("package_month_day", `Package_(`+wordClass+`+)_([a-z]{3})(`+digitClass+`{2})`),
		rule("package", `Package_(`+wordClass+`+)`),
		rule("dated", `(`+wordClass+`+)_(`+digitClass+`{4})_(`+digitClass+`{2})_(`+digitClass+`{2})`),
		rule("month_day", `(`+wordClass+`+)_([a-z]{3})(`+digitClass+`{2})`),
	}
}

// StripExtension removes the text after the final '.', and the dot
// itself. Names without a dot are returned unchanged.
func StripExtension(filename string) string {
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		return filename[:i]
	}
	return filename
}

// MatchPackage runs the rule table against the extension-stripped
// filename. It returns the resolved name and the name of the rule that
// matched; rule is empty and matched false when nothing matched, in which
// case name is the stripped filename.
func (r *Resolver) MatchPackage(filename string) (name, rule string, matched bool) {
	stem := StripExtension(filename)
	for _, pr := range r.cfg.PackageRules {
		if pr.Pattern == nil {
			continue
		}
		m := pr.Pattern.FindStringSubmatch(stem)
		if m == nil {
			continue
		}
		format := pr.Format
		if format == nil {
			format = FormatPackageGroups
		}
		if len(m) < 2 {
			// a rule without groups names the package after the whole match
			return format([]string{m[0]}), pr.Name, true
		}
		return format(m[1:]), pr.Name, true
	}
	return stem, "", false
}

// ResolvePackageName returns the package name for a filename, falling
// back to the extension-stripped filename when no rule matches.
func (r *Resolver) ResolvePackageName(filename string) string {
	name, _, _ := r.MatchPackage(filename)
	return name
}

// ResolveDate extracts the first YYYY_MM_DD found in the filename. The
// scan runs on the original filename, independently of the name rules.
func (r *Resolver) ResolveDate(filename string) domain.DateInfo {
	m := r.cfg.DatePattern.FindStringSubmatch(filename)
	if len(m) < 4 {
		return domain.DateInfo{}
	}
	return domain.DateInfo{
		Year:  m[1],
		Month: m[2],
		Day:   m[3],
		Date:  m[1] + "-" + m[2] + "-" + m[3],
	}
}

// ResolvePackageInfo returns the full package descriptor for a filename.
func (r *Resolver) ResolvePackageInfo(filename string) domain.PackageInfo {
	return domain.PackageInfo{
		Filename:    filename,
		PackageName: r.ResolvePackageName(filename),
		DateInfo:    r.ResolveDate(filename),
	}
}

// ResolvePackageList resolves every non-blank filename in input order.
func (r *Resolver) ResolvePackageList(filenames []string) []domain.PackageInfo {
	packages := make([]domain.PackageInfo, 0, len(filenames))
	for _, name := range filenames {
		if strings.TrimSpace(name) == "" {
			continue
		}
		packages = append(packages, r.ResolvePackageInfo(name))
	}
	return packages
}
