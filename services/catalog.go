// Package services provides the quotation domain logic: the service
// catalog, selection state, approval policy, pricing and terms.
package services

import "strings"

// CategoryMain and CategoryAddon classify catalog services. Main services
// are bundled into their package by default; addon services are optional
// extras that may be selected in at most one header per draft.
const (
	CategoryMain  = "main"
	CategoryAddon = "addon"
)

// CustomHeaderSentinel is the catalog entry that stands in for a
// user-named header. Adding it does not add a header directly; it starts
// the custom-header naming flow.
const CustomHeaderSentinel = "Customized Header"

const customKeyPrefix = "custom-"

// SubServiceDef is a selectable sub-line of a catalog service.
type SubServiceDef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ServiceDef describes one catalog service.
type ServiceDef struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Label               string          `json:"label,omitempty"`
	Category            string          `json:"category"`
	SubServices         []SubServiceDef `json:"subServices,omitempty"`
	RequiresYearOnly    bool            `json:"requiresYearOnly,omitempty"`
	RequiresYearQuarter bool            `json:"requiresYearQuarter,omitempty"`
}

// Catalog is the static reference dataset mapping header names to their
// services, plus the selectable year/quarter options. It is loaded once
// via DefaultCatalog and passed explicitly to the components that need it.
type Catalog struct {
	headerOrder []string
	services    map[string][]ServiceDef
	years       []string
	quarters    map[string][]string
}

// HeaderNames returns all catalog header names in display order,
// including the custom-header sentinel.
func (c *Catalog) HeaderNames() []string {
	out := make([]string, len(c.headerOrder))
	copy(out, c.headerOrder)
	return out
}

// AvailableHeaders returns the catalog headers not yet present in the
// draft. The custom-header sentinel is always offered because each
// confirmation creates a fresh header key.
func (c *Catalog) AvailableHeaders(selected []string) []string {
	taken := make(map[string]bool, len(selected))
	for _, h := range selected {
		taken[h] = true
	}
	var out []string
	for _, h := range c.headerOrder {
		if h == CustomHeaderSentinel || !taken[h] {
			out = append(out, h)
		}
	}
	return out
}

// ServicesForHeader returns the catalog services for a header name.
// Custom header keys resolve to the sentinel's service menu.
func (c *Catalog) ServicesForHeader(header string) []ServiceDef {
	if IsCustomHeaderKey(header) {
		header = CustomHeaderSentinel
	}
	return c.services[header]
}

// FindService looks up a single service of a header by id.
func (c *Catalog) FindService(header, serviceID string) (ServiceDef, bool) {
	for _, svc := range c.ServicesForHeader(header) {
		if svc.ID == serviceID {
			return svc, true
		}
	}
	return ServiceDef{}, false
}

// IsPackageHeader reports whether the header is a catalog package with
// predefined default main services.
func (c *Catalog) IsPackageHeader(header string) bool {
	if header == CustomHeaderSentinel || IsCustomHeaderKey(header) {
		return false
	}
	_, ok := c.services[header]
	return ok
}

// DefaultMainServices returns the services pre-selected when the given
// header is added: every main-category service of a package (or of the
// sentinel menu, for custom headers).
func (c *Catalog) DefaultMainServices(header string) []ServiceDef {
	var out []ServiceDef
	for _, svc := range c.ServicesForHeader(header) {
		if svc.Category == CategoryMain {
			out = append(out, svc)
		}
	}
	return out
}

// YearOptions returns the selectable duration years.
func (c *Catalog) YearOptions() []string {
	out := make([]string, len(c.years))
	copy(out, c.years)
	return out
}

// QuartersForYear returns the quarter tokens ("<year>-Q1".."<year>-Q4")
// for one year.
func (c *Catalog) QuartersForYear(year string) []string {
	out := make([]string, len(c.quarters[year]))
	copy(out, c.quarters[year])
	return out
}

// IsCustomHeaderKey reports whether a header key was generated by the
// custom-header flow.
func IsCustomHeaderKey(key string) bool {
	return strings.HasPrefix(key, customKeyPrefix)
}

// DefaultCatalog loads the built-in MahaRERA compliance service catalog.
func DefaultCatalog() *Catalog {
	projectRegistration := ServiceDef{
		ID:       "project-registration",
		Name:     "Project Registration",
		Category: CategoryMain,
		SubServices: []SubServiceDef{
			{ID: "form-1", Name: "Form 1 (Architect Certificate)"},
			{ID: "form-2", Name: "Form 2 (Engineer Certificate)"},
			{ID: "form-3", Name: "Form 3 (CA Certificate)"},
		},
	}
	qpr := ServiceDef{
		ID:                  "qpr",
		Name:                "Quarterly Progress Report (QPR)",
		Category:            CategoryMain,
		RequiresYearQuarter: true,
	}
	form5 := ServiceDef{
		ID:               "form-5",
		Name:             "Form 5 (Annual Compliance Audit)",
		Category:         CategoryMain,
		RequiresYearOnly: true,
	}
	legalDrafting := ServiceDef{
		ID:       "legal-drafting",
		Name:     "Drafting of Legal Documents",
		Category: CategoryMain,
	}

	// Addon pool shared across package headers. The same ids appear in
	// several headers on purpose: the selection store enforces that each
	// addon is picked in at most one header per draft.
	addons := []ServiceDef{
		{ID: "sro-membership", Name: "SRO Membership", Category: CategoryAddon},
		{ID: "project-extension", Name: "Project Extension - Section 7.3", Category: CategoryAddon},
		{ID: "project-correction", Name: "Project Correction - Change of FSI/ Plan", Category: CategoryAddon},
		{ID: "removal-abeyance", Name: "Removal of Abeyance - QPR, Lapsed", Category: CategoryAddon},
		{ID: "title-certificate", Name: "Title Certificate", Category: CategoryAddon},
	}

	customMenu := append([]ServiceDef{
		{ID: "project-closure", Name: "Project Closure", Category: CategoryAddon},
		{ID: "deregistration", Name: "Deregistration", Category: CategoryAddon},
		{ID: "change-of-promoter", Name: "Change of Promoter (section 15)", Category: CategoryAddon},
		{ID: "profile-migration", Name: "Profile Migration", Category: CategoryAddon},
		{ID: "legal-vetting", Name: "Vetting of Legal Documents", Category: CategoryAddon},
		{ID: "title-report-a", Name: "Drafting of Title Report in Format A", Category: CategoryAddon},
	}, addons...)

	years := []string{"2024", "2025", "2026", "2027"}
	quarters := make(map[string][]string, len(years))
	for _, y := range years {
		quarters[y] = []string{y + "-Q1", y + "-Q2", y + "-Q3", y + "-Q4"}
	}

	return &Catalog{
		headerOrder: []string{
			"Package A", "Package B", "Package C", "Package D",
			CustomHeaderSentinel,
		},
		services: map[string][]ServiceDef{
			"Package A": append([]ServiceDef{projectRegistration, qpr}, addons...),
			"Package B": append([]ServiceDef{projectRegistration, qpr, form5}, addons...),
			"Package C": append([]ServiceDef{projectRegistration, qpr, form5, legalDrafting}, addons...),
			"Package D": append([]ServiceDef{
				{ID: "liasioning", Name: "Liasioning", Category: CategoryMain},
				{ID: "profile-updation", Name: "Profile Updation", Category: CategoryMain},
			}, addons...),
			CustomHeaderSentinel: customMenu,
		},
		years:    years,
		quarters: quarters,
	}
}
