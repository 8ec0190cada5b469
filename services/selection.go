package services

import (
	"fmt"
	"strings"
	"time"
)

// serviceRef addresses the selection state of one service within one header.
type serviceRef struct {
	header  string
	service string
}

// serviceState is the owned per-service aggregate: sub-service membership
// plus duration selection. Deleting the ref deletes all of it at once.
type serviceState struct {
	subServices []string
	years       []string
	quarters    []string
}

// SelectionStore tracks the nested selection state of one quotation draft:
// headers, services per header, sub-services and year/quarter durations per
// service. All mutation rules live here; invalid inputs are no-ops.
type SelectionStore struct {
	catalog *Catalog

	headers     []string
	customNames map[string]string
	current     string

	selected map[string][]ServiceDef
	state    map[serviceRef]*serviceState

	requiresApproval bool
}

// NewSelectionStore creates an empty draft over the given catalog.
func NewSelectionStore(catalog *Catalog) *SelectionStore {
	return &SelectionStore{
		catalog:     catalog,
		customNames: make(map[string]string),
		selected:    make(map[string][]ServiceDef),
		state:       make(map[serviceRef]*serviceState),
	}
}

// Headers returns the draft's header keys in insertion order.
func (s *SelectionStore) Headers() []string {
	out := make([]string, len(s.headers))
	copy(out, s.headers)
	return out
}

// CurrentHeader returns the key of the header being edited, or "" when the
// draft has no headers.
func (s *SelectionStore) CurrentHeader() string { return s.current }

// SetCurrentHeader moves the editing pointer. Unknown keys are ignored.
func (s *SelectionStore) SetCurrentHeader(key string) {
	if s.hasHeader(key) {
		s.current = key
	}
}

// HeaderDisplayName resolves a header key to its display label.
func (s *SelectionStore) HeaderDisplayName(key string) string {
	if IsCustomHeaderKey(key) {
		if name, ok := s.customNames[key]; ok {
			return name
		}
		return "Custom Header"
	}
	return key
}

// CustomHeaderNames returns a copy of the custom key to display-name map.
func (s *SelectionStore) CustomHeaderNames() map[string]string {
	out := make(map[string]string, len(s.customNames))
	for k, v := range s.customNames {
		out[k] = v
	}
	return out
}

// RequiresApproval reports whether the draft deviates from package
// defaults. It is recomputed after every mutation.
func (s *SelectionStore) RequiresApproval() bool { return s.requiresApproval }

// SelectedServices returns the selected services of a header in selection
// order.
func (s *SelectionStore) SelectedServices(headerKey string) []ServiceDef {
	out := make([]ServiceDef, len(s.selected[headerKey]))
	copy(out, s.selected[headerKey])
	return out
}

// SelectedSubServices returns the selected sub-service ids for one service.
func (s *SelectionStore) SelectedSubServices(headerKey, serviceID string) []string {
	return copyStrings(s.stateFor(headerKey, serviceID).subServices)
}

// SelectedYears returns the selected year tokens for one service.
func (s *SelectionStore) SelectedYears(headerKey, serviceID string) []string {
	return copyStrings(s.stateFor(headerKey, serviceID).years)
}

// SelectedQuarters returns the selected quarter tokens for one service.
func (s *SelectionStore) SelectedQuarters(headerKey, serviceID string) []string {
	return copyStrings(s.stateFor(headerKey, serviceID).quarters)
}

// AddHeader adds a catalog header to the draft. Duplicate and unknown
// names are no-ops. For a package header every main service is
// pre-selected, including all of its sub-services. The custom-header
// sentinel is not added directly; callers start the naming flow and call
// ConfirmCustomHeader instead. Returns true when a header was added.
func (s *SelectionStore) AddHeader(name string) bool {
	if name == CustomHeaderSentinel {
		return false
	}
	if s.hasHeader(name) {
		return false
	}
	if _, ok := s.catalog.services[name]; !ok {
		return false
	}

	s.headers = append(s.headers, name)

	var defaults []ServiceDef
	if s.catalog.IsPackageHeader(name) {
		defaults = s.catalog.DefaultMainServices(name)
		for _, svc := range defaults {
			if len(svc.SubServices) > 0 {
				st := s.ensureState(name, svc.ID)
				st.subServices = allSubServiceIDs(svc)
			}
		}
	}
	s.selected[name] = defaults
	s.current = name
	s.recompute()
	return true
}

// ConfirmCustomHeader completes the custom-header flow with a user-typed
// name. Empty (after trimming) names are rejected. Returns the generated
// header key, or "" when nothing was added.
func (s *SelectionStore) ConfirmCustomHeader(rawName string) string {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return ""
	}

	key := fmt.Sprintf("%s%d", customKeyPrefix, time.Now().UnixMilli())
	s.headers = append(s.headers, key)
	s.customNames[key] = name
	s.selected[key] = nil
	s.current = key
	s.recompute()
	return key
}

// RemoveHeader deletes a header and cascades deletion of every owned
// service, sub-service and duration entry.
func (s *SelectionStore) RemoveHeader(key string) {
	if !s.hasHeader(key) {
		return
	}

	kept := s.headers[:0]
	for _, h := range s.headers {
		if h != key {
			kept = append(kept, h)
		}
	}
	s.headers = kept

	delete(s.selected, key)
	delete(s.customNames, key)
	for ref := range s.state {
		if ref.header == key {
			delete(s.state, ref)
		}
	}

	if s.current == key {
		s.current = ""
		if len(s.headers) > 0 {
			s.current = s.headers[0]
		}
	}
	s.recompute()
}

// ToggleService flips the selection of a service within a header.
// Selecting an addon already held by another header is rejected. Selecting
// a service with sub-services selects all of them; deselecting clears the
// service's sub-service and duration state.
func (s *SelectionStore) ToggleService(headerKey string, svc ServiceDef) {
	if !s.hasHeader(headerKey) {
		return
	}

	isSelected := s.isServiceSelected(headerKey, svc.ID)

	if !isSelected && svc.Category == CategoryAddon && s.addonHolder(svc.ID) != "" {
		return
	}

	if isSelected {
		s.deselectService(headerKey, svc.ID)
		delete(s.state, serviceRef{headerKey, svc.ID})
	} else {
		s.selected[headerKey] = append(s.selected[headerKey], svc)
		if len(svc.SubServices) > 0 {
			s.ensureState(headerKey, svc.ID).subServices = allSubServiceIDs(svc)
		}
	}
	s.recompute()
}

// ToggleSubService flips one sub-service. The parent service follows the
// derived rule: it is deselected the moment its sub-service set becomes
// empty and selected the moment the set becomes non-empty.
func (s *SelectionStore) ToggleSubService(headerKey, serviceID, subServiceID string) {
	svc, ok := s.catalog.FindService(headerKey, serviceID)
	if !ok || !s.hasHeader(headerKey) {
		return
	}

	st := s.ensureState(headerKey, serviceID)
	if containsString(st.subServices, subServiceID) {
		st.subServices = removeString(st.subServices, subServiceID)
	} else {
		st.subServices = append(st.subServices, subServiceID)
	}

	parentSelected := s.isServiceSelected(headerKey, serviceID)
	if len(st.subServices) == 0 && parentSelected {
		// Parent follows the sub-service set down. State stays as-is:
		// the set is already empty.
		s.deselectService(headerKey, serviceID)
	} else if len(st.subServices) > 0 && !parentSelected {
		// Parent follows the set up, without re-cascading the full
		// sub-service auto-selection.
		s.selected[headerKey] = append(s.selected[headerKey], svc)
	}
	s.recompute()
}

// SetYearSelected adds or removes a duration year for a service. Adding a
// year to a quarter-based service bulk-selects all of that year's
// quarters; removing a year removes every quarter token it prefixes.
func (s *SelectionStore) SetYearSelected(headerKey, serviceID, year string, included bool) {
	svc, ok := s.catalog.FindService(headerKey, serviceID)
	if !ok || !s.hasHeader(headerKey) {
		return
	}

	st := s.ensureState(headerKey, serviceID)
	if included {
		if !containsString(s.catalog.YearOptions(), year) {
			return
		}
		if !containsString(st.years, year) {
			st.years = append(st.years, year)
		}
		if svc.RequiresYearQuarter {
			for _, q := range s.catalog.QuartersForYear(year) {
				if !containsString(st.quarters, q) {
					st.quarters = append(st.quarters, q)
				}
			}
		}
		return
	}

	st.years = removeString(st.years, year)
	prefix := year + "-"
	kept := st.quarters[:0]
	for _, q := range st.quarters {
		if !strings.HasPrefix(q, prefix) {
			kept = append(kept, q)
		}
	}
	st.quarters = kept
}

// ToggleQuarter flips a single quarter token. The year list is untouched,
// so quarters remain individually adjustable after the bulk default.
func (s *SelectionStore) ToggleQuarter(headerKey, serviceID, quarterToken string) {
	if _, ok := s.catalog.FindService(headerKey, serviceID); !ok || !s.hasHeader(headerKey) {
		return
	}

	st := s.ensureState(headerKey, serviceID)
	if containsString(st.quarters, quarterToken) {
		st.quarters = removeString(st.quarters, quarterToken)
	} else {
		st.quarters = append(st.quarters, quarterToken)
	}
}

// Finalize produces the externally-shaped draft: per header the display
// name, internal key for custom headers, and per service the selected
// sub-services, durations and quarter count.
func (s *SelectionStore) Finalize() Draft {
	draft := Draft{
		RequiresApproval: s.requiresApproval,
	}
	if len(s.customNames) > 0 {
		draft.CustomHeaderNames = s.CustomHeaderNames()
	}

	for _, key := range s.headers {
		header := DraftHeader{Name: s.HeaderDisplayName(key)}
		if IsCustomHeaderKey(key) {
			header.OriginalName = key
		}

		for _, svc := range s.selected[key] {
			st := s.stateFor(key, svc.ID)

			ds := DraftService{
				ServiceDef:          svc,
				SelectedSubServices: []SubServiceDef{},
				SelectedYears:       copyStrings(st.years),
				SelectedQuarters:    copyStrings(st.quarters),
			}
			for _, sub := range svc.SubServices {
				if containsString(st.subServices, sub.ID) {
					ds.SelectedSubServices = append(ds.SelectedSubServices, sub)
				}
			}
			if svc.RequiresYearQuarter {
				// Minimum one quarter so a selected quarter-based
				// service never prices at zero.
				ds.QuarterCount = len(st.quarters)
				if ds.QuarterCount == 0 {
					ds.QuarterCount = 1
				}
			}
			header.Services = append(header.Services, ds)
		}
		draft.Headers = append(draft.Headers, header)
	}
	return draft
}

// LoadDraft rebuilds selection state from a previously finalized draft,
// e.g. when a saved quotation is reopened for editing. Services unknown to
// the catalog are kept as-is so older drafts survive catalog edits. An
// addon appearing under more than one header keeps only its first holder.
func (s *SelectionStore) LoadDraft(draft Draft) {
	s.headers = nil
	s.customNames = make(map[string]string)
	s.selected = make(map[string][]ServiceDef)
	s.state = make(map[serviceRef]*serviceState)
	s.current = ""

	heldAddons := make(map[string]bool)
	for _, header := range draft.Headers {
		key := header.Name
		if header.OriginalName != "" && IsCustomHeaderKey(header.OriginalName) {
			key = header.OriginalName
			s.customNames[key] = header.Name
		}
		s.headers = append(s.headers, key)

		var svcs []ServiceDef
		for _, ds := range header.Services {
			def, ok := s.catalog.FindService(key, ds.ID)
			if !ok {
				def = ds.ServiceDef
			}
			if def.Category == CategoryAddon {
				if heldAddons[ds.ID] {
					continue
				}
				heldAddons[ds.ID] = true
			}
			svcs = append(svcs, def)

			st := s.ensureState(key, ds.ID)
			for _, sub := range ds.SelectedSubServices {
				st.subServices = append(st.subServices, sub.ID)
			}
			st.years = copyStrings(ds.SelectedYears)
			st.quarters = copyStrings(ds.SelectedQuarters)
		}
		s.selected[key] = svcs
	}

	if len(s.headers) > 0 {
		s.current = s.headers[0]
	}
	s.recompute()
}

// recompute refreshes derived draft state after a mutation.
func (s *SelectionStore) recompute() {
	s.requiresApproval = computeRequiresApproval(s, s.catalog)
}

// addonHolder returns the header key currently holding the given addon
// service, or "" when it is free.
func (s *SelectionStore) addonHolder(serviceID string) string {
	for _, key := range s.headers {
		for _, svc := range s.selected[key] {
			if svc.ID == serviceID && svc.Category == CategoryAddon {
				return key
			}
		}
	}
	return ""
}

func (s *SelectionStore) hasHeader(key string) bool {
	for _, h := range s.headers {
		if h == key {
			return true
		}
	}
	return false
}

func (s *SelectionStore) isServiceSelected(headerKey, serviceID string) bool {
	for _, svc := range s.selected[headerKey] {
		if svc.ID == serviceID {
			return true
		}
	}
	return false
}

func (s *SelectionStore) deselectService(headerKey, serviceID string) {
	kept := s.selected[headerKey][:0]
	for _, svc := range s.selected[headerKey] {
		if svc.ID != serviceID {
			kept = append(kept, svc)
		}
	}
	s.selected[headerKey] = kept
}

func (s *SelectionStore) ensureState(headerKey, serviceID string) *serviceState {
	ref := serviceRef{headerKey, serviceID}
	st, ok := s.state[ref]
	if !ok {
		st = &serviceState{}
		s.state[ref] = st
	}
	return st
}

// stateFor returns the state aggregate for reading; missing entries read
// as empty.
func (s *SelectionStore) stateFor(headerKey, serviceID string) *serviceState {
	if st, ok := s.state[serviceRef{headerKey, serviceID}]; ok {
		return st
	}
	return &serviceState{}
}

func allSubServiceIDs(svc ServiceDef) []string {
	ids := make([]string, 0, len(svc.SubServices))
	for _, sub := range svc.SubServices {
		ids = append(ids, sub.ID)
	}
	return ids
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func removeString(list []string, v string) []string {
	kept := list[:0]
	for _, s := range list {
		if s != v {
			kept = append(kept, s)
		}
	}
	return kept
}

func copyStrings(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
