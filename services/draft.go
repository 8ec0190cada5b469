package services

// DraftService is one selected service in a finalized draft, carrying the
// catalog definition plus only the sub-services and durations the user
// actually picked.
type DraftService struct {
	ServiceDef
	SelectedSubServices []SubServiceDef `json:"selectedSubServices"`
	SelectedYears       []string        `json:"selectedYears"`
	SelectedQuarters    []string        `json:"selectedQuarters"`
	QuarterCount        int             `json:"quarterCount,omitempty"`
}

// DraftHeader is one header of a finalized draft. OriginalName carries the
// internal custom-header key; it is empty for catalog headers.
type DraftHeader struct {
	Name         string         `json:"name"`
	OriginalName string         `json:"originalName,omitempty"`
	Services     []DraftService `json:"services"`
}

// Draft is the externally-shaped selection state exchanged with the
// backend on finalize and reload.
type Draft struct {
	Headers           []DraftHeader     `json:"headers"`
	RequiresApproval  bool              `json:"requiresApproval"`
	CustomHeaderNames map[string]string `json:"customHeaderNames,omitempty"`
}

// ServiceCount returns the number of selected services across all headers.
func (d Draft) ServiceCount() int {
	n := 0
	for _, h := range d.Headers {
		n += len(h.Services)
	}
	return n
}
