package services

// computeRequiresApproval decides whether a draft deviates from package
// defaults enough to need managerial approval. For every package or custom
// header it is true when any default main service was deselected, or when
// any addon service was added anywhere. A single deviation flips the flag;
// price and count do not weight in.
func computeRequiresApproval(store *SelectionStore, catalog *Catalog) bool {
	for _, key := range store.headers {
		if !catalog.IsPackageHeader(key) && !IsCustomHeaderKey(key) {
			continue
		}

		selected := store.selected[key]
		selectedIDs := make(map[string]bool, len(selected))
		for _, svc := range selected {
			selectedIDs[svc.ID] = true
		}

		for _, def := range catalog.DefaultMainServices(key) {
			if !selectedIDs[def.ID] {
				return true
			}
		}
		for _, svc := range selected {
			if svc.Category == CategoryAddon {
				return true
			}
		}
	}
	return false
}
