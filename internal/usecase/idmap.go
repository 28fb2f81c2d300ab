package usecase

// idMap translates snapshot-local identities to live store identities for
// one entity type within one import run. The snapshot's own ids are never
// persisted; they only exist so dependent records can follow references.
type idMap map[string]string

func newIDMap() idMap {
	return make(idMap)
}

// record stores the live identity a snapshot record was matched to or
// created as.
func (m idMap) record(oldID, newID string) {
	if oldID == "" {
		return
	}
	m[oldID] = newID
}

// resolve translates a snapshot-local reference. The second return value is
// false when the referenced record never made it into the store, which the
// caller must treat as "reference unavailable", not as an error.
func (m idMap) resolve(oldID string) (string, bool) {
	id, ok := m[oldID]
	return id, ok
}
