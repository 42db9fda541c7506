package prices

// Plan lists the entries that have to be created, updated and deleted for
// the API to match an edited price list.
type Plan struct {
	ToUpdate []Entry
	ToCreate []Entry
	ToDelete []Entry
}

// Empty reports whether there is nothing to send.
func (p Plan) Empty() bool {
	return len(p.ToUpdate) == 0 && len(p.ToCreate) == 0 && len(p.ToDelete) == 0
}

// Reconcile compares the edited entries against the snapshot they started
// from. It fails with *PendingEditError if any entry is still being edited.
//
// Entries are matched by ID. Labels and values are compared as text, so
// "5.0" and "5,0" differ. Update and create keep the order of current,
// delete keeps the order of the snapshot.
func Reconcile(snapshot Snapshot, current []Entry) (Plan, error) {
	if ids := editingIDs(current); len(ids) > 0 {
		return Plan{}, &PendingEditError{IDs: ids}
	}

	original := make(map[ID]Entry, len(snapshot.entries))
	for _, e := range snapshot.entries {
		original[e.ID] = e
	}

	var plan Plan
	kept := make(map[ID]struct{}, len(current))
	for _, e := range current {
		kept[e.ID] = struct{}{}

		orig, ok := original[e.ID]
		if !ok {
			plan.ToCreate = append(plan.ToCreate, e)
			continue
		}
		if orig.Label != e.Label || orig.Value != e.Value {
			plan.ToUpdate = append(plan.ToUpdate, e)
		}
	}

	for _, e := range snapshot.entries {
		if _, ok := kept[e.ID]; !ok {
			plan.ToDelete = append(plan.ToDelete, e)
		}
	}

	return plan, nil
}
