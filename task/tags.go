package task

import "fmt"

// AddTag registers a new tag. The tag's ID is derived from the label;
// a label that slugs to an existing ID is rejected.
func (r *Repository) AddTag(label, color string) (*Tag, error) {
	id := TagID(label)
	if id == "" {
		return nil, ErrEmptyTagLabel
	}
	if _, ok := r.TagByID(id); ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTag, id)
	}

	tag := Tag{ID: id, Label: label, Color: color}
	r.tags = append(r.tags, tag)
	r.notify()
	return &tag, nil
}

// UpdateTags replaces the whole tag registry. Tag IDs that vanish from
// the registry are stripped from every task in the same mutation, so
// the referential invariant holds at all times.
func (r *Repository) UpdateTags(tags []Tag) error {
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if tag.ID == "" {
			return ErrEmptyTagLabel
		}
		if seen[tag.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateTag, tag.ID)
		}
		seen[tag.ID] = true
	}

	// Keep the registry non-nil so an emptied registry persists as []
	// rather than a missing key, which loads as the defaults.
	r.tags = append(make([]Tag, 0, len(tags)), tags...)
	for i := range r.tasks {
		r.tasks[i].Tags = keepKnown(r.tasks[i].Tags, seen)
	}
	r.notify()
	return nil
}

// DeleteTag removes a tag from the registry and strips it from every
// task atomically.
func (r *Repository) DeleteTag(id string) error {
	kept := make([]Tag, 0, len(r.tags))
	found := false
	for _, tag := range r.tags {
		if tag.ID == id {
			found = true
			continue
		}
		kept = append(kept, tag)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrTagNotFound, id)
	}

	r.tags = kept
	for i := range r.tasks {
		r.tasks[i].Tags = removeID(r.tasks[i].Tags, id)
	}
	r.notify()
	return nil
}

func keepKnown(tagIDs []string, known map[string]bool) []string {
	out := tagIDs[:0]
	for _, id := range tagIDs {
		if known[id] {
			out = append(out, id)
		}
	}
	return out
}

func removeID(tagIDs []string, id string) []string {
	out := tagIDs[:0]
	for _, existing := range tagIDs {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
