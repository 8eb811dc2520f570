package indexing

// SetField writes a single-valued field, overwriting any prior value. Empty
// values are skipped entirely so that documents never carry empty markers.
func (d *Document) SetField(name, value string) {
	if value == "" {
		return
	}
	d.fields[name] = value
}

// AddFields appends values under a multi-valued field. Empty individual
// values are dropped; if nothing remains, the field is left untouched.
// Duplicates among the supplied values are kept as given. If the field
// currently holds a single value, it is promoted to a list first.
func (d *Document) AddFields(name string, values []string) {
	kept := values[:0:0]
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return
	}

	switch existing := d.fields[name].(type) {
	case nil:
		d.fields[name] = kept
	case string:
		d.fields[name] = append([]string{existing}, kept...)
	case []string:
		d.fields[name] = append(existing, kept...)
	}
}

// PrependSortable writes a sortable field. If the field already holds a
// value, the new value is concatenated in front of it rather than
// overwriting, building one consolidated sort token per field across the
// categories, brands, and locales that feed it. Empty values are skipped.
func (d *Document) PrependSortable(name, value string) {
	if value == "" {
		return
	}
	if existing, ok := d.fields[name].(string); ok {
		d.fields[name] = value + existing
		return
	}
	d.fields[name] = value
}
