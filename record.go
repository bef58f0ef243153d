package vetter

// Record is the object whose attributes are under validation. It exposes
// value access by attribute name and an append-only failure collector.
// A validator reads and writes exactly one entry (the attribute it is bound
// to) and, for confirmation, reads one additional entry.
type Record interface {
	// Value returns the value stored under name and whether it is present.
	Value(name string) (any, bool)

	// SetValue overwrites the value stored under name. Coercion writes
	// through this method immediately so the mutation is visible to later
	// rules in the same run and to the caller afterwards.
	SetValue(name string, value any)

	// Failures returns the record's failure collector.
	Failures() *Errors
}

// Errors is an append-only collector of per-field validation failures.
// The zero value is ready to use.
type Errors struct {
	list []FieldError
}

// Add appends a failure to the collector.
func (e *Errors) Add(fe FieldError) {
	e.list = append(e.list, fe)
}

// All returns every collected failure in insertion order.
func (e *Errors) All() []FieldError {
	return e.list
}

// On returns the failures collected for the given attribute.
func (e *Errors) On(attribute string) []FieldError {
	var out []FieldError
	for _, fe := range e.list {
		if fe.Attribute == attribute {
			out = append(out, fe)
		}
	}
	return out
}

// Has reports whether any failure was collected for the given attribute.
func (e *Errors) Has(attribute string) bool {
	for _, fe := range e.list {
		if fe.Attribute == attribute {
			return true
		}
	}
	return false
}

// Attributes returns the distinct attributes with failures, in first-seen order.
func (e *Errors) Attributes() []string {
	var attrs []string
	seen := make(map[string]bool)
	for _, fe := range e.list {
		if !seen[fe.Attribute] {
			attrs = append(attrs, fe.Attribute)
			seen[fe.Attribute] = true
		}
	}
	return attrs
}

// Empty reports whether the collector holds no failures.
func (e *Errors) Empty() bool {
	return len(e.list) == 0
}

// AsError returns nil when empty, otherwise a *ValidationError wrapping a
// copy of the collected failures.
func (e *Errors) AsError() error {
	if e.Empty() {
		return nil
	}
	out := make([]FieldError, len(e.list))
	copy(out, e.list)
	return &ValidationError{FieldErrors: out}
}

// MapRecord is a Record backed by a plain map. The map is held by
// reference: mutations from coercion are visible to the caller through the
// original map.
type MapRecord struct {
	values   map[string]any
	failures Errors
}

// NewMapRecord creates a Record over the given attribute values.
// A nil map is replaced with an empty one.
func NewMapRecord(values map[string]any) *MapRecord {
	if values == nil {
		values = make(map[string]any)
	}
	return &MapRecord{values: values}
}

// Value returns the value stored under name.
func (r *MapRecord) Value(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// SetValue overwrites the value stored under name.
func (r *MapRecord) SetValue(name string, value any) {
	r.values[name] = value
}

// Failures returns the record's failure collector.
func (r *MapRecord) Failures() *Errors {
	return &r.failures
}

// Values exposes the backing map (shared, not a copy).
func (r *MapRecord) Values() map[string]any {
	return r.values
}
