package models

// Field describes one schema field of an entity together with its current value
type Field struct {
	Name     string
	Value    interface{}
	Required bool
}

// Empty reports whether the value is missing or falsy: an empty string, a zero number,
// false or nil
func (f Field) Empty() bool {
	switch v := f.Value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	case bool:
		return !v
	default:
		return false
	}
}

// Record is implemented by the value type of every stored record
type Record interface {
	GetID() string
	// Fields returns the schema fields in declaration order, identifier excluded
	Fields() []Field
}

// Entity is implemented by a pointer to a record, so the gateway can assign identifiers
type Entity interface {
	Record
	SetID(id string)
}

// MissingFields returns the names of the required fields that are empty
func MissingFields(e Record) []string {
	var missing []string
	for _, f := range e.Fields() {
		if f.Required && f.Empty() {
			missing = append(missing, f.Name)
		}
	}
	return missing
}
