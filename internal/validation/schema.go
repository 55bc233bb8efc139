package validation

import "sort"

// Rule validates a single field value.
type Rule func(value string) Result

// Required builds a Rule that fails on blank values using the field label.
func Required(label string) Rule {
	return func(v string) Result { return ValidateRequired(v, label) }
}

// Optional wraps a rule so that empty values pass.
func Optional(r Rule) Rule {
	return func(v string) Result {
		if v == "" {
			return ok()
		}
		return r(v)
	}
}

// Schema maps field names to ordered rules. The first failing rule of a
// field determines its message.
type Schema map[string][]Rule

// FieldErrors maps field name to message.
type FieldErrors map[string]string

// ValidateField runs the field's rules against value. Unknown fields pass.
func (s Schema) ValidateField(field, value string) Result {
	for _, rule := range s[field] {
		if r := rule(value); !r.IsValid {
			return r
		}
	}
	return ok()
}

// Validate checks every field in the schema against data. Fields absent
// from data are validated as empty. Returns nil when all fields pass.
func (s Schema) Validate(data map[string]string) FieldErrors {
	var errs FieldErrors
	for _, field := range s.Fields() {
		if r := s.ValidateField(field, data[field]); !r.IsValid {
			if errs == nil {
				errs = FieldErrors{}
			}
			errs[field] = r.Error
		}
	}
	return errs
}

// ValidateTracked is Validate with every failure recorded on t.
func (s Schema) ValidateTracked(data map[string]string, t *Tracker, userID, context string) FieldErrors {
	errs := s.Validate(data)
	if t != nil {
		for _, field := range sortedKeys(errs) {
			t.RecordFailure(field, data[field], errs[field], userID, context)
		}
	}
	return errs
}

// Fields returns the schema's field names in stable order.
func (s Schema) Fields() []string {
	fields := make([]string, 0, len(s))
	for f := range s {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func sortedKeys(m FieldErrors) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ClientCreateSchema validates new client intake. CPF, phone and e-mail are
// optional at intake but must be valid when supplied.
var ClientCreateSchema = Schema{
	"name":     {Required("Nome")},
	"category": {Required("Categoria")},
	"cpf":      {Optional(ValidateCPF)},
	"phone":    {Optional(ValidatePhone)},
	"email":    {Optional(ValidateEmail)},
}

// ClientEditSchema validates client edits, where a valid CPF is mandatory.
var ClientEditSchema = Schema{
	"name":     {Required("Nome")},
	"cpf":      {Required("CPF"), ValidateCPF},
	"category": {Required("Categoria")},
	"phone":    {Optional(ValidatePhone)},
	"email":    {Optional(ValidateEmail)},
}
