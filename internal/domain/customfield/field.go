package customfield

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

type FieldType string

const (
	FieldText    FieldType = "TEXT"
	FieldNumber  FieldType = "NUMBER"
	FieldBoolean FieldType = "BOOLEAN"
	FieldDate    FieldType = "DATE"
	FieldSelect  FieldType = "SELECT"
)

func (f FieldType) IsValid() bool {
	switch f {
	case FieldText, FieldNumber, FieldBoolean, FieldDate, FieldSelect:
		return true
	}
	return false
}

var keyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{0,49}$`)

const maxTextValueLength = 1000

type CustomField struct {
	id           uint
	ticketTypeID *uint
	key          string
	label        string
	fieldType    FieldType
	options      []string
	required     bool
	active       bool
	sortOrder    int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewCustomField(ticketTypeID *uint, key, label string, fieldType FieldType, options []string, required bool, sortOrder int) (*CustomField, error) {
	key = strings.TrimSpace(key)
	if !keyRegex.MatchString(key) {
		return nil, fmt.Errorf("field key must match [a-z][a-z0-9_]*")
	}
	if !fieldType.IsValid() {
		return nil, fmt.Errorf("invalid field type: %s", fieldType)
	}
	f := &CustomField{ticketTypeID: ticketTypeID, key: key, fieldType: fieldType, active: true, createdAt: biztime.NowUTC()}
	if err := f.Update(label, options, required, sortOrder); err != nil {
		return nil, err
	}
	return f, nil
}

func ReconstructCustomField(id uint, ticketTypeID *uint, key, label string, fieldType FieldType, options []string, required, active bool, sortOrder int, createdAt, updatedAt time.Time) *CustomField {
	return &CustomField{
		id:           id,
		ticketTypeID: ticketTypeID,
		key:          key,
		label:        label,
		fieldType:    fieldType,
		options:      options,
		required:     required,
		active:       active,
		sortOrder:    sortOrder,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (f *CustomField) ID() uint             { return f.id }
func (f *CustomField) TicketTypeID() *uint  { return f.ticketTypeID }
func (f *CustomField) Key() string          { return f.key }
func (f *CustomField) Label() string        { return f.label }
func (f *CustomField) FieldType() FieldType { return f.fieldType }
func (f *CustomField) Options() []string    { return slices.Clone(f.options) }
func (f *CustomField) IsRequired() bool     { return f.required }
func (f *CustomField) IsActive() bool       { return f.active }
func (f *CustomField) SortOrder() int       { return f.sortOrder }
func (f *CustomField) CreatedAt() time.Time { return f.createdAt }
func (f *CustomField) UpdatedAt() time.Time { return f.updatedAt }

func (f *CustomField) SetID(id uint) { f.id = id }

func (f *CustomField) Update(label string, options []string, required bool, sortOrder int) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("field label is required")
	}
	clean := make([]string, 0, len(options))
	for _, o := range options {
		if o = strings.TrimSpace(o); o != "" && !slices.Contains(clean, o) {
			clean = append(clean, o)
		}
	}
	if f.fieldType == FieldSelect && len(clean) == 0 {
		return fmt.Errorf("select fields need at least one option")
	}
	if f.fieldType != FieldSelect {
		clean = nil
	}
	f.label = label
	f.options = clean
	f.required = required
	f.sortOrder = sortOrder
	f.updatedAt = biztime.NowUTC()
	return nil
}

func (f *CustomField) SetActive(active bool) {
	f.active = active
	f.updatedAt = biztime.NowUTC()
}

// Normalize checks v against the field type and returns the stored form.
// JSON numbers arrive as float64.
func (f *CustomField) Normalize(v any) (any, error) {
	switch f.fieldType {
	case FieldText:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be text", f.key)
		}
		if len([]rune(s)) > maxTextValueLength {
			return nil, fmt.Errorf("%s exceeds maximum length of %d characters", f.key, maxTextValueLength)
		}
		return s, nil
	case FieldNumber:
		switch n := v.(type) {
		case float64:
			if math.IsNaN(n) || math.IsInf(n, 0) {
				return nil, fmt.Errorf("%s must be a number", f.key)
			}
			return n, nil
		case int:
			return float64(n), nil
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return nil, fmt.Errorf("%s must be a number", f.key)
			}
			return parsed, nil
		}
		return nil, fmt.Errorf("%s must be a number", f.key)
	case FieldBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%s must be true or false", f.key)
		}
		return b, nil
	case FieldDate:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD)", f.key)
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD)", f.key)
		}
		return s, nil
	case FieldSelect:
		s, ok := v.(string)
		if !ok || !slices.Contains(f.options, s) {
			return nil, fmt.Errorf("%s must be one of: %s", f.key, strings.Join(f.options, ", "))
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported field type: %s", f.fieldType)
}

// ValidateValues checks a ticket's custom values against the active field
// definitions and returns the normalized map. Unknown keys are rejected.
func ValidateValues(fields []*CustomField, values map[string]any) (map[string]any, error) {
	byKey := make(map[string]*CustomField, len(fields))
	for _, f := range fields {
		if f.active {
			byKey[f.key] = f
		}
	}

	out := make(map[string]any, len(values))
	for k, v := range values {
		f, ok := byKey[k]
		if !ok {
			return nil, fmt.Errorf("unknown custom field: %s", k)
		}
		if isEmpty(v) {
			continue
		}
		nv, err := f.Normalize(v)
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, ok := out[k]; !ok && byKey[k].required {
			return nil, fmt.Errorf("custom field %s is required", k)
		}
	}
	return out, nil
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
