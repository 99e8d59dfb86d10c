package lead

import (
	"errors"
	"fmt"
	"strings"
)

// Field names as sent to the relay and used as ValidationErrors keys.
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldCarMakeModel = "car_make_model"
	FieldYear         = "year"
	FieldMileage      = "mileage"
	FieldFuelType     = "fuel_type"
	FieldTransmission = "transmission"
	FieldEngineSize   = "engine_size"
	FieldEnginePower  = "engine_power"
	FieldNotes        = "notes"
)

// ErrUnknownField is returned by Get/Set for names outside FieldNames.
var ErrUnknownField = errors.New("lead: unknown field")

// FieldNames lists every field in form order.
var FieldNames = []string{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldCarMakeModel,
	FieldYear,
	FieldMileage,
	FieldFuelType,
	FieldTransmission,
	FieldEngineSize,
	FieldEnginePower,
	FieldNotes,
}

// RequiredFields lists the fields that carry validation rules.
var RequiredFields = []string{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldCarMakeModel,
	FieldYear,
	FieldMileage,
}

// OptionalFields are sent only when the user filled them in.
var OptionalFields = []string{
	FieldFuelType,
	FieldTransmission,
	FieldEngineSize,
	FieldEnginePower,
}

// Select options offered for the optional vehicle details.
var (
	FuelTypes     = []string{"benzin", "dizel", "hibrid", "električni", "plin"}
	Transmissions = []string{"ručni", "automatski"}
)

// Fields is the lead as typed by the user. It is a plain value; copies are
// independent.
type Fields struct {
	Name         string `form:"name" yaml:"name" validate:"min=2,max=100"`
	Email        string `form:"email" yaml:"email" validate:"email"`
	Phone        string `form:"phone" yaml:"phone" validate:"min=6"`
	CarMakeModel string `form:"car_make_model" yaml:"car_make_model" validate:"min=2"`
	Year         string `form:"year" yaml:"year" validate:"min=4"`
	Mileage      string `form:"mileage" yaml:"mileage" validate:"required"`
	FuelType     string `form:"fuel_type" yaml:"fuel_type,omitempty"`
	Transmission string `form:"transmission" yaml:"transmission,omitempty"`
	EngineSize   string `form:"engine_size" yaml:"engine_size,omitempty"`
	EnginePower  string `form:"engine_power" yaml:"engine_power,omitempty"`
	Notes        string `form:"notes" yaml:"notes,omitempty"`
}

// Get returns the value bound to a field name.
func (f Fields) Get(name string) (string, error) {
	ptr := f.ref(name)
	if ptr == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return *ptr, nil
}

// Set assigns a field by name.
func (f *Fields) Set(name, value string) error {
	ptr := f.ref(name)
	if ptr == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	*ptr = value
	return nil
}

// Values returns every field keyed by name, empty ones included.
func (f Fields) Values() map[string]string {
	out := make(map[string]string, len(FieldNames))
	for _, name := range FieldNames {
		out[name] = *f.ref(name)
	}
	return out
}

// IsZero reports whether every field is empty.
func (f Fields) IsZero() bool {
	return f == Fields{}
}

// IsField reports whether name is a known field.
func IsField(name string) bool {
	for _, candidate := range FieldNames {
		if candidate == name {
			return true
		}
	}
	return false
}

// IsOptional reports whether name is one of the optional vehicle details.
func IsOptional(name string) bool {
	for _, candidate := range OptionalFields {
		if candidate == name {
			return true
		}
	}
	return false
}

func (f *Fields) ref(name string) *string {
	switch strings.TrimSpace(name) {
	case FieldName:
		return &f.Name
	case FieldEmail:
		return &f.Email
	case FieldPhone:
		return &f.Phone
	case FieldCarMakeModel:
		return &f.CarMakeModel
	case FieldYear:
		return &f.Year
	case FieldMileage:
		return &f.Mileage
	case FieldFuelType:
		return &f.FuelType
	case FieldTransmission:
		return &f.Transmission
	case FieldEngineSize:
		return &f.EngineSize
	case FieldEnginePower:
		return &f.EnginePower
	case FieldNotes:
		return &f.Notes
	default:
		return nil
	}
}
