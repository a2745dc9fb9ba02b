package lifecycle

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/reliefhub/relief-api/fault"
	"github.com/reliefhub/relief-api/schema"
)

// LocationParams is the point a request is located at, [lng, lat]
type LocationParams struct {
	Coordinates []float64 `json:"coordinates" validate:"required,len=2"`
	Barangay    string    `json:"barangay" validate:"max=100"`
	City        string    `json:"city" validate:"max=100"`
}

// CreateParams are the attributes a requester provides for a new request
type CreateParams struct {
	Type         schema.RequestType `json:"type" validate:"required,oneof=food water shelter clothing medical money other"`
	Title        string             `json:"title" validate:"required,max=200"`
	Description  string             `json:"description" validate:"required,max=2000"`
	Category     string             `json:"category" validate:"max=100"`
	Urgency      schema.Urgency     `json:"urgency" validate:"omitempty,oneof=low medium high critical"`
	Quantity     string             `json:"quantity" validate:"max=200"`
	Items        []string           `json:"items" validate:"omitempty,dive,max=100"`
	Location     LocationParams     `json:"location"`
	Address      string             `json:"address" validate:"max=500"`
	GCashNumber  string             `json:"gcash_number" validate:"max=20"`
	AmountNeeded float64            `json:"amount_needed" validate:"gte=0"`
}

type patchRules struct {
	Title       string         `json:"title" validate:"max=200"`
	Description string         `json:"description" validate:"max=2000"`
	Urgency     schema.Urgency `json:"urgency" validate:"omitempty,oneof=low medium high critical"`
	Quantity    string         `json:"quantity" validate:"max=200"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// invalid converts validator errors into a single validation fault naming
// the first offending field
func invalid(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fault.Wrap(fault.Validation, err, "invalid parameters")
	}

	fe := errs[0]
	field := strings.TrimPrefix(fe.Namespace(), "CreateParams.")
	field = strings.TrimPrefix(field, "patchRules.")

	switch fe.Tag() {
	case "required":
		return fault.Validationf("%s is required", field)
	case "oneof":
		return fault.Validationf("%s must be one of: %s", field, fe.Param())
	case "max":
		return fault.Validationf("%s is too long", field)
	case "len":
		return fault.Validationf("%s must have %s elements", field, fe.Param())
	case "gte":
		return fault.Validationf("%s must not be negative", field)
	default:
		return fault.Validationf("%s is invalid", field)
	}
}

func (e *Engine) validateCreate(p *CreateParams) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)

	if err := e.validate.Struct(p); err != nil {
		return invalid(err)
	}
	if err := validCoordinates(p.Location.Coordinates); err != nil {
		return err
	}
	return nil
}

func validCoordinates(c []float64) error {
	if len(c) != 2 {
		return fault.Validationf("location.coordinates must be a [longitude, latitude] pair")
	}
	lng, lat := c[0], c[1]
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fault.Validationf("location.coordinates must be finite")
		}
	}
	if lng < -180 || lng > 180 {
		return fault.Validationf("longitude must be between -180 and 180")
	}
	if lat < -90 || lat > 90 {
		return fault.Validationf("latitude must be between -90 and 90")
	}
	return nil
}

func (e *Engine) validatePatch(p *schema.RequestPatch) error {
	if p.Empty() {
		return fault.Validationf("nothing to update")
	}

	rules := patchRules{}
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return fault.Validationf("title is required")
		}
		p.Title, rules.Title = &t, t
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		if d == "" {
			return fault.Validationf("description is required")
		}
		p.Description, rules.Description = &d, d
	}
	if p.Urgency != nil {
		if *p.Urgency == "" {
			return fault.Validationf("urgency is required")
		}
		rules.Urgency = *p.Urgency
	}
	if p.Quantity != nil {
		rules.Quantity = *p.Quantity
	}

	if err := e.validate.Struct(rules); err != nil {
		return invalid(err)
	}
	return nil
}

func validFilter(f schema.RequestFilter) error {
	switch f.Type {
	case "", schema.RequestTypeFood, schema.RequestTypeWater, schema.RequestTypeShelter,
		schema.RequestTypeClothing, schema.RequestTypeMedical, schema.RequestTypeMoney, schema.RequestTypeOther:
	default:
		return fault.Validationf("unknown request type %q", f.Type)
	}
	switch f.Urgency {
	case "", schema.UrgencyLow, schema.UrgencyMedium, schema.UrgencyHigh, schema.UrgencyCritical:
	default:
		return fault.Validationf("unknown urgency %q", f.Urgency)
	}
	if n := f.Near; n != nil {
		if err := validCoordinates([]float64{n.Longitude, n.Latitude}); err != nil {
			return err
		}
		if n.MaxDistance <= 0 {
			return fault.Validationf("distance must be positive")
		}
	}
	return nil
}
