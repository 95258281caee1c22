package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/okian/summit/internal/domain/model"
	"github.com/okian/summit/internal/domain/registry"
)

// Request is a profile as submitted over the wire.
type Request struct {
	Name               string   `json:"name" yaml:"name" validate:"max=120"`
	Bio                string   `json:"bio,omitempty" yaml:"bio" validate:"max=500"`
	Role               string   `json:"role,omitempty" yaml:"role" validate:"omitempty,role"`
	Proficiency        string   `json:"proficiency,omitempty" yaml:"proficiency" validate:"omitempty,oneof=beginner intermediate advanced"`
	Interests          []string `json:"interests,omitempty" yaml:"interests" validate:"max=64,dive,min=1,max=64"`
	InterestCategories []string `json:"interest_categories,omitempty" yaml:"interest_categories" validate:"max=16,dive,interest_category"`
	Goals              []string `json:"goals,omitempty" yaml:"goals" validate:"max=16,dive,min=1,max=32"`
	Days               []string `json:"days,omitempty" yaml:"days" validate:"max=31,dive,datetime=2006-01-02"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the registry-backed tags
// role and interest_category registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validations := map[string]validator.Func{
			"role": func(fl validator.FieldLevel) bool {
				_, ok := registry.LookupRole(fl.Field().String())
				return ok
			},
			"interest_category": func(fl validator.FieldLevel) bool {
				_, ok := registry.LookupInterest(fl.Field().String())
				return ok
			},
		}
		for tag, fn := range validations {
			if err := validate.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("register %s validation: %v", tag, err))
			}
		}
	})
	return validate
}

// Validate checks the request and returns an error wrapping ErrInvalidProfile.
func (r Request) Validate() error {
	err := Validator().Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(msgs, "; "))
}

// Profile validates the request and returns the normalized profile.
func (r Request) Profile() (model.Profile, error) {
	if err := r.Validate(); err != nil {
		return model.Profile{}, err
	}
	interests := append(registry.FlattenInterests(r.InterestCategories), r.Interests...)
	return Normalize(model.Profile{
		Name:        r.Name,
		Bio:         r.Bio,
		Role:        r.Role,
		Proficiency: model.Level(r.Proficiency),
		Interests:   interests,
		Goals:       r.Goals,
		Days:        r.Days,
	}), nil
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s exceeds maximum %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s is too short", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date like %s", field, fe.Param())
	case "role":
		return fmt.Sprintf("%s is not a known role", field)
	case "interest_category":
		return fmt.Sprintf("%s is not a known interest category", field)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
