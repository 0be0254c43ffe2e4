// internal/pkg/config/validators.go
package config

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Validator checks a loaded configuration
type Validator interface {
	Validate(cfg *Config) error
}

// ValidatorsFor returns the validators that apply to the configured environment
func ValidatorsFor(cfg *Config) []Validator {
	validators := []Validator{&BasicValidator{}}
	if cfg.IsProduction() {
		validators = append(validators, &ProductionValidator{})
	}
	return validators
}

// BasicValidator performs basic configuration validation
type BasicValidator struct{}

// Validate performs basic validation. It runs after credentials have been
// resolved, so required tags cover the marketplace secrets too.
func (v *BasicValidator) Validate(cfg *Config) error {
	// Validate required fields using reflection
	if err := validateRequiredFields(cfg); err != nil {
		return err
	}

	if cfg.Marketplace.RateLimit < 0 {
		return fmt.Errorf("marketplace rate limit cannot be negative")
	}

	if cfg.Vendor.MaxArchiveMB <= 0 {
		return fmt.Errorf("vendor max archive size must be positive")
	}

	if cfg.Sync.LockEnabled && cfg.Sync.LockTTL <= 0 {
		return fmt.Errorf("sync lock ttl must be positive when locking is enabled")
	}

	return nil
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	// Check for placeholder values
	if strings.Contains(cfg.Marketplace.APIKey, "MISSING_") {
		return fmt.Errorf("%w: seller token", ErrMissingRequiredConfig)
	}

	u, err := url.Parse(cfg.Marketplace.BaseURL)
	if err != nil || u.Scheme != "https" {
		return fmt.Errorf("marketplace base url must use https in production")
	}

	if strings.HasPrefix(cfg.Vendor.InventoryURL, "http://") {
		return fmt.Errorf("vendor inventory url must not use plain http in production")
	}

	if cfg.AWS.S3Endpoint != "" && cfg.AWS.UsePathStyle {
		return fmt.Errorf("path-style S3 endpoints are for development only")
	}

	return nil
}

// validateRequiredFields uses reflection to check required struct tags
func validateRequiredFields(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	return validateStruct(v, "")
}

func validateStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		fieldName := fieldType.Name

		if prefix != "" {
			fieldName = prefix + "." + fieldName
		}

		// Check for required tag
		if required := fieldType.Tag.Get("required"); required == "true" {
			if isZeroValue(field) {
				return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, fieldName)
			}
		}

		// Recursively check nested structs
		if field.Kind() == reflect.Struct {
			if err := validateStruct(field, fieldName); err != nil {
				return err
			}
		}
	}

	return nil
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == "" || strings.HasPrefix(v.String(), "MISSING_")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
