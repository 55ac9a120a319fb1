package usecase

import (
	"sort"

	"github.com/asaskevich/govalidator"

	"stunting/domain"
)

// validateStruct runs the govalidator tags of s and reports the first failing
// field, in field name order so the message is stable.
func validateStruct(s interface{}) error {
	if _, err := govalidator.ValidateStruct(s); err != nil {
		byField := govalidator.ErrorsByField(err)
		if len(byField) == 0 {
			return domain.NewValidationError("", err.Error())
		}
		fields := make([]string, 0, len(byField))
		for f := range byField {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		return domain.NewValidationError(fields[0], byField[fields[0]])
	}
	return nil
}

func validateCoordinates(lat, long *float64) error {
	if lat == nil {
		return domain.NewValidationError("latitude", "Latitude is required")
	}
	if long == nil {
		return domain.NewValidationError("longitude", "Longitude is required")
	}
	if !govalidator.InRangeFloat64(*lat, -90, 90) {
		return domain.NewValidationError("latitude", "Latitude must be between -90 and 90")
	}
	if !govalidator.InRangeFloat64(*long, -180, 180) {
		return domain.NewValidationError("longitude", "Longitude must be between -180 and 180")
	}
	return nil
}

func validateAddress(p *domain.AddressPayload) error {
	if p == nil {
		return domain.NewValidationError("alamat", "Address is required")
	}
	if err := validateStruct(p); err != nil {
		return err
	}
	return validateCoordinates(p.Latitude, p.Longitude)
}
