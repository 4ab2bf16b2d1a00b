package config

// Shared attribute validators used by the builders. Each runs once, at
// Build time, so a builder never holds a partially-validated value.

// validateString checks presence and emptiness of a string attribute.
// A nil pointer means the attribute was never set.
func validateString(v *string, field string, required, allowEmpty bool) (string, error) {
	if v == nil {
		if required {
			return "", missingErr(field)
		}
		return "", nil
	}
	if *v == "" && !allowEmpty {
		return "", emptyErr(field)
	}
	return *v, nil
}

// validateRef checks a resource reference. References are opaque handles
// resolved by an external resource system; the only structural checks are
// presence and a positive value (zero is the external system's null ref).
func validateRef(v *int, field string, required bool) (int, error) {
	if v == nil {
		if required {
			return 0, missingErr(field)
		}
		return 0, nil
	}
	if *v <= 0 {
		return 0, invalidErr(field)
	}
	return *v, nil
}
