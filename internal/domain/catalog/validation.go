package catalog

import "strings"

func validColor(c Color) bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

func validCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidateCreateInput validates fields required to create an activity.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrInvalidInput
	}
	if req.DurationMinutes <= 0 {
		return ErrInvalidInput
	}
	if !validColor(req.ColorKey) {
		return ErrInvalidInput
	}
	if !validCategory(req.Category) {
		return ErrInvalidInput
	}
	return nil
}

// ValidatePatch validates the fields a patch actually sets.
func ValidatePatch(patch Patch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return ErrInvalidInput
	}
	if patch.DurationMinutes != nil && *patch.DurationMinutes <= 0 {
		return ErrInvalidInput
	}
	if patch.ColorKey != nil && !validColor(*patch.ColorKey) {
		return ErrInvalidInput
	}
	if patch.Category != nil && !validCategory(*patch.Category) {
		return ErrInvalidInput
	}
	return nil
}
