package utils

// ValidateNationalID checks the 12-digit national ID format. Checksum
// verification is out of scope; registration data comes pre-verified.
func ValidateNationalID(id string) bool {
	if len(id) != 12 {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	// All-same-digit IDs are never issued
	first := id[0]
	for i := 1; i < len(id); i++ {
		if id[i] != first {
			return true
		}
	}
	return false
}
