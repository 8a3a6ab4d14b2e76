package errors

import (
	"regexp"
	"unicode"
)

// vpcIDRegex matches EC2 VPC identifiers (legacy 8 and current 17 hex digits).
var vpcIDRegex = regexp.MustCompile(`^vpc-([0-9a-f]{8}|[0-9a-f]{17})$`)

// ValidateVPCID validates a VPC identifier given on the command line or in a
// request path.
//
// Snapshots built by hand often use short ids such as "vpc-01", so only the
// "vpc-" prefix and a safe character set are enforced unless strict is set.
func ValidateVPCID(id string, strict bool) error {
	if id == "" {
		return New(ErrCodeInvalidVPCID, "VPC id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidVPCID, "VPC id too long (max 64 characters)")
	}
	if strict {
		if !vpcIDRegex.MatchString(id) {
			return New(ErrCodeInvalidVPCID, "invalid VPC id: %q", id)
		}
		return nil
	}
	if len(id) < 5 || id[:4] != "vpc-" {
		return New(ErrCodeInvalidVPCID, "VPC id must start with \"vpc-\": %q", id)
	}
	for _, r := range id {
		if !(r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return New(ErrCodeInvalidVPCID, "VPC id contains invalid characters: %q", id)
		}
	}
	return nil
}

// ValidatePath validates a snapshot or output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
