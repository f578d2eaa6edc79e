package factory

import (
	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// NewUser builds a T with random data. PasswordHash defaults to the hash of
// "12345678" unless overridden.
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	hasPasswordHash := false

	for _, data := range customData {
		if _, exists := data["PasswordHash"]; exists {
			hasPasswordHash = true
			break
		}
	}

	defaults := map[string]any{"ID": uuid.NewString()}

	if !hasPasswordHash {
		passwordHash, _ := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.MinCost)
		defaults["PasswordHash"] = string(passwordHash)
	}

	return instance.Build(merge(defaults, customData))
}
