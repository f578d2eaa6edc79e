package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
)

func NewList[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))
	now := time.Now().UTC()

	defaults := map[string]any{
		"ID":        uuid.NewString(),
		"Priority":  1,
		"CreatedAt": now,
		"UpdatedAt": now,
	}

	return instance.Build(merge(defaults, customData))
}
