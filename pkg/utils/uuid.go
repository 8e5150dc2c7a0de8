package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "abcdefghijklmnopqrstuvwxyz0123456789"

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// NewRunID returns "load-job-YYYYmmdd-HHMMSS-xxxxxx".
func NewRunID(now time.Time) string {
	id, err := GenerateID()
	if err != nil {
		return fmt.Sprintf("load-job-%s", now.Format("20060102-150405"))
	}
	return fmt.Sprintf("load-job-%s-%s", now.Format("20060102-150405"), id)
}
