package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short opaque identifier for days, activities and drafts.
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateLongID returns a longer identifier for externally visible resources.
func GenerateLongID() string {
	id, err := gonanoid.Generate(idAlphabet, 13)
	if err != nil {
		return ""
	}
	return id
}
