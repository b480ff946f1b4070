// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAccessKey = errors.New("invalid access key")
)

// Access roles. The admin console holds one key; each judge slot holds its
// own, so a dance judge's key cannot touch the music panel.
const RoleAdmin = "admin"

// JudgeRole returns the access role for a judge slot ID.
func JudgeRole(slot string) string {
	return "judge:" + slot
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAccessKey creates an HMAC-based access key for a role.
// Deterministic from role and salt, so it can be validated without being
// stored: the operator derives the admin and judge keys once at setup and
// hands them out.
func GenerateAccessKey(role, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(role))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAccessKey checks if the provided key is valid for the role
func ValidateAccessKey(role, key, salt string) error {
	expected := GenerateAccessKey(role, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidAccessKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
