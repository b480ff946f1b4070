// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides access keys and token utilities.

# Access Keys

Access keys use HMAC-SHA256 to create deterministic, verifiable keys per
role:

	adminKey := auth.GenerateAccessKey(auth.RoleAdmin, salt)
	judgeKey := auth.GenerateAccessKey(auth.JudgeRole("dance1"), salt)
	err := auth.ValidateAccessKey(auth.RoleAdmin, key, salt)

Keys are URL-safe base64 without padding. Since they are deterministic from
role and salt, nothing is stored: the operator derives the admin key and the
four judge keys at setup and distributes them. Each judge slot has its own
key, so judge identity is the key itself.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving vote logging:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
