package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Memory is in KiB, so 64*1024 is 64 MiB per hash.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// HashPassword hashes a password with argon2id using a fresh random salt,
// so two hashes of the same input differ. The result is the standard
// encoded form "$argon2id$v=19$m=...,t=...,p=...$salt$hash" which carries
// everything VerifyPassword needs.
func HashPassword(plain string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(plain), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifyPassword compares an encoded argon2id hash with a plain password
// in constant time. A malformed stored hash yields false, never an error
// or a panic.
func VerifyPassword(encoded, plain string) bool {
	salt, key, time, memory, threads, err := decodeArgonHash(encoded)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey([]byte(plain), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// decodeArgonHash splits the encoded form back into its parameters. The
// parameters stored in the hash are used for verification, not the
// package constants, so hashes survive future parameter changes.
func decodeArgonHash(encoded string) (salt, key []byte, time, memory uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, errors.New("not an argon2id hash")
	}
	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, errors.New("unsupported argon2 version")
	}
	var p uint32
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &p); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	if memory == 0 || time == 0 || p == 0 || p > 255 {
		return nil, nil, 0, 0, 0, errors.New("invalid argon2 parameters")
	}
	threads = uint8(p)
	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	if len(salt) == 0 || len(key) == 0 {
		return nil, nil, 0, 0, 0, errors.New("empty salt or key")
	}
	return salt, key, time, memory, threads, nil
}
