// Package cryptox hashes and verifies user passwords with Argon2id.
//
// Hashes are stored in the PHC-like form
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
//
// so the parameters can be raised later without invalidating existing rows.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

var errMalformedHash = errors.New("malformed password hash")

// dummyHash is verified against when a username does not exist, so unknown
// users cost as much as wrong passwords.
var dummyHash = encode(common.GenerateRandByteArray(saltLen), common.GenerateRandByteArray(argonKeyLen),
	argonMemory, argonTime, argonThreads)

// HashPassword derives an Argon2id key from password with a fresh random salt
// and returns the encoded hash.
func HashPassword(password []byte) (string, error) {
	if len(password) == 0 {
		return "", errors.New("empty password")
	}
	salt := common.GenerateRandByteArray(saltLen)
	key := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return encode(salt, key, argonMemory, argonTime, argonThreads), nil
}

// VerifyPassword reports whether password matches encoded. Malformed hashes
// never match.
func VerifyPassword(password []byte, encoded string) bool {
	p, salt, key, err := decode(encoded)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey(password, salt, p.time, p.memory, p.threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// DummyHash returns a well-formed hash no password is known to match.
func DummyHash() string {
	return dummyHash
}

type params struct {
	memory  uint32
	time    uint32
	threads uint8
}

func encode(salt, key []byte, memory, time uint32, threads uint8) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, time, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

func decode(encoded string) (*params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, nil, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, nil, errMalformedHash
	}

	p := &params{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return nil, nil, nil, errMalformedHash
	}
	// argon2.IDKey panics on zero time or threads.
	if p.memory == 0 || p.time == 0 || p.threads == 0 {
		return nil, nil, nil, errMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, errMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, nil, errMalformedHash
	}

	return p, salt, key, nil
}
