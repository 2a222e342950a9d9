package user

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

const (
	hashTime    = 2
	hashMemory  = 19 * 1024
	hashThreads = 1
	hashKeyLen  = 32
)

// Hasher derives password digests. The salt is fixed per installation, so the same password always hashes
// to the same digest.
type Hasher struct {
	salt []byte
}

func NewHasher(secretKey string) *Hasher {
	salt := sha256.Sum256([]byte("sdms.core.user.Hasher" + secretKey))
	return &Hasher{salt: salt[:]}
}

func (h *Hasher) Hash(pwd string) string {
	return hex.EncodeToString(argon2.IDKey([]byte(pwd), h.salt, hashTime, hashMemory, hashThreads, hashKeyLen))
}

func (h *Hasher) Check(hash, pwd string) bool {
	return subtle.ConstantTimeCompare([]byte(hash), []byte(h.Hash(pwd))) == 1
}
