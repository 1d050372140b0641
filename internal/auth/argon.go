package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
)

// MinPasswordLength is the shortest password the club accepts.
const MinPasswordLength = 6

// maxPasswordLength bounds the input to a single argon2 call.
const maxPasswordLength = 1024

var (
	// ErrPasswordTooShort is returned by CheckPasswordPolicy.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	// ErrPasswordTooLong is returned for inputs over maxPasswordLength bytes.
	ErrPasswordTooLong = errors.New("password exceeds maximum length")

	errMalformedHash = errors.New("malformed password hash")
)

// HashParams are the argon2id cost settings baked into every stored hash.
type HashParams struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  int
	KeyLength   uint32
}

// DefaultHashParams follows the OWASP argon2id baseline.
var DefaultHashParams = HashParams{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// PasswordHasher hashes and verifies passwords in PHC string form.
type PasswordHasher struct {
	params HashParams
}

// NewPasswordHasher returns a hasher producing hashes with p.
func NewPasswordHasher(p HashParams) *PasswordHasher {
	return &PasswordHasher{params: p}
}

var defaultHasher = NewPasswordHasher(DefaultHashParams)

// CheckPasswordPolicy validates a new password before it is hashed.
func CheckPasswordPolicy(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// HashPassword hashes with DefaultHashParams.
func HashPassword(password string) (string, error) {
	return defaultHasher.Hash(password)
}

// VerifyPassword checks password against any well-formed argon2id hash,
// whatever parameters it was produced with.
func VerifyPassword(encoded, password string) (bool, error) {
	return defaultHasher.Verify(encoded, password)
}

// NeedsRehash reports whether encoded was produced with parameters other
// than DefaultHashParams.
func NeedsRehash(encoded string) bool {
	return defaultHasher.NeedsRehash(encoded)
}

// Hash derives a fresh salted hash.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}

	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)
	return phc{params: h.params, salt: salt, key: key}.String(), nil
}

// Verify recomputes the key with the parameters stored in encoded. A
// malformed hash is a mismatch, not an error.
func (h *PasswordHasher) Verify(encoded, password string) (bool, error) {
	if len(password) > maxPasswordLength {
		return false, nil
	}
	stored, err := parsePHC(encoded)
	if err != nil {
		//nolint:nilerr // a corrupt row must not reveal more than a wrong password
		return false, nil
	}
	p := stored.params
	key := argon2.IDKey([]byte(password), stored.salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	return subtle.ConstantTimeCompare(stored.key, key) == 1, nil
}

// NeedsRehash reports whether encoded is unreadable or uses other costs.
func (h *PasswordHasher) NeedsRehash(encoded string) bool {
	stored, err := parsePHC(encoded)
	if err != nil {
		return true
	}
	return stored.params != h.params
}

// phc is a decoded "$argon2id$v=19$m=..,t=..,p=..$salt$key" string.
type phc struct {
	params HashParams
	salt   []byte
	key    []byte
}

func (p phc) String() string {
	enc := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.params.Memory, p.params.Iterations, p.params.Parallelism,
		enc.EncodeToString(p.salt), enc.EncodeToString(p.key))
}

func parsePHC(encoded string) (phc, error) {
	var out phc
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return out, errMalformedHash
	}
	if fields[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return out, fmt.Errorf("%w: version %q", errMalformedHash, fields[2])
	}
	p := &out.params
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return out, fmt.Errorf("%w: %v", errMalformedHash, err)
	}

	var err error
	if out.salt, err = base64.RawStdEncoding.DecodeString(fields[4]); err != nil {
		return out, fmt.Errorf("%w: salt: %v", errMalformedHash, err)
	}
	if out.key, err = base64.RawStdEncoding.DecodeString(fields[5]); err != nil {
		return out, fmt.Errorf("%w: key: %v", errMalformedHash, err)
	}
	if len(out.key) == 0 {
		return out, errMalformedHash
	}
	p.SaltLength = len(out.salt)
	p.KeyLength = uint32(len(out.key)) //nolint:gosec // bounded by the decoded string
	return out, nil
}
