package accounts

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/benchauth/internal/common"
	"golang.org/x/crypto/argon2"
)

// Encoder turns a plaintext password into the stored credential and checks
// candidates against it.
type Encoder interface {
	Encode(password string) (string, error)
	Verify(password, encoded string) bool
}

// Scheme names accepted by EncoderFor.
const (
	SchemeLegacy   = "legacy"
	SchemeArgon2id = "argon2id"
)

// EncoderFor returns the encoder registered under scheme.
func EncoderFor(scheme string) (Encoder, error) {
	switch strings.ToLower(scheme) {
	case "", SchemeLegacy:
		return LegacyEncoder{}, nil
	case SchemeArgon2id:
		return NewArgon2Encoder(), nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", scheme)
	}
}

const legacySalt = "salt"

// LegacyEncoder is base64(password + "salt").
//
// WARNING: this is a reversible encoding, not a hash. Anyone who can read the
// store can recover every password. It exists only so that stores written by
// the original web client keep working; use Argon2Encoder for anything else.
type LegacyEncoder struct{}

var _ Encoder = LegacyEncoder{}

func (LegacyEncoder) Encode(password string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(password + legacySalt)), nil
}

func (e LegacyEncoder) Verify(password, encoded string) bool {
	candidate, _ := e.Encode(password)
	return candidate == encoded
}

// Argon2Encoder stores "$argon2id$v=19$m=..,t=..,p=..$<salt>$<key>" with a
// random salt per credential.
type Argon2Encoder struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var _ Encoder = (*Argon2Encoder)(nil)

// NewArgon2Encoder uses the OWASP-recommended argon2id baseline.
func NewArgon2Encoder() *Argon2Encoder {
	return &Argon2Encoder{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (a *Argon2Encoder) Encode(password string) (string, error) {
	salt := common.GenerateRandByteArray(int(a.SaltLength))
	key := argon2.IDKey([]byte(password), salt, a.Iterations, a.Memory, a.Parallelism, a.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.Memory,
		a.Iterations,
		a.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify returns false for any malformed encoding.
func (a *Argon2Encoder) Verify(password, encoded string) bool {
	params, salt, key, err := decodeArgon2(encoded)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// Upper bounds for parameters read back from stored credentials, so a
// corrupted record cannot make Verify allocate without limit.
const (
	maxArgon2Memory      = 1 << 21 // KiB, 2 GiB
	maxArgon2Iterations  = 16
	maxArgon2Parallelism = 255
	maxArgon2KeyLength   = 1024
)

func decodeArgon2(encoded string) (*Argon2Encoder, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, nil, errors.New("invalid argon2id encoding")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	params := &Argon2Encoder{}
	var p uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &p); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.Iterations == 0 || p == 0 {
		return nil, nil, nil, errors.New("invalid parameters: zero cost")
	}
	if params.Memory > maxArgon2Memory || params.Iterations > maxArgon2Iterations || p > maxArgon2Parallelism {
		return nil, nil, nil, errors.New("invalid parameters: cost out of range")
	}
	params.Parallelism = uint8(p)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid key encoding: %w", err)
	}
	if len(key) == 0 || len(key) > maxArgon2KeyLength {
		return nil, nil, nil, errors.New("invalid key length")
	}
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}
