package services

import (
	cryptorand "crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/viper"
	"golang.org/x/crypto/argon2"
)

// Argon2Params configures password hashing.
type Argon2Params struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength uint32
}

// Argon2ParamsFromConfig reads the argon2.* keys, falling back to the
// OWASP-recommended argon2id baseline.
func Argon2ParamsFromConfig() Argon2Params {
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)

	return Argon2Params{
		Time:       uint32(viper.GetInt("argon2.time")),
		Memory:     uint32(viper.GetInt("argon2.memory")),
		Threads:    uint8(viper.GetInt("argon2.threads")),
		KeyLength:  uint32(viper.GetInt("argon2.key_length")),
		SaltLength: uint32(viper.GetInt("argon2.salt_length")),
	}
}

// hashPassword returns "<salt>$<hash>", both base64 encoded.
func hashPassword(password string, p Argon2Params) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLength)
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}
