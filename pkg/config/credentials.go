package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// environment variable names carrying login credentials.
const (
	EnvEmail    = "EMAIL"
	EnvPassword = "PASS"
	EnvServer   = "SERVER"
)

// Credentials hold the login identity read from the environment.
// values are never persisted and must never reach a log line unmasked.
type Credentials struct {
	Email    string
	Password string
	Server   string // optional
}

// LoadEnvFile loads variables from a dotenv file into the process environment.
// existing variables win over the file. a missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("check env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// CredentialsFromEnv reads credentials using lookup (os.LookupEnv when nil).
func CredentialsFromEnv(lookup func(string) (string, bool)) Credentials {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	// values go to the form as typed, only a blank value counts as unset
	get := func(key string) string {
		v, _ := lookup(key)
		if strings.TrimSpace(v) == "" {
			return ""
		}
		return v
	}
	return Credentials{Email: get(EnvEmail), Password: get(EnvPassword), Server: get(EnvServer)}
}

// Missing returns names of required variables (EMAIL, PASS) that are empty.
func (c Credentials) Missing() []string {
	var res []string
	if c.Email == "" {
		res = append(res, EnvEmail)
	}
	if c.Password == "" {
		res = append(res, EnvPassword)
	}
	return res
}

// Secrets returns the non-empty values that must be masked in logs.
func (c Credentials) Secrets() []string {
	var res []string
	for _, v := range []string{c.Email, c.Password, c.Server} {
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}
