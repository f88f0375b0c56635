// Package config holds the CLI's validated runtime configuration: which
// endpoint to talk to, what headers to send, and which saved query (if
// any) to start from.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the fully resolved set of options a run of the tool needs.
type Config struct {
	Endpoint     string            `validate:"required,url"`
	Headers      map[string]string `validate:"omitempty,dive,keys,required,endkeys,required"`
	Insecure     bool
	Timeout      time.Duration `validate:"required,gt=0"`
	QueryName    string `validate:"omitempty,max=128"`
	StorageURL   string `validate:"required"`
	PrintSchema  bool
	Repeat       bool
}

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks c against its struct tags, returning a single combined
// error listing every violated field.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q validation", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// defaultStorageURL places saved queries next to the user's home
// directory config, falling back to the working directory if $HOME is
// unset (e.g. a minimal container).
func defaultStorageURL() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "file://./.gqt?create_dir=true&no_tmp_dir=true"
	}
	return "file://" + home + "/.gqt?create_dir=true&no_tmp_dir=true"
}

// FromEnv builds a Config from GQT_ENDPOINT / GQT_HEADER_* / GQT_INSECURE
// environment variables, letting command-line flags layered on top
// override any of them.
func FromEnv() *Config {
	c := &Config{
		Endpoint:   os.Getenv("GQT_ENDPOINT"),
		Headers:    map[string]string{},
		Timeout:    30 * time.Second,
		StorageURL: defaultStorageURL(),
	}
	if c.StorageURL == "" {
		c.StorageURL = defaultStorageURL()
	}
	const prefix = "GQT_HEADER_"
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, prefix) {
			continue
		}
		parts := strings.SplitN(strings.TrimPrefix(kv, prefix), "=", 2)
		if len(parts) == 2 && parts[0] != "" {
			c.Headers[parts[0]] = parts[1]
		}
	}
	if os.Getenv("GQT_INSECURE") == "1" {
		c.Insecure = true
	}
	return c
}
