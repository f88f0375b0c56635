package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsMissingEndpoint(t *testing.T) {
	c := &Config{Timeout: time.Second, StorageURL: "file:///tmp"}
	err := c.Validate()
	assert.Error(t, err)
}

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	c := &Config{
		Endpoint:   "https://example.com/graphql",
		Timeout:    time.Second,
		StorageURL: "file:///tmp",
	}
	assert.NoError(t, c.Validate())
}

func TestFromEnvReadsHeaders(t *testing.T) {
	t.Setenv("GQT_ENDPOINT", "https://example.com/graphql")
	t.Setenv("GQT_HEADER_Authorization", "Bearer xyz")
	c := FromEnv()
	assert.Equal(t, "https://example.com/graphql", c.Endpoint)
	assert.Equal(t, "Bearer xyz", c.Headers["Authorization"])
}
