package configuration_test

import (
	"testing"

	"stream-engage/infrastructure/configuration"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	// Package init has already resolved config and env fallbacks.
	assert.NotZero(t, configuration.C.App.Port)
	assert.NotEmpty(t, configuration.C.Database.Mongo.Host)
	assert.NotEmpty(t, configuration.C.Database.Mongo.Port)
	assert.NotEmpty(t, configuration.C.RedisClient.Host)
	assert.NotEmpty(t, configuration.C.Ivs.Region)
}
