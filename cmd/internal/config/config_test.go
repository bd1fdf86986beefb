package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("ok: defaults", func(t *testing.T) {
		t.Setenv("COMMANDS_BASE_URL", "http://localhost:9000/rpc")
		t.Setenv("AWS_COGNITO_REGION", "us-east-2")
		t.Setenv("COGNITO_POOL_ID", "us-east-2_abc")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.HTTPAddr)
		assert.Equal(t, int64(1), cfg.MachineID)
		assert.Equal(t, 15*time.Second, cfg.CommandsTimeout)
		assert.Equal(t, 30*time.Minute, cfg.LessorContextTTL)
		assert.Equal(t, RateSourceMachine, cfg.RateSource)
	})

	t.Run("ok: overrides", func(t *testing.T) {
		t.Setenv("COMMANDS_BASE_URL", "http://localhost:9000/rpc")
		t.Setenv("JWT_SECRET", "local")
		t.Setenv("MACHINE_ID", "7")
		t.Setenv("COMMANDS_TIMEOUT", "2s")
		t.Setenv("RATE_SOURCE", "Remote")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, int64(7), cfg.MachineID)
		assert.Equal(t, 2*time.Second, cfg.CommandsTimeout)
		assert.Equal(t, RateSourceRemote, cfg.RateSource)
	})

	t.Run("err: missing command endpoint", func(t *testing.T) {
		t.Setenv("COMMANDS_BASE_URL", "")
		t.Setenv("JWT_SECRET", "local")

		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("err: bad duration", func(t *testing.T) {
		t.Setenv("COMMANDS_BASE_URL", "http://localhost:9000/rpc")
		t.Setenv("JWT_SECRET", "local")
		t.Setenv("LESSOR_CONTEXT_TTL", "soon")

		_, err := FromEnv()
		assert.Error(t, err)
	})
}
