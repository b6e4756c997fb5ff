package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c := Load()
	require.Equal(t, ":8080", c.HTTPAddr)
	require.Equal(t, 15*time.Minute, c.CacheTTL())
	require.Equal(t, 24*time.Hour, c.JWTTTL)
	require.Equal(t, 8, c.SeedWorkers)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("RATE_LIMIT_RPS", "5")
	c := Load()
	require.Equal(t, ":9999", c.HTTPAddr)
	require.Equal(t, 30*time.Second, c.CacheTTL())
	require.Equal(t, 5.0, c.RateRPS)
}
