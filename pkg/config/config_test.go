package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "1225", cfg.Report.RankingStoreCode)
	assert.Equal(t, "xlsx", cfg.Report.DefaultFormat)
	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
	assert.Equal(t, 50*1024*1024, cfg.HTTP.BodyLimit())
	assert.False(t, cfg.JWT.Enabled())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("REPORT_DEFAULT_FORMAT", "PDF")
	v.Set("REPORT_RANKING_STORE_CODE", "6835")
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "pdf", cfg.Report.DefaultFormat)
	assert.Equal(t, "6835", cfg.Report.RankingStoreCode)
	assert.True(t, cfg.JWT.Enabled())
}

func TestFromViper_Invalid(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"formato desconocido", "REPORT_DEFAULT_FORMAT", "csv"},
		{"puerto no numérico", "HTTP_PORT", "abc"},
		{"límite cero", "HTTP_BODY_LIMIT_MB", "0"},
		{"tienda vacía", "REPORT_RANKING_STORE_CODE", "  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tc.key, tc.val)
			_, err := FromViper(v)
			assert.Error(t, err)
		})
	}
}
