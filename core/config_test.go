package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	wd := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(wd, "config"), 0o755))
	yaml := "college:\n  name: Test College\ndatabase:\n  engine: SQLITE\n  path: db/test.db\n"
	require.NoError(t, os.WriteFile(filepath.Join(wd, "config", "sdms.yaml"), []byte(yaml), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(wd, "config", ".env.test"), []byte("TEST_MARKS_ALLOWBONUS=true\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("TEST_MARKS_ALLOWBONUS") })

	t.Setenv("ENV", "test")
	t.Setenv("TEST_WORKDIR", wd)
	t.Setenv("TEST_SERVER_PORT", "9000")

	conf, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.Equal(t, wd, conf.WorkDir)
	assert.Equal(t, "Test College", conf.College.Name)
	assert.Equal(t, "INR", conf.College.Currency)
	assert.Equal(t, "sqlite", conf.Database.Engine)
	assert.Equal(t, filepath.Join(wd, "db", "test.db"), conf.Path(conf.Database.Path))
	assert.Equal(t, "127.0.0.1:9000", conf.Server.Address())
	assert.Equal(t, 8*time.Hour, conf.Server.JWTExpirationDelta)
	assert.True(t, conf.AllowBonusMarks)
}

func TestConfig_Path(t *testing.T) {
	conf := &Config{WorkDir: "/srv/sdms"}
	assert.Equal(t, "/srv/sdms/assets/logo.png", conf.Path("assets/logo.png"))
	assert.Equal(t, "/tmp/logo.png", conf.Path("/tmp/logo.png"))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Asha", CleanString("  Asha\t"))
	assert.Equal(t, "asha@test.in", CleanString(" Asha@Test.in ", true))
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantOK  bool
		wantErr bool
	}{
		{in: "", wantOK: false},
		{in: "  ", wantOK: false},
		{in: " 85.5 ", want: 85.5, wantOK: true},
		{in: "eighty", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, ok, err := ParseFloat(tt.in)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, f)
		})
	}
}
