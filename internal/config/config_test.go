package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("FIREBASE_PROJECT_ID", "quiz-show")
	t.Setenv("TEAM_RESULT_DELAY_MS", "3000")
	t.Setenv("PORT", "9090")

	cfg := Load()
	assert.True(t, cfg.Local())
	assert.Equal(t, "quiz-show", cfg.ProjectID)
	assert.Equal(t, 3000, cfg.TeamResultDelayMS)
	assert.Equal(t, Default().StepperStepMS, cfg.StepperStepMS)
	assert.Equal(t, 3*time.Second, cfg.TeamResultDelay())
	assert.Equal(t, ":9090", cfg.Addr())
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadDurations(t *testing.T) {
	tests := []struct {
		name  string
		delay string
		step  string
		want  []string
	}{
		{"negative delay", "-5", "900", []string{"TEAM_RESULT_DELAY_MS is invalid", "-5"}},
		{"unparsable step", "4000", "abc", []string{`STEPPER_STEP_MS must be an integer, got "abc"`}},
		{"zero step", "0", "0", []string{"STEPPER_STEP_MS is invalid"}},
		{"both", "-5", "abc", []string{"TEAM_RESULT_DELAY_MS is invalid", "STEPPER_STEP_MS must be an integer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", "local")
			t.Setenv("FIREBASE_PROJECT_ID", "quiz-show")
			t.Setenv("TEAM_RESULT_DELAY_MS", tt.delay)
			t.Setenv("STEPPER_STEP_MS", tt.step)

			err := Load().Validate()
			require.Error(t, err)
			for _, want := range tt.want {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestValidateProductionRequiresConnection(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIREBASE_DATABASE_URL is not set")
	assert.Contains(t, err.Error(), "FIREBASE_PROJECT_ID is not set")
	assert.Contains(t, err.Error(), "FIREBASE_API_KEY is not set")
}

func TestValidateProductionComplete(t *testing.T) {
	cfg := Default()
	cfg.DatabaseURL = "https://quiz-show-default-rtdb.firebaseio.com"
	cfg.ProjectID = "quiz-show"
	cfg.APIKey = "key"
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownEnv(t *testing.T) {
	cfg := Default()
	cfg.Env = "staging"
	cfg.ProjectID = "quiz-show"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ENV must be one of")
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FIREBASE_PROJECT_ID=from-file\nPRIZE_LOCALE=en-US\n"), 0o600))
	t.Setenv("FIREBASE_PROJECT_ID", "from-env")
	t.Setenv("PRIZE_LOCALE", "")
	os.Unsetenv("PRIZE_LOCALE")

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv("PRIZE_LOCALE") })
	assert.Equal(t, "from-env", os.Getenv("FIREBASE_PROJECT_ID"))
	assert.Equal(t, "en-US", os.Getenv("PRIZE_LOCALE"))
}
