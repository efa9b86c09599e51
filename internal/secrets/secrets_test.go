// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Shashikant999/AstraNode/internal/logging"
	"github.com/Shashikant999/AstraNode/pkg/types"
)

// noEnv isolates key resolution from the test process environment.
func noEnv(string) string { return "" }

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  []string
	}{
		{
			name: "reads recognized key files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, GeminiAPIKey, "  gk_abc123  \n")
				writeFile(t, dir, OpenAIAPIKey, "sk_xyz789")
				return dir
			},
			want: []string{GeminiAPIKey, OpenAIAPIKey},
		},
		{
			name: "missing directory yields no keys",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: []string{},
		},
		{
			name: "ignores unrelated files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, AnthropicAPIKey, "ak_123")
				writeFile(t, dir, "patentsview-api-key", "pk_abc")
				writeFile(t, dir, ".gitkeep", "")
				return dir
			},
			want: []string{AnthropicAPIKey},
		},
		{
			name: "skips empty key files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, GeminiAPIKey, "   \n\t ")
				return dir
			},
			want: []string{},
		},
		{
			name: "a directory named like a key is skipped",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				require.NoError(t, os.Mkdir(filepath.Join(dir, OpenAIAPIKey), 0o755))
				return dir
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Load(tt.setup(t), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k.Names())
		})
	}
}

func TestProviderKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, GeminiAPIKey, "gk_file\n")
	writeFile(t, dir, AnthropicAPIKey, "ak_file")
	k, err := Load(dir, nil)
	require.NoError(t, err)

	env := map[string]string{"ANTHROPIC_API_KEY": " ak_env ", "GOOGLE_API_KEY": ""}
	k.getenv = func(name string) string { return env[name] }

	tests := []struct {
		provider types.BackendProvider
		want     string
	}{
		{types.ProviderGemini, "gk_file"},
		{"GEMINI", "gk_file"},
		{types.ProviderClaude, "ak_env"},
		{types.ProviderOpenAI, ""},
		{types.ProviderOllama, ""},
		{types.ProviderNone, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			assert.Equal(t, tt.want, k.ProviderKey(tt.provider))
		})
	}
}

func TestProviderKey_EnvOrder(t *testing.T) {
	env := map[string]string{"GEMINI_API_KEY": "primary", "GOOGLE_API_KEY": "secondary"}
	k := &Keys{getenv: func(name string) string { return env[name] }}
	assert.Equal(t, "primary", k.ProviderKey(types.ProviderGemini))

	delete(env, "GEMINI_API_KEY")
	assert.Equal(t, "secondary", k.ProviderKey(types.ProviderGemini))
}

func TestProviderKey_NilKeysUsesEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk_env")
	var k *Keys
	assert.Equal(t, "sk_env", k.ProviderKey(types.ProviderOpenAI))
	assert.Empty(t, k.Names())
}

func TestLoad_UnreadableFileIsLogged(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	dir := t.TempDir()
	writeFile(t, dir, OpenAIAPIKey, "sk_ok")

	badPath := filepath.Join(dir, GeminiAPIKey)
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	core, logs := observer.New(zapcore.WarnLevel)
	k, err := Load(dir, logging.FromZap(zap.New(core)))
	require.NoError(t, err)
	k.getenv = noEnv

	assert.Equal(t, "sk_ok", k.ProviderKey(types.ProviderOpenAI))
	assert.Empty(t, k.ProviderKey(types.ProviderGemini))
	assert.Equal(t, 1, logs.FilterMessage("could not read secret").Len())
}

func TestLoad_EmptyFileIsLogged(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, AnthropicAPIKey, "\n")

	core, logs := observer.New(zapcore.WarnLevel)
	_, err := Load(dir, logging.FromZap(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("secret file is empty").Len())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
