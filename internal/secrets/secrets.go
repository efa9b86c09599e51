// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves generation backend API keys. A key comes from the
// provider's environment variable when set, otherwise from a key file in the
// secrets directory: the filename names the key and the trimmed contents are
// the value.
//
// Recognized key files: gemini-api-key, anthropic-api-key, openai-api-key.
package secrets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Shashikant999/AstraNode/internal/logging"
	"github.com/Shashikant999/AstraNode/pkg/types"
)

// Key file names.
const (
	GeminiAPIKey    = "gemini-api-key"
	AnthropicAPIKey = "anthropic-api-key"
	OpenAIAPIKey    = "openai-api-key"
)

// providerKey says where a provider's key may be found, in lookup order.
type providerKey struct {
	env  []string
	file string
}

var providerKeys = map[types.BackendProvider]providerKey{
	types.ProviderGemini: {env: []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}, file: GeminiAPIKey},
	types.ProviderClaude: {env: []string{"ANTHROPIC_API_KEY"}, file: AnthropicAPIKey},
	types.ProviderOpenAI: {env: []string{"OPENAI_API_KEY"}, file: OpenAIAPIKey},
}

// Keys holds the key files read from a secrets directory. The zero value and
// a nil *Keys resolve from the environment only.
type Keys struct {
	files  map[string]string
	getenv func(string) string
}

// Load reads the recognized key files from dir. A missing directory or key
// file is not an error. Unreadable or empty files are logged and skipped, and
// other files in the directory are ignored.
func Load(dir string, log logging.Logger) (*Keys, error) {
	if log == nil {
		log = logging.NewNop()
	}
	k := &Keys{files: make(map[string]string)}

	for _, name := range keyFiles() {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			log.Warn("could not read secret", logging.String("name", name), logging.Error(err))
			continue
		}
		value := strings.TrimSpace(string(data))
		if value == "" {
			log.Warn("secret file is empty", logging.String("name", name))
			continue
		}
		k.files[name] = value
	}
	return k, nil
}

// keyFiles returns the recognized key file names in sorted order.
func keyFiles() []string {
	names := make([]string, 0, len(providerKeys))
	for _, pk := range providerKeys {
		names = append(names, pk.file)
	}
	sort.Strings(names)
	return names
}

// Names returns the loaded key file names, sorted.
func (k *Keys) Names() []string {
	if k == nil {
		return nil
	}
	names := make([]string, 0, len(k.files))
	for name := range k.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProviderKey returns the API key for provider p, or "" when none is set.
// Providers without keys (ollama, none) always return "".
func (k *Keys) ProviderKey(p types.BackendProvider) string {
	pk, ok := providerKeys[types.BackendProvider(strings.ToLower(string(p)))]
	if !ok {
		return ""
	}
	getenv := os.Getenv
	if k != nil && k.getenv != nil {
		getenv = k.getenv
	}
	for _, name := range pk.env {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v
		}
	}
	if k == nil {
		return ""
	}
	return k.files[pk.file]
}
