package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader reads Settings. Zero value is ready to use; the fields are overridable for tests.
type Loader struct {
	// Candidates are tried in order when no explicit file is given.
	Candidates []string
	StateDir   string
}

func NewLoader() *Loader {
	return &Loader{Candidates: configCandidates(), StateDir: stateDir()}
}

// Load reads path, or the first existing candidate when path is empty. An explicit
// path that cannot be read is an error; missing candidates are not.
func (l *Loader) Load(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, l.StateDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	source, err := l.readConfig(v, path)
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	s.Source = source
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (l *Loader) readConfig(v *viper.Viper, path string) (string, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("read config %s: %w", path, err)
		}
		return path, nil
	}
	for _, candidate := range l.Candidates {
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("stat config %s: %w", candidate, err)
		}
		v.SetConfigFile(candidate)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("read config %s: %w", candidate, err)
		}
		return candidate, nil
	}
	return "", nil
}

// Load is NewLoader().Load(path).
func Load(path string) (Settings, error) {
	return NewLoader().Load(path)
}
