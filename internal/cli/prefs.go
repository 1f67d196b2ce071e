package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// modelPrefsFile returns the path of the handle->model preference file.
func modelPrefsFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(configDir, "personafy", "model_prefs.yaml"), nil
}

// loadModelPrefs loads the handle->"provider/model" mapping from disk. It
// returns an empty map if the file does not exist.
func loadModelPrefs() (map[string]string, error) {
	path, err := modelPrefsFile()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	mapping := make(map[string]string)
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}

// setModelPref remembers the provider and model chosen for a handle.
func setModelPref(handle, provider, model string) error {
	path, err := modelPrefsFile()
	if err != nil {
		return err
	}
	mapping, err := loadModelPrefs()
	if err != nil {
		return err
	}
	mapping[handle] = provider + "/" + model
	data, err := yaml.Marshal(mapping)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// unsetModelPref removes a handle from the preference file, deleting the
// file when it becomes empty.
func unsetModelPref(handle string) error {
	path, err := modelPrefsFile()
	if err != nil {
		return err
	}

	mapping, err := loadModelPrefs()
	if err != nil {
		return err
	}

	delete(mapping, handle)

	if len(mapping) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	data, err := yaml.Marshal(mapping)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// modelPrefFor looks up the remembered provider and model for a handle.
func modelPrefFor(handle string) (provider, model string, ok bool) {
	mapping, err := loadModelPrefs()
	if err != nil {
		return "", "", false
	}
	value, found := mapping[handle]
	if !found {
		return "", "", false
	}
	provider, model, ok = strings.Cut(value, "/")
	if !ok || provider == "" || model == "" {
		return "", "", false
	}
	return provider, model, true
}
