package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
)

// ImageMap maps a post slug (or keyword) to a hero image URL.
type ImageMap map[string]string

// Lookup returns the mapped image for the slug, then for the keyword.
func (m ImageMap) Lookup(slug, keyword string) (string, bool) {
	if m == nil {
		return "", false
	}
	if v, ok := m[slug]; ok && v != "" {
		return v, true
	}
	if v, ok := m[strings.ToLower(strings.TrimSpace(keyword))]; ok && v != "" {
		return v, true
	}
	return "", false
}

// LoadImageMap reads a JSON or YAML object of slug → URL. An empty path
// yields an empty map.
func LoadImageMap(path string) (ImageMap, error) {
	if path == "" {
		return ImageMap{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, serrors.Wrap(err, serrors.CategoryConfig, serrors.SeverityFatal, "failed to read image map").
			WithContext("path", path)
	}
	m := ImageMap{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, serrors.Wrap(err, serrors.CategoryConfig, serrors.SeverityFatal, "invalid image map").
			WithContext("path", path)
	}
	return m, nil
}
