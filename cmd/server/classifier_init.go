// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package main

import (
	"strings"

	"github.com/tomtom215/tressly/internal/classifier"
	"github.com/tomtom215/tressly/internal/config"
	"github.com/tomtom215/tressly/internal/logging"
)

// newClassifier returns nil when classification is disabled.
func newClassifier(cfg *config.ClassifierConfig) *classifier.Client {
	if !cfg.Enabled {
		logging.Info().Msg("Hair-type classifier disabled")
		return nil
	}
	logging.Info().Str("url", cfg.URL).Dur("timeout", cfg.Timeout).Msg("Hair-type classifier enabled")
	return classifier.NewClient(classifier.Config{
		BaseURL:       cfg.URL,
		Timeout:       cfg.Timeout,
		MaxImageBytes: cfg.MaxImageBytes,
		Breaker:       breakerConfig(cfg.Breaker),
	})
}

// buildProfiles layers configured profiles over the built-in ones. A
// configured label replaces the built-in list of the same name.
func buildProfiles(overrides map[string][]string) *classifier.Profiles {
	lists := classifier.DefaultProfiles()
	for label, list := range overrides {
		key := strings.ToLower(strings.TrimSpace(label))
		if key == "" {
			continue
		}
		lists[key] = list
	}
	profiles := classifier.NewProfiles(lists)
	logging.Debug().Strs("profiles", profiles.Names()).Msg("Hair-type profiles loaded")
	return profiles
}
