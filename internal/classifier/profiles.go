// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package classifier

import (
	"sort"
	"strings"

	"github.com/tomtom215/tressly/internal/ingredients"
)

// DefaultProfile is used for labels with no configured profile.
const DefaultProfile = "default"

// DefaultProfiles returns the built-in beneficial ingredient lists per hair
// type. The classifier's labels are curly, straight, wavy and kinky.
func DefaultProfiles() map[string][]string {
	return map[string][]string{
		"curly": {
			"shea butter", "coconut oil", "glycerin", "aloe vera", "argan oil", "jojoba oil",
		},
		"straight": {
			"hydrolyzed keratin", "panthenol", "argan oil", "niacinamide", "hydrolyzed silk",
		},
		"wavy": {
			"aloe vera", "argan oil", "panthenol", "glycerin", "hydrolyzed wheat protein",
		},
		"kinky": {
			"shea butter", "castor oil", "coconut oil", "glycerin", "jojoba oil", "mango butter",
		},
		DefaultProfile: {
			"glycerin", "panthenol", "argan oil", "aloe vera",
		},
	}
}

// Profiles resolves hair-type labels to beneficial ingredient sets.
// It implements session.ProfileResolver and is read-only after construction.
type Profiles struct {
	sets map[string]ingredients.Set
}

// NewProfiles builds a resolver from label → ingredient lists. Labels are
// matched case-insensitively. A missing default profile falls back to the
// built-in one.
func NewProfiles(lists map[string][]string) *Profiles {
	p := &Profiles{sets: make(map[string]ingredients.Set, len(lists)+1)}
	for name, list := range lists {
		key := normalizeLabel(name)
		if key == "" {
			continue
		}
		p.sets[key] = ingredients.NewSet(list)
	}
	if _, ok := p.sets[DefaultProfile]; !ok {
		p.sets[DefaultProfile] = ingredients.NewSet(DefaultProfiles()[DefaultProfile])
	}
	return p
}

// Resolve returns the canonical profile name and its beneficial set.
// Unknown labels resolve to the default profile.
func (p *Profiles) Resolve(profile string) (string, ingredients.Set) {
	key := normalizeLabel(profile)
	if set, ok := p.sets[key]; ok {
		return key, set
	}
	return DefaultProfile, p.sets[DefaultProfile]
}

// Names returns the configured profile names in sorted order.
func (p *Profiles) Names() []string {
	names := make([]string, 0, len(p.sets))
	for name := range p.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolvePrediction picks the profile for a classifier result.
func (p *Profiles) ResolvePrediction(pred Prediction) (string, ingredients.Set) {
	label, _, ok := pred.Top()
	if !ok {
		return p.Resolve(DefaultProfile)
	}
	return p.Resolve(label)
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
