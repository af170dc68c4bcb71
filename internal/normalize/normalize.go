// Package normalize maps free-text location labels to canonical room codes.
package normalize

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"equiptrack/internal/models"

	"gopkg.in/yaml.v3"
)

var (
	roomCodePattern = regexp.MustCompile(`(?i)K(\d{4})([A-Z])?`)
	bareDigits      = regexp.MustCompile(`\b(\d{4})\b`)
	storagePattern  = regexp.MustCompile(`(?i)(storage|stor\b|store\s*room|equip(ment)?\s*(room|bay)|supply|clean\s*utility|soiled\s*utility|alcove)`)
	spaces          = regexp.MustCompile(`\s+`)
)

// defaultAliases covers site names that never carry a room code.
var defaultAliases = map[string]string{
	"EMERGENCY DEPARTMENT":            "K1001",
	"ED TRIAGE":                       "K1002",
	"INTENSIVE CARE UNIT":             "K2100",
	"ICU NURSES STATION":              "K2101",
	"MEDICAL SURGICAL NURSES STATION": "K3100",
	"CARDIAC CATH LAB":                "K2300",
	"OPERATING ROOM SUITE":            "K2200",
	"POST ANESTHESIA CARE UNIT":       "K2210",
	"RADIOLOGY":                       "K1400",
	"CENTRAL STERILE SUPPLY":          "K0100",
	"BIOMED SHOP":                     "K0120",
	"MAIN EQUIPMENT STORAGE":          "K0110",
	"LABOR AND DELIVERY":              "K4100",
	"PEDIATRICS NURSES STATION":       "K4200",
}

// UnknownSet accumulates raw labels that could not be resolved during one import run.
type UnknownSet struct {
	mu     sync.Mutex
	labels map[string]struct{}
}

func NewUnknownSet() *UnknownSet {
	return &UnknownSet{labels: make(map[string]struct{})}
}

func (u *UnknownSet) Add(label string) {
	u.mu.Lock()
	u.labels[label] = struct{}{}
	u.mu.Unlock()
}

func (u *UnknownSet) Contains(label string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.labels[label]
	return ok
}

// Labels returns the recorded labels sorted.
func (u *UnknownSet) Labels() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, 0, len(u.labels))
	for l := range u.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func (u *UnknownSet) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.labels)
}

type Normalizer struct {
	aliases map[string]string
}

// New returns a normalizer with the built-in alias table extended by extra.
func New(extra map[string]string) *Normalizer {
	aliases := make(map[string]string, len(defaultAliases)+len(extra))
	for k, v := range defaultAliases {
		aliases[aliasKey(k)] = v
	}
	for k, v := range extra {
		aliases[aliasKey(k)] = strings.ToUpper(strings.TrimSpace(v))
	}
	return &Normalizer{aliases: aliases}
}

// LoadAliases reads an alias table (label: room code) from a YAML file.
// An empty path or missing file yields no extra aliases.
func LoadAliases(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read alias file: %w", err)
	}
	var aliases map[string]string
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("failed to parse alias file: %w", err)
	}
	return aliases, nil
}

// Normalize resolves a room code from the device and location labels.
// Code-like signals win over the alias table; unresolved labels are recorded
// in unknown and map to models.UnknownLocation.
func (n *Normalizer) Normalize(deviceLabel, rawLocation string, unknown *UnknownSet) string {
	for _, s := range []string{rawLocation, deviceLabel} {
		if m := roomCodePattern.FindStringSubmatch(s); m != nil {
			return "K" + m[1] + strings.ToUpper(m[2])
		}
	}
	for _, s := range []string{rawLocation, deviceLabel} {
		if m := bareDigits.FindStringSubmatch(s); m != nil {
			return "K" + m[1]
		}
	}
	if code, ok := n.aliases[aliasKey(rawLocation)]; ok {
		return code
	}
	if unknown != nil {
		unknown.Add(rawLocation)
	}
	return models.UnknownLocation
}

// IsStorageName reports whether a room id or display name denotes a storage area.
func IsStorageName(name string) bool {
	return storagePattern.MatchString(name)
}

func aliasKey(s string) string {
	return spaces.ReplaceAllString(strings.ToUpper(strings.TrimSpace(s)), " ")
}
