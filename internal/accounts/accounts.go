// Package accounts reads the tracked-account list. The file format is a JSON
// array of objects keyed the way older datasets already on disk expect:
//
//	[{"SUMMONERS_NAME": "ScanVisor", "TAG": "EUW", "REGION": "europe"}]
package accounts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type Entry struct {
	GameName string `json:"SUMMONERS_NAME"`
	TagLine  string `json:"TAG"`
	Region   string `json:"REGION"`
}

// RiotID returns the display identity, e.g. "ScanVisor#EUW".
func (e Entry) RiotID() string {
	return e.GameName + "#" + e.TagLine
}

var validRegions = map[string]struct{}{
	"americas": {},
	"asia":     {},
	"europe":   {},
	"sea":      {},
}

func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read account list: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse account list %s: %w", path, err)
	}

	for i, e := range entries {
		if e.GameName == "" || e.TagLine == "" {
			return nil, fmt.Errorf("account list entry %d is missing SUMMONERS_NAME or TAG", i)
		}
		region := strings.ToLower(e.Region)
		if _, ok := validRegions[region]; !ok {
			return nil, fmt.Errorf("account list entry %s has unknown REGION %q", e.RiotID(), e.Region)
		}
		entries[i].Region = region
	}

	return entries, nil
}
