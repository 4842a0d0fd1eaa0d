package detector

import (
	"sync"
	"time"

	"github.com/rafabd1/LiteFinder/core/patterns"
	"github.com/rafabd1/LiteFinder/core/secret"
	"github.com/rafabd1/LiteFinder/output"
	"github.com/rafabd1/LiteFinder/utils"
)

type Detector struct {
	patternManager *patterns.PatternManager
	logger         *output.Logger
	mu             sync.Mutex
	stats          Stats
}

type Stats struct {
	ContentProcessed int
	RawMatches       int
	Discarded        int
	FindingsEmitted  int
}

func NewDetector(patternManager *patterns.PatternManager, logger *output.Logger) *Detector {
	return &Detector{
		patternManager: patternManager,
		logger:         logger,
	}
}

/*
   Applies every pattern to text in catalog order and assembles the record
   for url. Matches are deduplicated per pattern, keeping first-seen order,
   then decoded; matches that fail to decode are dropped. Overlaps between
   different patterns are kept.
*/
func (d *Detector) Scan(text, url string, ts time.Time) secret.Record {
	record := secret.NewRecord(url, ts)

	var rawMatches, discarded int

	for _, pattern := range d.patternManager.GetCompiledPatterns() {
		for _, match := range uniqueMatches(pattern, text) {
			rawMatches++

			value, err := pattern.Decode(match)
			if err != nil {
				discarded++
				if d.logger != nil {
					d.logger.Debug("Discarded %s match %q: %v", pattern.Name, utils.TruncateString(match, 60), err)
				}
				continue
			}

			record.Add(secret.Finding{Type: pattern.Name, Value: value})
		}
	}

	d.mu.Lock()
	d.stats.ContentProcessed++
	d.stats.RawMatches += rawMatches
	d.stats.Discarded += discarded
	d.stats.FindingsEmitted += len(record.Findings)
	d.mu.Unlock()

	if d.logger != nil {
		d.logger.Debug("Scanned %d bytes from %s: %d raw matches, %d discarded",
			len(text), url, rawMatches, discarded)
	}

	return record
}

func uniqueMatches(pattern *patterns.CompiledPattern, text string) []string {
	matches := pattern.Regex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	unique := make([]string, 0, len(matches))
	for _, match := range matches {
		value := pattern.Submatch(match)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		unique = append(unique, value)
	}
	return unique
}

func (d *Detector) GetStats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}
