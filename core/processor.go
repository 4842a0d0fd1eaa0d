package core

import (
	"context"
	"time"

	"github.com/rafabd1/LiteFinder/core/detector"
	"github.com/rafabd1/LiteFinder/core/secret"
	"github.com/rafabd1/LiteFinder/output"
	"github.com/rafabd1/LiteFinder/utils"
)

// Fetcher resolves a URL to its text content.
type Fetcher interface {
	GetJSContent(ctx context.Context, url string) (string, error)
}

// Processor runs one fetch, scan and persist cycle.
type Processor struct {
	fetcher  Fetcher
	detector *detector.Detector
	store    *output.Store
	logger   *output.Logger
	now      func() time.Time
}

// Result holds the scan record and what the store did with it.
type Result struct {
	Host    string
	Record  secret.Record
	Persist output.PersistResult
}

func NewProcessor(fetcher Fetcher, det *detector.Detector, store *output.Store, logger *output.Logger) *Processor {
	return &Processor{
		fetcher:  fetcher,
		detector: det,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock replaces the timestamp source used for records.
func (p *Processor) SetClock(now func() time.Time) {
	p.now = now
}

/*
   Fetches url, scans it and merges the findings into the reports of its host.
   A fetch failure aborts before anything is written. Store write failures
   are returned along with the result so the caller can still report the scan.
*/
func (p *Processor) Run(ctx context.Context, url string) (Result, error) {
	host, err := utils.TargetHost(url)
	if err != nil {
		return Result{}, utils.NewError(utils.ConfigError, "invalid target URL", err)
	}
	result := Result{Host: host}

	p.debug("Fetching %s (site %s)", url, utils.RegistrableDomain(host))
	startTime := p.now()

	content, err := p.fetcher.GetJSContent(ctx, url)
	if err != nil {
		return result, err
	}
	p.debug("Fetched %d bytes in %v", len(content), p.now().Sub(startTime))

	result.Record = p.detector.Scan(content, url, p.now())

	persist, err := p.store.MergeAndPersist(ctx, host, result.Record)
	result.Persist = persist
	if err != nil {
		return result, err
	}

	p.debug("%d new finding(s), %d already reported for %s",
		len(persist.NewFindings), persist.Pruned, host)

	return result, nil
}

func (p *Processor) debug(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(format, args...)
	}
}
