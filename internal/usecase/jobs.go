package usecase

import (
	"context"
	"time"

	"alphahunter/internal/ports"
)

// Job names as they appear in logs and retry bookkeeping.
const (
	JobDaily   = "daily_scan"
	JobMidTerm = "mid_term_scan"
	JobWeekly  = "weekly_research"
	JobMonthly = "monthly_alpha"
	JobScour   = "scour"
)

// Cadence labels stored with each sighting and shown on alerts.
const (
	CadenceDaily   = "daily"
	CadenceMidTerm = "mid_term"
	CadenceWeekly  = "weekly"
	CadenceMonthly = "monthly"
	CadenceScour   = "scour"
)

// ScanJob binds a named cadence to the source it drains.
type ScanJob struct {
	Name     string
	Cadence  string
	Interval time.Duration
	Source   ports.Source
}

// CatalogSources carries one source per scheduled cadence. A nil source
// leaves its slot out of the catalog.
type CatalogSources struct {
	Daily   ports.Source
	MidTerm ports.Source
	Weekly  ports.Source
	Monthly ports.Source
}

// CatalogIntervals carries the tick interval per scheduled cadence.
type CatalogIntervals struct {
	Daily   time.Duration
	MidTerm time.Duration
	Weekly  time.Duration
	Monthly time.Duration
}

// Catalog builds the standard four scheduled scans.
func Catalog(sources CatalogSources, intervals CatalogIntervals) []ScanJob {
	jobs := make([]ScanJob, 0, 4)
	if sources.Daily != nil {
		jobs = append(jobs, ScanJob{Name: JobDaily, Cadence: CadenceDaily, Interval: intervals.Daily, Source: sources.Daily})
	}
	if sources.MidTerm != nil {
		jobs = append(jobs, ScanJob{Name: JobMidTerm, Cadence: CadenceMidTerm, Interval: intervals.MidTerm, Source: sources.MidTerm})
	}
	if sources.Weekly != nil {
		jobs = append(jobs, ScanJob{Name: JobWeekly, Cadence: CadenceWeekly, Interval: intervals.Weekly, Source: sources.Weekly})
	}
	if sources.Monthly != nil {
		jobs = append(jobs, ScanJob{Name: JobMonthly, Cadence: CadenceMonthly, Interval: intervals.Monthly, Source: sources.Monthly})
	}
	return jobs
}

// Register puts every catalog job on the scheduler as a recurring scan.
func (r *Runner) Register(jobs []ScanJob) {
	if r.scheduler == nil {
		return
	}
	for _, job := range jobs {
		job := job
		r.scheduler.Every(job.Name, job.Interval, func(ctx context.Context) {
			r.Scan(ctx, job)
		})
	}
}

// RegisterScour puts the aggressive loop on the scheduler.
func (r *Runner) RegisterScour(interval time.Duration, source ports.Source) {
	if r.scheduler == nil || source == nil {
		return
	}
	job := ScanJob{Name: JobScour, Cadence: CadenceScour, Interval: interval, Source: source}
	r.scheduler.Every(job.Name, job.Interval, func(ctx context.Context) {
		r.Scour(ctx, job)
	})
}
