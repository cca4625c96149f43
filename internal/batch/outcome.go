package batch

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/simplesurance/upstream-updater/internal/githubclt"
	"github.com/simplesurance/upstream-updater/internal/pipeline"
	"github.com/simplesurance/upstream-updater/internal/stringutils"
	"github.com/simplesurance/upstream-updater/internal/version"
)

// Status is the result of processing a repository.
type Status string

const (
	StatusUpdated           Status = "updated"
	StatusUpToDate          Status = "up-to-date"
	StatusSkippedNoConfig   Status = "skipped-no-config"
	StatusSkippedNoUpstream Status = "skipped-no-upstream"
	StatusFailed            Status = "failed"
)

var statuses = []Status{
	StatusUpdated,
	StatusUpToDate,
	StatusSkippedNoConfig,
	StatusSkippedNoUpstream,
	StatusFailed,
}

// Steps that are reported for failures that did not happen in the update
// pipeline.
const (
	StepResolve    pipeline.Step = "resolve"
	StepUnexpected pipeline.Step = "unexpected"
)

// Outcome is the result of processing a single repository.
type Outcome struct {
	Repository *githubclt.Repository
	// Upstream is nil if the upstream repository was not determined.
	Upstream *githubclt.Repository
	Status   Status
	// FailedStep is only set if Status is StatusFailed.
	FailedStep pipeline.Step
	// Version is the version the repository was updated to when Status
	// is StatusUpdated and the current version when it is
	// StatusUpToDate, otherwise it is nil.
	Version *version.Version
	Err     error
}

func (o *Outcome) String() string {
	if o.Status == StatusFailed {
		return fmt.Sprintf("%s: %s at step %s", o.Repository, o.Status, o.FailedStep)
	}

	return fmt.Sprintf("%s: %s", o.Repository, o.Status)
}

// Report contains the outcomes of a batch run, in processing order.
type Report struct {
	StartTime time.Time
	EndTime   time.Time
	Outcomes  []*Outcome
}

// Count returns the number of outcomes with status s.
func (r *Report) Count(s Status) int {
	var cnt int

	for _, o := range r.Outcomes {
		if o.Status == s {
			cnt++
		}
	}

	return cnt
}

// HasFailures returns true if the processing of at least 1 repository failed.
func (r *Report) HasFailures() bool {
	return r.Count(StatusFailed) > 0
}

func (r *Report) LogFields() []zap.Field {
	fields := []zap.Field{
		zap.Duration("batch.duration", r.EndTime.Sub(r.StartTime)),
		zap.Int("batch.repositories", len(r.Outcomes)),
	}

	for _, s := range statuses {
		fields = append(fields, zap.Int("batch."+strings.ReplaceAll(string(s), "-", "_"), r.Count(s)))
	}

	return fields
}

const maxErrLen = 512

// String returns a table of all outcomes.
func (r *Report) String() string {
	var sb strings.Builder

	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REPOSITORY\tUPSTREAM\tSTATUS\tSTEP\tVERSION")

	for _, o := range r.Outcomes {
		upstream := "-"
		if o.Upstream != nil {
			upstream = o.Upstream.String()
		}

		step := "-"
		if o.FailedStep != "" {
			step = string(o.FailedStep)
		}

		ver := "-"
		if o.Version != nil {
			ver = o.Version.String()
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", o.Repository, upstream, o.Status, step, ver)
	}

	_ = tw.Flush()

	var errs strings.Builder
	for _, o := range r.Outcomes {
		if o.Status != StatusFailed || o.Err == nil {
			continue
		}

		fmt.Fprintf(&errs, "%s:\n%s\n", o.Repository, stringutils.IndentString(stringutils.Truncate(o.Err.Error(), maxErrLen), "  "))
	}

	if errs.Len() > 0 {
		sb.WriteString("\nErrors:\n")
		sb.WriteString(errs.String())
	}

	return sb.String()
}
