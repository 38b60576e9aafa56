package engine

import (
	"context"

	"fairlens/domain/audit"
	"fairlens/domain/core"
	"fairlens/domain/fairness"
	"fairlens/domain/table"
	"fairlens/internal"
	"fairlens/internal/analysis/fairmetrics"
	"fairlens/internal/analysis/groupstats"
)

// Config carries the engine's explicit configuration. There is no ambient
// state: each engine value owns its threshold policy and label semantics.
type Config struct {
	Policy fairness.Policy
	// PredictionColumn, when set, is the basis for selection rates. When
	// empty, selection rates fall back to the label column and the two
	// reported quantities coincide numerically.
	PredictionColumn string
	Logger           *internal.Logger
}

// Engine runs the bias audit over a dataset and a list of protected
// attributes. Analysis is a pure function of its input; an Engine holds no
// per-run state, so concurrent callers may share one.
type Engine struct {
	policy           fairness.Policy
	predictionColumn string
	logger           *internal.Logger
}

// New creates an engine from explicit configuration
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	policy := cfg.Policy
	if policy.Threshold == 0 {
		policy = fairness.DefaultPolicy()
	}
	return &Engine{
		policy:           policy,
		predictionColumn: cfg.PredictionColumn,
		logger:           logger,
	}
}

// Policy returns the engine's threshold policy
func (e *Engine) Policy() fairness.Policy {
	return e.policy
}

// Run audits every protected attribute and assembles one report. Validation
// happens once up front: every missing column is collected into a single
// aggregated schema error so the caller sees the whole problem at once. After
// validation, attribute-level failures are isolated: an attribute with too
// few groups is recorded as degraded and the remaining attributes still run.
func (e *Engine) Run(ctx context.Context, ds *table.Dataset, label table.LabelSpec, attributes []string) (*audit.Report, error) {
	if err := e.validate(ds, label, attributes); err != nil {
		return nil, err
	}

	selectionBasis := label.Column
	if e.predictionColumn != "" {
		selectionBasis = e.predictionColumn
	}

	results := make([]fairness.Result, 0, len(attributes))
	for _, attr := range attributes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, e.auditAttribute(ds, label, attr, selectionBasis))
	}

	return audit.Build(results, audit.Metadata{
		DatasetRows: ds.RowCount(),
		LabelColumn: label.Column,
		Threshold:   e.policy.Threshold,
	}), nil
}

func (e *Engine) validate(ds *table.Dataset, label table.LabelSpec, attributes []string) error {
	if ds.RowCount() == 0 {
		return core.ErrEmptyDataset
	}
	if len(attributes) == 0 {
		return core.ErrNoAttributes
	}

	var missing []string
	if !ds.HasColumn(label.Column) {
		missing = append(missing, label.Column)
	}
	for _, attr := range attributes {
		if !ds.HasColumn(attr) {
			missing = append(missing, attr)
		}
	}
	if e.predictionColumn != "" && !ds.HasColumn(e.predictionColumn) {
		missing = append(missing, e.predictionColumn)
	}
	if len(missing) > 0 {
		return core.NewSchemaError(missing...)
	}

	if err := ds.ValidateLabel(label); err != nil {
		return err
	}
	return nil
}

// auditAttribute runs the per-attribute stage chain: group statistics →
// fairness metrics → threshold classification. Failures degrade the result
// instead of aborting the run.
func (e *Engine) auditAttribute(ds *table.Dataset, label table.LabelSpec, attr, selectionBasis string) fairness.Result {
	result := fairness.Result{Attribute: attr, Status: fairness.StatusOK}

	groups, err := groupstats.Summarize(ds, attr, label)
	if err != nil {
		// Columns were validated up front, so this is unexpected.
		e.logger.Error("group statistics failed for %s: %v", attr, err)
		return degraded(result, err)
	}
	result.Groups = groups

	selectionRates, err := groupstats.SelectionRates(ds, attr, selectionBasis, label.Positive)
	if err != nil {
		e.logger.Error("selection rates failed for %s: %v", attr, err)
		return degraded(result, err)
	}
	result.SelectionRates = selectionRates

	metrics, err := fairmetrics.Compute(groups, selectionRates)
	if err != nil {
		if core.IsInsufficientData(err) {
			e.logger.Warn("attribute %s: %v", attr, err)
		} else {
			e.logger.Error("fairness metrics failed for %s: %v", attr, err)
		}
		return degraded(result, err)
	}
	metrics.Independence = fairmetrics.IndependenceTest(groups)
	result.Metrics = metrics

	verdict, err := e.policy.Classify(metrics.DisparateImpactRatio)
	if err != nil {
		// Defect signal: the ratio escaped its mathematical range. Logged
		// with full context and recorded as degraded, never masked.
		e.logger.Error("invariant violation for %s (ratio=%g, groups=%d): %v",
			attr, metrics.DisparateImpactRatio, len(groups), err)
		return degraded(result, err)
	}
	result.Verdict = verdict

	return result
}

func degraded(result fairness.Result, err error) fairness.Result {
	result.Status = fairness.StatusDegraded
	result.DegradedReason = err.Error()
	return result
}
