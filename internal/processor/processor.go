package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"lectern/internal/config"
	"lectern/internal/fileutil"
	"lectern/internal/journal"
	"lectern/internal/logging"
	"lectern/internal/media/probe"
	"lectern/internal/metadata"
	"lectern/internal/runlock"
	"lectern/internal/services"
	"lectern/internal/services/sox"
	"lectern/internal/tags"
)

// minFreeBytes is the free-space floor checked before a run starts.
const minFreeBytes = 128 << 20

// Prober returns a source file's duration in whole seconds, 0 when unknown.
type Prober func(ctx context.Context, path string) (int, error)

// Tagger stamps ID3 metadata onto a finished file.
type Tagger func(path string, meta tags.Metadata) error

// Option configures the processor.
type Option func(*Processor)

// WithLogger overrides the default no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logging.NewComponentLogger(logger, "processor")
		}
	}
}

// WithExecutor injects the SoX executor (primarily for tests).
func WithExecutor(exec sox.Executor) Option {
	return func(p *Processor) {
		p.executor = exec
	}
}

// WithJournal records row outcomes in the given store and skips rows it
// already completed.
func WithJournal(store *journal.Store) Option {
	return func(p *Processor) {
		p.journal = store
	}
}

// WithTagger injects the tag writer (primarily for tests).
func WithTagger(tagger Tagger) Option {
	return func(p *Processor) {
		if tagger != nil {
			p.tag = tagger
		}
	}
}

// WithProber injects the duration prober (primarily for tests).
func WithProber(prober Prober) Option {
	return func(p *Processor) {
		if prober != nil {
			p.probe = prober
		}
	}
}

// Processor runs the batch stage: cut, filter, transcode, tag, and publish
// every row of a collector CSV.
type Processor struct {
	cfg      *config.Config
	logger   *slog.Logger
	executor sox.Executor
	journal  *journal.Store
	tag      Tagger
	probe    Prober
}

// New constructs a processor for the given configuration.
func New(cfg *config.Config, opts ...Option) (*Processor, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	p := &Processor{
		cfg:    cfg,
		logger: logging.NewNop(),
		tag:    tags.Write,
	}
	p.probe = func(ctx context.Context, path string) (int, error) {
		result, err := probe.Inspect(ctx, cfg.Sox.FFprobeCommand, path)
		if err != nil {
			return 0, err
		}
		return result.DurationWholeSeconds(), nil
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// RowOutcome reports what happened to one CSV row.
type RowOutcome struct {
	Row         metadata.Row
	Index       int // 1-based CSV position
	Track       int
	OutputPath  string
	Status      journal.Status
	Reason      string
	Err         error
	AlreadyDone bool
}

// Summary aggregates one processing run.
type Summary struct {
	CSVPath   string
	OutputDir string
	RunID     string
	Outcomes  []RowOutcome
	Completed int
	Failed    int
	Skipped   int
}

// Run processes every row of csvPath in file order. Row failures are
// recorded and skipped; only run-level precondition failures return an
// error. outputDir overrides the configured output directory when non-empty.
func (p *Processor) Run(ctx context.Context, csvPath, outputDir string) (Summary, error) {
	csvPath, err := config.ExpandPath(csvPath)
	if err != nil {
		return Summary{}, err
	}
	rows, err := metadata.ReadFile(csvPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Summary{}, services.Wrap(services.ErrNotFound, "process", "load csv", csvPath, err)
		}
		return Summary{}, services.Wrap(services.ErrFormat, "process", "load csv", csvPath, err)
	}
	if len(rows) == 0 {
		return Summary{}, services.Wrap(services.ErrFormat, "process", "load csv", "no rows in "+csvPath, nil)
	}

	if outputDir == "" {
		outputDir = p.cfg.Paths.OutputDir
	}
	if outputDir, err = config.ExpandPath(outputDir); err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.MkdirAll(p.cfg.Paths.WorkDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create work directory: %w", err)
	}
	if free, err := fileutil.FreeBytes(outputDir); err == nil && free < minFreeBytes {
		return Summary{}, fmt.Errorf("only %d bytes free under %s, need at least %d", free, outputDir, minFreeBytes)
	}

	lock, err := runlock.Acquire(outputDir)
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			p.logger.WarnContext(ctx, "releasing run lock failed", logging.Error(releaseErr))
		}
	}()

	summary := Summary{
		CSVPath:   csvPath,
		OutputDir: outputDir,
		RunID:     uuid.NewString(),
	}
	ctx = services.WithRunID(ctx, summary.RunID)

	// Work files live in a per-run directory; the flock only guards the
	// output directory, so runs into different outputs may share work_dir.
	workDir := filepath.Join(p.cfg.Paths.WorkDir, summary.RunID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create run work directory: %w", err)
	}
	defer func() {
		if removeErr := os.RemoveAll(workDir); removeErr != nil {
			p.logger.WarnContext(ctx, "removing run work directory failed", logging.Error(removeErr))
		}
	}()

	soxClient, err := p.soxClient()
	if err != nil {
		return Summary{}, err
	}

	p.logger.InfoContext(ctx, "processing run started",
		logging.String(logging.FieldRunID, summary.RunID),
		logging.String("csv", csvPath),
		logging.Int("rows", len(rows)))

	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetDescription("processing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(isatty.IsTerminal(os.Stderr.Fd())),
	)

	for i, row := range rows {
		index := i + 1
		rowCtx := services.WithRowIndex(ctx, index)
		outcome := p.processRow(rowCtx, soxClient, csvPath, outputDir, workDir, row, index)
		summary.Outcomes = append(summary.Outcomes, outcome)
		switch {
		case outcome.AlreadyDone:
			summary.Skipped++
		case outcome.Status == journal.StatusCompleted:
			summary.Completed++
		default:
			summary.Failed++
		}
		p.record(rowCtx, csvPath, outcome)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	p.logger.InfoContext(ctx, "processing run finished",
		logging.Int("completed", summary.Completed),
		logging.Int("failed", summary.Failed),
		logging.Int("already_done", summary.Skipped))
	return summary, nil
}

func (p *Processor) soxClient() (*sox.Client, error) {
	opts := []sox.Option{}
	if p.executor != nil {
		opts = append(opts, sox.WithExecutor(p.executor))
	}
	return sox.New(p.cfg.Sox.Command, opts...)
}

func (p *Processor) processRow(ctx context.Context, client *sox.Client, csvPath, outputDir, workDir string, row metadata.Row, index int) RowOutcome {
	outcome := RowOutcome{Row: row, Index: index, Track: index}
	logger := logging.WithContext(ctx, p.logger)

	if prior := p.lookupCompleted(ctx, csvPath, index); prior != nil {
		outcome.AlreadyDone = true
		outcome.Status = journal.StatusCompleted
		outcome.OutputPath = prior.OutputPath
		outcome.Reason = "already done"
		logger.InfoContext(ctx, "row already done",
			logging.String(logging.FieldSource, row.SourcePath),
			logging.String(logging.FieldOutput, prior.OutputPath))
		return outcome
	}

	output, err := p.produce(ctx, client, outputDir, workDir, row, index)
	if err != nil {
		outcome.Status = journal.StatusFailed
		outcome.Reason = services.Classify(err)
		outcome.Err = err
		logger.ErrorContext(ctx, "row failed",
			logging.String(logging.FieldSource, row.SourcePath),
			logging.Error(err))
		return outcome
	}

	outcome.Status = journal.StatusCompleted
	outcome.OutputPath = output
	logger.InfoContext(ctx, "row completed",
		logging.String(logging.FieldSource, row.SourcePath),
		logging.String(logging.FieldOutput, output))
	return outcome
}

// produce runs the per-row pipeline: validate, cut, filter, transcode, tag,
// publish. Work files live under the work directory and are removed whether
// the row succeeds or fails.
func (p *Processor) produce(ctx context.Context, client *sox.Client, outputDir, workDir string, row metadata.Row, index int) (string, error) {
	ctx = services.WithStage(ctx, "validate")
	if _, err := os.Stat(row.SourcePath); err != nil {
		return "", services.Wrap(services.ErrNotFound, "process", "validate", row.SourcePath, err)
	}
	duration, probeErr := p.probe(ctx, row.SourcePath)
	if probeErr != nil {
		duration = 0
		logging.WithContext(ctx, p.logger).WarnContext(ctx, "duration probe failed",
			logging.String(logging.FieldSource, row.SourcePath),
			logging.Error(probeErr))
	}
	if err := row.Validate(duration); err != nil {
		return "", services.Wrap(services.ErrValidation, "process", "validate", row.SourcePath, err)
	}

	base := fmt.Sprintf("row%03d", index)
	cutPath := filepath.Join(workDir, base+"-cut.wav")
	filterPath := filepath.Join(workDir, base+"-filter.wav")
	encodedPath := filepath.Join(workDir, base+"."+p.cfg.Encode.Format)
	defer func() {
		for _, path := range []string{cutPath, filterPath, encodedPath} {
			_ = os.Remove(path)
		}
	}()

	ctx = services.WithStage(ctx, "cut")
	settings := sox.CutSettings{
		Channels:       p.cfg.Encode.Channels,
		FadeInSeconds:  p.cfg.Encode.FadeInSeconds,
		FadeOutSeconds: p.cfg.Encode.FadeOutSeconds,
	}
	if err := client.Cut(ctx, row.SourcePath, cutPath, row.Segment, settings); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "process", "cut", row.SourcePath, err)
	}

	ctx = services.WithStage(ctx, "filter")
	if err := client.Filter(ctx, cutPath, filterPath); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "process", "filter", row.SourcePath, err)
	}

	ctx = services.WithStage(ctx, "transcode")
	if err := client.Transcode(ctx, filterPath, encodedPath, p.cfg.Encode.BitrateKbps); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "process", "transcode", row.SourcePath, err)
	}

	ctx = services.WithStage(ctx, "tag")
	meta := tags.Metadata{
		Title:    row.Title,
		Speakers: row.Speakers,
		Album:    p.cfg.Tags.Album,
		Genre:    p.cfg.Tags.Genre,
		Track:    index,
	}
	if err := p.tag(encodedPath, meta); err != nil {
		return "", services.Wrap(services.ErrFormat, "process", "tag", encodedPath, err)
	}

	ctx = services.WithStage(ctx, "publish")
	destination := filepath.Join(outputDir, OutputName(index, row.Title, p.cfg.Encode.Format))
	destination, err := fileutil.UniquePath(destination)
	if err != nil {
		return "", services.Wrap(services.ErrFormat, "process", "publish", destination, err)
	}
	if err := fileutil.MoveFile(encodedPath, destination); err != nil {
		return "", services.Wrap(services.ErrFormat, "process", "publish", destination, err)
	}
	return destination, nil
}

// lookupCompleted returns the journal entry for a row that already completed
// and whose output file still exists.
func (p *Processor) lookupCompleted(ctx context.Context, csvPath string, index int) *journal.Entry {
	if p.journal == nil {
		return nil
	}
	entry, err := p.journal.Lookup(ctx, csvPath, index)
	if err != nil {
		p.logger.WarnContext(ctx, "journal lookup failed", logging.Error(err))
		return nil
	}
	if entry == nil || entry.Status != journal.StatusCompleted || entry.OutputPath == "" {
		return nil
	}
	if _, err := os.Stat(entry.OutputPath); err != nil {
		return nil
	}
	return entry
}

func (p *Processor) record(ctx context.Context, csvPath string, outcome RowOutcome) {
	if p.journal == nil || outcome.AlreadyDone {
		return
	}
	reason := outcome.Reason
	if outcome.Err != nil {
		reason = outcome.Err.Error()
	}
	runID, _ := services.RunIDFromContext(ctx)
	entry := journal.Entry{
		CSVPath:    csvPath,
		RowIndex:   outcome.Index,
		SourcePath: outcome.Row.SourcePath,
		Title:      outcome.Row.Title,
		OutputPath: outcome.OutputPath,
		Status:     outcome.Status,
		Reason:     reason,
		RunID:      runID,
	}
	if err := p.journal.Record(ctx, entry); err != nil {
		p.logger.WarnContext(ctx, "journal record failed", logging.Error(err))
	}
}
