package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lectern/internal/config"
	"lectern/internal/fileutil"
	"lectern/internal/logging"
	"lectern/internal/media/probe"
	"lectern/internal/metadata"
	"lectern/internal/services"
	"lectern/internal/services/player"
)

// Prober returns a source file's duration in whole seconds, 0 when unknown.
type Prober func(ctx context.Context, path string) (int, error)

// Option configures the collector.
type Option func(*Collector)

// WithLogger overrides the default no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "collector")
		}
	}
}

// WithPreviewer injects the preview player (nil disables previews).
func WithPreviewer(previewer player.Previewer) Option {
	return func(c *Collector) {
		c.previewer = previewer
	}
}

// WithProber injects the duration prober (primarily for tests).
func WithProber(prober Prober) Option {
	return func(c *Collector) {
		if prober != nil {
			c.probe = prober
		}
	}
}

// Collector runs the interactive metadata-gathering session that produces
// the cut-list CSV.
type Collector struct {
	cfg       *config.Config
	logger    *slog.Logger
	operator  Operator
	previewer player.Previewer
	probe     Prober
}

// New constructs a collector around the given operator.
func New(cfg *config.Config, operator Operator, opts ...Option) (*Collector, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if operator == nil {
		return nil, errors.New("operator required")
	}
	c := &Collector{
		cfg:      cfg,
		logger:   logging.NewNop(),
		operator: operator,
	}
	c.probe = func(ctx context.Context, path string) (int, error) {
		result, err := probe.Inspect(ctx, cfg.Sox.FFprobeCommand, path)
		if err != nil {
			return 0, err
		}
		return result.DurationWholeSeconds(), nil
	}
	if cfg.Player.Command != "" {
		if client, err := player.New(cfg.Player.Command, cfg.Player.Args); err == nil {
			c.previewer = client
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Summary reports what one collect session produced.
type Summary struct {
	EventName    string
	CSVPath      string
	FilesSeen    int
	FilesSkipped int
	RowsAppended int
	Interrupted  bool
}

// Run walks dir, prompts for metadata per file, and appends one CSV row per
// confirmed segment. An empty csvPath derives the file name from the event
// name inside dir. Closing the session (Ctrl+D) keeps everything already
// appended and is not an error.
func (c *Collector) Run(ctx context.Context, dir, csvPath string) (Summary, error) {
	dir, err := config.ExpandPath(dir)
	if err != nil {
		return Summary{}, err
	}

	files, err := DiscoverAudio(dir)
	if err != nil {
		return Summary{}, err
	}

	sess := &session{collector: c, summary: Summary{}}
	err = sess.run(ctx, dir, csvPath, files)
	if errors.Is(err, ErrSessionClosed) {
		sess.summary.Interrupted = true
		err = nil
	}
	return sess.summary, err
}

type session struct {
	collector *Collector
	appender  *metadata.Appender
	previous  map[string][]metadata.Row
	summary   Summary
}

func (s *session) run(ctx context.Context, dir, csvPath string, files []string) error {
	c := s.collector

	eventName, err := c.operator.Prompt("Event name", titleCase(filepath.Base(dir)))
	if err != nil {
		return err
	}
	if eventName == "" {
		eventName = titleCase(filepath.Base(dir))
	}
	s.summary.EventName = eventName

	if csvPath == "" {
		csvPath = filepath.Join(dir, fileutil.SanitizeFileName(eventName)+".csv")
	} else if csvPath, err = config.ExpandPath(csvPath); err != nil {
		return err
	}
	s.summary.CSVPath = csvPath

	s.previous, err = loadPrevious(csvPath)
	if err != nil {
		return err
	}
	if len(s.previous) > 0 {
		c.operator.Notify(fmt.Sprintf("resuming %s, previous answers offered as defaults", csvPath))
	}

	s.appender, err = metadata.OpenAppend(csvPath)
	if err != nil {
		return services.Wrap(services.ErrFormat, "collect", "open csv", csvPath, err)
	}
	defer s.appender.Close()

	c.logger.InfoContext(ctx, "collect session started",
		logging.String("directory", dir),
		logging.String("csv", csvPath),
		logging.Int("files", len(files)))

	for i, file := range files {
		s.summary.FilesSeen++
		c.operator.Notify(fmt.Sprintf("[%d/%d] %s", i+1, len(files), file))

		if err := s.collectFile(ctx, file); err != nil {
			return err
		}
	}

	c.logger.InfoContext(ctx, "collect session finished",
		logging.Int("rows", s.summary.RowsAppended),
		logging.Int("skipped", s.summary.FilesSkipped))
	return nil
}

func (s *session) collectFile(ctx context.Context, file string) error {
	c := s.collector

	if err := s.offerPreview(ctx, file); err != nil {
		return err
	}

	include, err := c.operator.Confirm("Include this file?", true)
	if err != nil {
		return err
	}
	if !include {
		s.summary.FilesSkipped++
		c.logger.InfoContext(ctx, "file skipped", logging.String(logging.FieldSource, file))
		return nil
	}

	duration, probeErr := c.probe(ctx, file)
	if probeErr != nil {
		// Without a known duration the end bound cannot be checked; the
		// segment ordering rules still apply.
		duration = 0
		c.operator.Notify("could not determine duration, end bound will not be checked")
		c.logger.WarnContext(ctx, "duration probe failed",
			logging.String(logging.FieldSource, file), logging.Error(probeErr))
	}

	prior := s.previous[file]

	title, err := s.promptTitle(file, prior)
	if err != nil {
		return err
	}
	speakers, err := s.promptSpeakers(prior)
	if err != nil {
		return err
	}
	return s.promptSegments(ctx, file, title, speakers, duration, prior)
}

func (s *session) offerPreview(ctx context.Context, file string) error {
	c := s.collector
	if c.previewer == nil {
		return nil
	}
	for {
		preview, err := c.operator.Confirm("Preview "+filepath.Base(file)+"?", false)
		if err != nil || !preview {
			return err
		}
		sess, err := c.previewer.Preview(ctx, file)
		if err != nil {
			c.operator.Notify("preview failed: " + err.Error())
			c.logger.WarnContext(ctx, "preview failed",
				logging.String(logging.FieldSource, file), logging.Error(err))
			return nil
		}
		_, promptErr := c.operator.Prompt("Press enter to stop playback", "")
		stopErr := sess.Stop()
		if promptErr != nil {
			return promptErr
		}
		if stopErr != nil {
			c.logger.WarnContext(ctx, "stopping preview failed", logging.Error(stopErr))
		}
	}
}

func (s *session) promptTitle(file string, prior []metadata.Row) (string, error) {
	defaultTitle := ""
	if len(prior) > 0 {
		defaultTitle = prior[0].Title
	}
	if defaultTitle == "" {
		stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		defaultTitle = titleCase(stem)
	}
	for {
		title, err := s.collector.operator.Prompt("Title", defaultTitle)
		if err != nil {
			return "", err
		}
		if title != "" {
			return title, nil
		}
		s.collector.operator.Notify("a title is required")
	}
}

func (s *session) promptSpeakers(prior []metadata.Row) ([]string, error) {
	var defaults []string
	if len(prior) > 0 {
		defaults = prior[0].Speakers
	}
	for {
		speakers, err := s.collector.operator.MultiPrompt("Speaker", defaults)
		if err != nil {
			return nil, err
		}
		if len(speakers) > 0 {
			return speakers, nil
		}
		s.collector.operator.Notify("at least one speaker is required")
	}
}

func (s *session) promptSegments(ctx context.Context, file, title string, speakers []string, duration int, prior []metadata.Row) error {
	c := s.collector
	var accepted []metadata.Segment
	for {
		defaultSpec := ""
		if len(accepted) < len(prior) {
			defaultSpec = prior[len(accepted)].Segment.String()
		}
		label := fmt.Sprintf("Segment %d (start-end, empty to finish)", len(accepted)+1)
		value, err := c.operator.Prompt(label, defaultSpec)
		if err != nil {
			return err
		}
		if value == "" {
			if len(accepted) == 0 {
				c.operator.Notify("at least one segment is required")
				continue
			}
			return nil
		}

		segment, err := metadata.ParseSegmentSpec(value)
		if err != nil {
			c.operator.Notify(err.Error())
			continue
		}
		row := metadata.Row{
			SourcePath:   file,
			SegmentIndex: len(accepted),
			Segment:      segment,
			Title:        title,
			Speakers:     speakers,
		}
		if err := row.Validate(duration); err != nil {
			c.operator.Notify(err.Error())
			continue
		}
		for _, existing := range accepted {
			if segment.Overlaps(existing) {
				c.operator.Notify(fmt.Sprintf("warning: %s overlaps %s", segment, existing))
				c.logger.WarnContext(ctx, "overlapping segments accepted",
					logging.String(logging.FieldSource, file),
					logging.String("segment", segment.String()))
				break
			}
		}

		if err := s.appender.Append(row); err != nil {
			return services.Wrap(services.ErrFormat, "collect", "append row", file, err)
		}
		accepted = append(accepted, segment)
		s.summary.RowsAppended++
		c.logger.InfoContext(ctx, "row appended",
			logging.String(logging.FieldSource, file),
			logging.String("segment", segment.String()),
			logging.String("title", title))
	}
}

// loadPrevious reads an existing CSV so a resumed session can offer the
// prior answers as defaults. A missing file simply means a fresh session.
func loadPrevious(csvPath string) (map[string][]metadata.Row, error) {
	info, err := os.Stat(csvPath)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.Size() == 0) {
		return map[string][]metadata.Row{}, nil
	}
	if err != nil {
		return nil, services.Wrap(services.ErrFormat, "collect", "resume", csvPath, err)
	}

	rows, err := metadata.ReadFile(csvPath)
	if err != nil {
		return nil, services.Wrap(services.ErrFormat, "collect", "resume", csvPath, err)
	}
	previous := make(map[string][]metadata.Row)
	for _, row := range rows {
		previous[row.SourcePath] = append(previous[row.SourcePath], row)
	}
	return previous, nil
}

func titleCase(value string) string {
	value = strings.NewReplacer("_", " ", "-", " ").Replace(value)
	return cases.Title(language.Und).String(value)
}
