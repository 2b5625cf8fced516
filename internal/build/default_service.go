package build

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/typstbuilder/internal/assemble"
	"git.home.luguber.info/inful/typstbuilder/internal/config"
	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typstbuilder/internal/logfields"
	"git.home.luguber.info/inful/typstbuilder/internal/metrics"
	"git.home.luguber.info/inful/typstbuilder/internal/observability"
	"git.home.luguber.info/inful/typstbuilder/internal/templates"
	"git.home.luguber.info/inful/typstbuilder/internal/translator"
)

// LoaderFactory creates the source loader for a configuration.
type LoaderFactory func(cfg *config.Config) SourceLoader

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	loaderFactory LoaderFactory
	recorder      metrics.Recorder
	logger        *slog.Logger
	preflight     func(outputDir string) *RuleChain
}

// NewBuildService creates a DefaultBuildService reading sources from disk.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		loaderFactory: func(cfg *config.Config) SourceLoader {
			return NewFileLoader(cfg.Source.Directory, cfg.Source.Format)
		},
		recorder:  metrics.NoopRecorder{},
		preflight: DefaultPreflight,
	}
}

// WithLoaderFactory replaces how sources are read (for testing).
func (s *DefaultBuildService) WithLoaderFactory(factory LoaderFactory) *DefaultBuildService {
	s.loaderFactory = factory
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithLogger sets the base logger; nil means slog.Default().
func (s *DefaultBuildService) WithLogger(l *slog.Logger) *DefaultBuildService {
	s.logger = l
	return s
}

func (s *DefaultBuildService) baseLogger() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// Run executes the build described by req.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	start := time.Now()
	result := &BuildResult{RunID: uuid.NewString(), StartTime: start}
	ctx = observability.WithRunID(ctx, result.RunID)
	defer func() {
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(start)
		s.recorder.ObserveBuildDuration(result.Duration)
	}()

	cfg := req.Config
	if cfg == nil {
		result.Status = BuildStatusFailed
		return result, errors.ConfigError("build request has no configuration").Build()
	}
	result.OutputPath = cfg.Output.Directory
	if req.OutputDir != "" {
		result.OutputPath = req.OutputDir
	}

	if name, res := s.preflight(result.OutputPath).Check(ctx, PreflightContext{Config: cfg, Logger: observability.Logger(ctx, s.baseLogger())}); !res.Passed {
		result.Status = BuildStatusFailed
		return result, errors.ValidationError(res.Reason).WithContext("rule", name).Fatal().Build()
	}

	tmpl, err := s.template(cfg)
	if err != nil {
		result.Status = BuildStatusFailed
		return result, err
	}
	result.Template = tmpl.Name

	locale, err := templates.NewLocale(cfg.Language, cfg.AdmonitionLabels).Encode()
	if err != nil {
		result.Status = BuildStatusFailed
		return result, errors.WrapError(err, errors.CategoryInternal, "encode locale").Build()
	}

	plan := &assemble.Plan{}
	plan.WriteFile(templates.LocaleFile, locale)
	plan.CopyTemplate(tmpl.Name, tmpl.Origin, tmpl.Files)

	job := &documentJob{
		service: s,
		cfg:     cfg,
		tmpl:    tmpl,
		loader:  s.loaderFactory(cfg),
		namer:   assemble.NewImageNamer(),
		tags:    append(append([]string(nil), cfg.Tags...), req.Options.Tags...),
	}

	var errs []error
	for _, doc := range cfg.Documents {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		dctx := observability.WithDocument(ctx, doc.StartDoc, doc.Target)
		stageStart := time.Now()
		dr, out, err := job.run(dctx, doc)
		s.recorder.ObserveStageDuration("document", time.Since(stageStart))
		if err != nil {
			dr.Status = DocumentStatusFailed
			dr.Err = err
			errs = append(errs, err)
			s.recorder.IncDocumentResult(metrics.ResultFatal)
			observability.ErrorContext(dctx, "Document failed", logfields.Error(err))
		} else {
			out.addTo(plan)
			if dr.Status == DocumentStatusWarning {
				s.recorder.IncDocumentResult(metrics.ResultWarning)
			} else {
				s.recorder.IncDocumentResult(metrics.ResultSuccess)
			}
			observability.InfoContext(dctx, "Document translated",
				slog.String("title", dr.Title), logfields.Count(len(dr.Diagnostics)))
		}
		result.Documents = append(result.Documents, dr)
	}

	exec := &Executor{
		Dir:      result.OutputPath,
		DryRun:   req.Options.DryRun,
		Diff:     req.Options.Diff,
		Clean:    cfg.Output.Clean,
		Recorder: s.recorder,
		Logger:   observability.Logger(ctx, s.baseLogger()),
	}
	stageStart := time.Now()
	outputs, err := exec.Apply(ctx, plan.Effects())
	s.recorder.ObserveStageDuration("write", time.Since(stageStart))
	result.Outputs = outputs
	if err != nil {
		errs = append(errs, err)
	}

	switch failed := result.Failed(); {
	case err != nil || (failed > 0 && failed == len(result.Documents)):
		result.Status = BuildStatusFailed
	case failed > 0:
		result.Status = BuildStatusPartial
	default:
		result.Status = BuildStatusSuccess
	}
	observability.InfoContext(ctx, "Build finished",
		slog.String("status", string(result.Status)),
		logfields.Count(len(result.Documents)),
		slog.Int("changed", result.Changed()),
		logfields.Path(result.OutputPath))
	return result, stderrors.Join(errs...)
}

func (s *DefaultBuildService) template(cfg *config.Config) (*templates.Template, error) {
	registry, err := templates.Discover(cfg.Template.Paths)
	if err != nil {
		return nil, err
	}
	return registry.Lookup(cfg.Template.Name)
}

// documentJob holds what the documents of one build share.
type documentJob struct {
	service *DefaultBuildService
	cfg     *config.Config
	tmpl    *templates.Template
	loader  SourceLoader
	namer   *assemble.ImageNamer
	tags    []string
}

// documentOutput is what a successful document adds to the plan.
type documentOutput struct {
	source   string
	sidecar  []byte
	target   string
	images   [][2]string
	attached [][2]string
}

func (o *documentOutput) addTo(plan *assemble.Plan) {
	plan.WriteFile(assemble.SourceFile(o.target), []byte(o.source))
	plan.WriteFile(assemble.MetadataFile(o.target), o.sidecar)
	for _, img := range o.images {
		plan.CopyImage(img[0], img[1])
	}
	for _, a := range o.attached {
		plan.AttachFile(a[0], a[1])
	}
}

func (j *documentJob) run(ctx context.Context, doc config.DocumentConfig) (DocumentResult, *documentOutput, error) {
	dr := DocumentResult{StartDoc: doc.StartDoc, Target: doc.Target, Status: DocumentStatusSuccess}

	start, err := j.loader.Load(doc.StartDoc)
	if err != nil {
		return dr, nil, sourceError(err, doc.StartDoc)
	}
	metadata := maps.Clone(start.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	appendices := make([]*Source, 0, len(doc.Appendices))
	for _, name := range doc.Appendices {
		a, err := j.loader.Load(name)
		if err != nil {
			return dr, nil, sourceError(err, name)
		}
		appendices = append(appendices, a)
	}
	tree := withAppendices(start.Tree, appendices)

	out := &documentOutput{target: doc.Target}
	images := j.resolveImages(ctx, tree, out)

	tr := translator.New(translator.Options{
		StartDoc: doc.StartDoc,
		Images:   images,
		Tags:     j.tags,
		Logger:   observability.Logger(ctx, j.service.baseLogger()),
		Recorder: j.service.recorder,
	})
	res, err := tr.Translate(tree)
	if err != nil {
		return dr, nil, fmt.Errorf("%w: %s: %w", ErrTranslate, doc.StartDoc, err)
	}
	dr.Diagnostics = res.Diagnostics
	dr.Unresolved = res.Unresolved()
	if len(translator.Warnings(res.Diagnostics)) > 0 {
		dr.Status = DocumentStatusWarning
	}

	for _, d := range res.Downloads {
		src := j.loader.Resolve(d.Source)
		if !exists(src) {
			dr.Status = DocumentStatusWarning
			observability.WarnContext(ctx, "Download target not found", logfields.Path(src))
			continue
		}
		out.attached = append(out.attached, [2]string{src, d.Filename})
	}

	dr.Title = firstNonEmpty(doc.Title, res.Title, start.Tree.Attr("title"), j.cfg.Project)
	maps.Copy(metadata, doc.Metadata)
	extra, err := templates.ResolveInputs(j.tmpl.Manifest.Fields, j.tmpl.Manifest.Defaults, metadata, nil)
	if err != nil {
		return dr, nil, errors.WrapError(err, errors.CategoryTemplate, "resolve template inputs").
			WithContext("template", j.tmpl.Name).WithContext("document", doc.StartDoc).Build()
	}
	date, err := assemble.ParseDate(j.cfg.Date)
	if err != nil {
		return dr, nil, errors.WrapError(err, errors.CategoryConfig, "invalid date").Build()
	}
	md := assemble.Metadata{
		Title:        dr.Title,
		Author:       j.cfg.Author,
		Date:         date,
		Language:     j.cfg.Language,
		LabelAliases: res.LabelAliases,
		Extra:        extra,
	}
	if out.sidecar, err = md.Encode(); err != nil {
		return dr, nil, fmt.Errorf("%w: %s: %w", ErrAssemble, doc.Target, err)
	}
	out.source, err = assemble.Document(res.Body, assemble.PreambleOptions{
		Template:     j.tmpl.Name,
		Entry:        j.tmpl.Entry(),
		MetadataFile: assemble.MetadataFile(doc.Target),
	})
	if err != nil {
		return dr, nil, fmt.Errorf("%w: %s: %w", ErrAssemble, doc.Target, err)
	}
	return dr, out, nil
}

// resolveImages maps every image URI that names an existing source file to
// its output path. Missing files stay unmapped; the translator reports them.
func (j *documentJob) resolveImages(ctx context.Context, tree *doctree.Node, out *documentOutput) map[string]string {
	images := make(map[string]string)
	for _, img := range doctree.Find(tree, doctree.KindImage) {
		uri := img.Attr("uri")
		if _, done := images[uri]; done || uri == "" {
			continue
		}
		src := j.loader.Resolve(uri)
		if !exists(src) {
			observability.DebugContext(ctx, "Image source not found", logfields.URI(uri), logfields.Path(src))
			continue
		}
		dest := j.namer.Name(uri)
		images[uri] = dest
		out.images = append(out.images, [2]string{src, dest})
	}
	return images
}

func sourceError(err error, docname string) error {
	return errors.WrapError(fmt.Errorf("%w: %w", ErrSource, err), errors.CategorySource, "cannot load document").
		WithContext("document", docname).Build()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
