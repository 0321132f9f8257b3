package htmlpdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/zap"

	"orcamento/go_backend/internal/domain/quote"
	"orcamento/go_backend/internal/domain/quote/pdf"
)

// ErrClosed is returned by Generate after Close.
var ErrClosed = errors.New("htmlpdf: generator is closed")

// A4 in inches with 1 cm margins.
const (
	paperWidth  = 21.0 / 2.54
	paperHeight = 29.7 / 2.54
	margin      = 1.0 / 2.54
)

var browserNames = []string{
	"chromium-browser", "chromium", "google-chrome",
	"google-chrome-stable", "chrome",
}

type config struct {
	chromePath   string
	autoDownload bool
	noSandbox    bool
	timeout      time.Duration
	sig          pdf.Signature
	log          *zap.Logger
}

type Option func(*config)

// WithChromePath sets the Chrome or Chromium executable.
func WithChromePath(path string) Option {
	return func(c *config) { c.chromePath = path }
}

// WithAutoDownload fetches a Chromium build when none is installed.
func WithAutoDownload() Option {
	return func(c *config) { c.autoDownload = true }
}

// WithNoSandbox is required when running as root, e.g. in containers.
func WithNoSandbox() Option {
	return func(c *config) { c.noSandbox = true }
}

// WithTimeout bounds one render. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

func WithSignature(sig pdf.Signature) Option {
	return func(c *config) { c.sig = sig }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.log = l }
}

// Generator renders quotes through the HTML template and a headless
// browser. One browser process is shared; every render gets its own tab.
type Generator struct {
	cfg           config
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

var _ pdf.Generator = (*Generator)(nil)

// New starts the browser. Call Close to stop it.
func New(opts ...Option) (*Generator, error) {
	cfg := config{
		timeout: 30 * time.Second,
		sig:     pdf.DefaultSignature(),
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(&cfg)
	}

	path, err := resolveBrowser(cfg)
	if err != nil {
		return nil, err
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-first-run", true),
	)
	if path != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(path))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("htmlpdf: starting browser: %w", err)
	}
	cfg.log.Info("quote pdf: browser started", zap.String("path", path))

	return &Generator{
		cfg:           cfg,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

func resolveBrowser(cfg config) (string, error) {
	if cfg.chromePath != "" {
		return cfg.chromePath, nil
	}
	if p := lookupBrowser(); p != "" {
		return p, nil
	}
	if !cfg.autoDownload {
		// chromedp falls back to its own search.
		return "", nil
	}
	p, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("htmlpdf: downloading browser: %w", err)
	}
	return p, nil
}

func lookupBrowser() string {
	for _, name := range browserNames {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

// Close stops the browser. It is safe to call more than once.
func (g *Generator) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	g.browserCancel()
	g.allocCancel()
	return nil
}

func (g *Generator) Markup(doc quote.Document) ([]byte, error) {
	return Markup(doc, g.cfg.sig)
}

func (g *Generator) Generate(ctx context.Context, doc quote.Document) ([]byte, error) {
	g.mu.Lock()
	closed := g.closed
	g.mu.Unlock()
	if closed {
		return nil, quote.RenderErrorf("%w", ErrClosed)
	}

	html, err := Markup(doc, g.cfg.sig)
	if err != nil {
		return nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(g.browserCtx)
	defer tabCancel()
	if g.cfg.timeout > 0 {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithTimeout(tabCtx, g.cfg.timeout)
		defer cancel()
	}
	// Stop the tab when the caller gives up.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var buf []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(margin).
				WithMarginRight(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		g.cfg.log.Error("quote pdf: print failed", zap.String("number", doc.Meta.Number.String()), zap.Error(err))
		return nil, quote.RenderErrorf("%s: %w", doc.Meta.Number, err)
	}
	return buf, nil
}
