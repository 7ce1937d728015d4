package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/postmd/internal/app"
	"github.com/kk-code-lab/postmd/internal/config"
	"github.com/kk-code-lab/postmd/internal/format"
	fsutil "github.com/kk-code-lab/postmd/internal/fs"
	"github.com/kk-code-lab/postmd/internal/markdown"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const defaultWidth = 80

var tracerKeys = []string{"postmd.markdown", "postmd.format", "postmd.viewer", "postmd.cli"}

// tracer traces with key 'postmd.cli'
func tracer() tracing.Trace {
	return tracing.Select("postmd.cli")
}

var now = time.Now

type options struct {
	format     string
	configPath string
	domain     string
	prelink    bool
	preview    bool
	view       bool
	images     bool
	width      int
	trace      string
}

func main() {
	initDisplay()

	opts, args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(2)
	}
	if err := setupTracing(opts.trace); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	if err := run(opts, args, os.Stdin, os.Stdout); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func parseFlags(argv []string, stderr io.Writer) (options, []string, error) {
	var opts options
	flags := pflag.NewFlagSet("postmd", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.format, "format", "f", "text", "Output format: text|html|tree")
	flags.StringVarP(&opts.configPath, "config", "c", defaultConfigPath(), "Configuration file")
	flags.StringVar(&opts.domain, "domain", "", "Site domain override")
	flags.BoolVar(&opts.prelink, "prelink", true, "Turn #tags, $TOKENS, @users and /realms into links")
	flags.BoolVar(&opts.preview, "preview", false, "Render in preview mode (collapsed videos)")
	flags.BoolVar(&opts.view, "view", false, "Open the post in the terminal viewer")
	flags.BoolVar(&opts.images, "images", false, "List image preview requests instead of rendering")
	flags.IntVarP(&opts.width, "width", "w", 0, "Text width (0 uses terminal width if available)")
	flags.StringVar(&opts.trace, "trace", "Error", "Trace level [Debug|Info|Error]")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: postmd [flags] [file]\n")
		fmt.Fprintln(stderr, "\nIf no file is given, the post is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(argv); err != nil {
		return opts, nil, err
	}
	switch opts.format {
	case "text", "html", "tree":
	default:
		return opts, nil, fmt.Errorf("unknown format %q", opts.format)
	}
	if flags.NArg() > 1 {
		return opts, nil, fmt.Errorf("expected at most one input file, got %d", flags.NArg())
	}
	return opts, flags.Args(), nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "postmd", "config.yaml")
}

func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range tracerKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("configure tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

func run(opts options, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.domain != "" {
		cfg.Site.Domain = opts.domain
	}
	cfg.Preview = cfg.Preview || opts.preview

	name, source, err := readSource(args, stdin)
	if err != nil {
		return err
	}
	fm, body, err := config.SplitFrontMatter(source)
	if err != nil && !errors.Is(err, config.ErrNoFrontMatter) {
		return err
	}
	if opts.prelink {
		body = markdown.Prelink(body)
	}
	parseOpts := cfg.Options(fm)
	parseOpts.Now = now()
	doc := markdown.Parse(body, parseOpts)
	tracer().Debugf("parsed %s: %d blocks", name, len(doc.Blocks))

	switch {
	case opts.images:
		p := listPreviewer{w: stdout}
		for _, img := range markdown.Images(doc) {
			p.OpenPreview(img.PreviewRequest())
		}
		return p.err
	case opts.view:
		return view(name, doc)
	}

	switch opts.format {
	case "html":
		return format.HTML(stdout, doc)
	case "tree":
		return format.Tree(stdout, doc)
	default:
		return writeText(stdout, doc, resolveWidth(opts.width, stdout))
	}
}

func readSource(args []string, stdin io.Reader) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		text, err := fsutil.Read(stdin, "")
		return "stdin", text, err
	}
	text, err := fsutil.Load(args[0])
	return filepath.Base(args[0]), text, err
}

func view(title string, doc markdown.Document) error {
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	app, err := apppkg.NewApplication(screen, title, doc)
	if err != nil {
		return err
	}
	app.Run()
	return nil
}

// listPreviewer prints the preview request of every image, one per line.
type listPreviewer struct {
	w   io.Writer
	err error
}

var _ markdown.Previewer = (*listPreviewer)(nil)

func (p *listPreviewer) OpenPreview(req markdown.PreviewRequest) {
	if p.err != nil {
		return
	}
	blob := req.BlobID
	if blob == "" {
		blob = "-"
	}
	line := req.Src + "\t" + blob
	if len(req.Gallery) > 0 {
		line += "\t" + strings.Join(req.Gallery, ",")
	}
	_, p.err = fmt.Fprintln(p.w, line)
}

func resolveWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	if isTerminal(w) {
		if cols, _, err := term.GetSize(int(w.(*os.File).Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return defaultWidth
}
