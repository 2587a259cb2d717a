package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"go.uber.org/zap/zapcore"

	"github.com/jacoelho/xmlext"
	xmlerrors "github.com/jacoelho/xmlext/errors"
	"github.com/jacoelho/xmlext/internal/manifest"
	"github.com/jacoelho/xmlext/pkg/logger"
	"github.com/jacoelho/xmlext/pkg/xmldom"
	"github.com/jacoelho/xmlext/pkg/xmlwriter"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xmlext", flag.ContinueOnError)
	fs.SetOutput(stderr)
	manifestPath := fs.String("manifest", "", "path to YAML container manifest")
	list := fs.Bool("list", false, "list recognised extensions instead of writing XML")
	debug := fs.Bool("debug", false, "log parse tracing to stderr")
	maxDepth := fs.Int("max-depth", 0, "maximum element nesting, 0 for unlimited")
	cpuProfilePath := fs.String("cpuprofile", "", "write CPU profile to file")
	memProfilePath := fs.String("memprofile", "", "write memory profile to file")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s --manifest <manifest.yaml> [--list] <document.xml>\n\n", fs.Name()),
			writeln(stderr, "Parses an XML document into the extension container described by a manifest."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *manifestPath == "" {
		return usage(fs, stderr, &usageErr, "error: --manifest is required")
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return usage(fs, stderr, &usageErr, "error: exactly one XML file argument is required")
	}
	xmlPath := remaining[0]

	if *cpuProfilePath != "" {
		stopCPUProfile, err := startCPUProfile(*cpuProfilePath)
		if err != nil {
			_ = writef(stderr, "error starting CPU profile: %v\n", err)
			return 1
		}
		defer func() {
			if err := stopCPUProfile(); err != nil {
				_ = writef(stderr, "error stopping CPU profile: %v\n", err)
			}
		}()
	}

	if *memProfilePath != "" {
		defer func() {
			if err := writeMemProfile(*memProfilePath); err != nil {
				_ = writef(stderr, "error writing memory profile: %v\n", err)
			}
		}()
	}

	lggr := logger.Nop()
	if *debug {
		lggr = logger.NewConsole(stderr, zapcore.DebugLevel).Named("xmlext")
		defer func() { _ = lggr.Sync() }()
	}

	m, err := manifest.Load(*manifestPath)
	if err != nil {
		return report(stderr, "error loading manifest", err)
	}
	proto := m.Build(xmlext.WithLogger(lggr))

	doc, err := parseFile(xmlPath, *maxDepth)
	if err != nil {
		return report(stderr, "error parsing "+xmlPath, err)
	}

	c, ok := proto.Parse(doc.Root())
	if !ok {
		root := doc.Root()
		err := xmlerrors.List{xmlerrors.Newf(xmlerrors.ErrRootMismatch, xmlPath,
			"root %s is not %s",
			xmlext.QName{Namespace: root.NamespaceURI(), Local: root.LocalName()},
			proto.QName())}
		return report(stderr, "error parsing "+xmlPath, err)
	}

	if *list {
		for _, e := range c.Extensions() {
			if err := writeln(stdout, xmlext.QName{Namespace: e.XMLNamespace(), Local: e.XMLName()}); err != nil {
				return 1
			}
		}
		return 0
	}

	w := xmlwriter.New(stdout, xmlwriter.WithDeclaration())
	if err := c.Save(w); err != nil {
		return report(stderr, "error writing", err)
	}
	if err := w.Flush(); err != nil {
		return report(stderr, "error writing", err)
	}
	if err := writeln(stdout); err != nil {
		return 1
	}
	return 0
}

func parseFile(path string, maxDepth int) (*xmldom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return xmldom.Parse(f, xmldom.WithMaxDepth(maxDepth))
}

func usage(fs *flag.FlagSet, stderr io.Writer, usageErr *error, msg string) int {
	if err := writeln(stderr, msg); err != nil {
		return 1
	}
	fs.Usage()
	if *usageErr != nil {
		return 1
	}
	return 2
}

// report prints err, one line per coded error, and returns the runtime exit code.
func report(stderr io.Writer, context string, err error) int {
	if list, ok := xmlerrors.As(err); ok {
		for _, e := range list {
			if writeErr := writeln(stderr, e.Error()); writeErr != nil {
				return 1
			}
		}
		_ = writef(stderr, "%s\n", context)
		return 1
	}
	_ = writef(stderr, "%s: %v\n", context, err)
	return 1
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, fmt.Errorf("start cpu profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return nil, fmt.Errorf("start cpu profile %s: %w", path, err)
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile %s: %w", path, err)
		}
		return nil
	}, nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("write mem profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("write mem profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
