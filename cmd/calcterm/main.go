package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calcterm"
)

func main() {
	var (
		inname, cfgname, logLevel string
		flags                     config
		nl, echo, funcs           bool
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args or config terms given)")
	flag.StringVar(&flags.Format, "fmt", "", "result formatting string (default %g)")
	flag.StringVar(&cfgname, "config", "", "YAML file with format, vars, grid, and exprs")
	flag.Func("given", "x=value variable definition (x, y, or z; any number of times)", func(s string) error {
		return set(&flags.Vars, s)
	})
	flag.Func("grid", "x=from:to:step sampling axis (x, y, or z; any number of times)", func(s string) error {
		return set(&flags.Grid, s)
	})
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate terms")
	flag.BoolVar(&echo, "echo", false, "print compiled programs")
	flag.BoolVar(&funcs, "funcs", false, "list available functions and constants, then exit")
	flag.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := newLogger(logLevel)
	if funcs {
		listFuncs(os.Stdout)
		return
	}

	cfg := new(config)
	if cfgname != "" {
		c, err := loadConfig(cfgname)
		if err != nil {
			logger.Fatal().Err(err).Str("config", cfgname).Msg("failed to load config")
		}
		cfg = c
		logger.Info().Str("config", cfgname).Int("exprs", len(cfg.Exprs)).Msg("loaded config")
	}
	if err := cfg.merge(&flags); err != nil {
		logger.Fatal().Err(err).Msg("invalid flags")
	}

	std := flag.NArg() == 0 && len(cfg.Exprs) == 0
	in, err := infile(inname, std)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open input")
	}
	if in != nil {
		terms, err := readTerms(in, nl)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to read input")
		}
		cfg.Exprs = append(cfg.Exprs, terms...)
	}
	cfg.Exprs = append(cfg.Exprs, flag.Args()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, cfg, os.Stdout, logger, echo); err != nil {
		logger.Error().Err(err).Msg("evaluation failed")
		stop()
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("cmd", "calcterm").Logger().Level(lvl)
}

// errFailed reports that at least one term could not be evaluated.
var errFailed = errors.New("some terms failed")

// run evaluates every term in cfg, writing results to out. Failing terms are
// logged and skipped.
func run(ctx context.Context, cfg *config, out io.Writer, logger zerolog.Logger, echo bool) error {
	vars, bound, err := cfg.vars()
	if err != nil {
		return err
	}
	axes, err := cfg.axes()
	if err != nil {
		return err
	}
	verb := cfg.Format
	if verb == "" {
		verb = "%g"
	}
	var failed bool
	for _, src := range cfg.Exprs {
		log := logger.With().Str("term", src).Logger()
		p, err := calcterm.Build(src)
		if err != nil {
			log.Error().Err(err).Msg("invalid term")
			failed = true
			continue
		}
		log.Debug().Stringer("program", p).Int("len", p.Len()).Msg("compiled")
		for _, v := range p.Vars() {
			name := strings.ToLower(v)
			if !bound[name] && !slices.ContainsFunc(axes, func(a axis) bool { return a.name == name }) {
				log.Warn().Str("var", v).Msg("variable is not given")
			}
		}
		if echo {
			fmt.Fprintf(out, "%v : ", p)
		}
		if len(axes) == 0 {
			r, err := p.RunVars(vars)
			if err != nil {
				log.Error().Err(err).Msg("evaluation failed")
				failed = true
				continue
			}
			fmt.Fprintf(out, verb+"\n", r)
			continue
		}
		if echo {
			fmt.Fprintln(out)
		}
		rows, err := grid(ctx, p, vars, axes)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			log.Error().Err(err).Msg("grid evaluation failed")
			failed = true
			continue
		}
		log.Debug().Int("points", len(rows)).Msg("sampled grid")
		w := bufio.NewWriter(out)
		for _, s := range rows {
			for _, x := range s.at {
				fmt.Fprintf(w, verb+"\t", x)
			}
			fmt.Fprintf(w, verb+"\n", s.r)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

// readTerms reads terms from in. With nl, each non-blank line is a separate
// term; otherwise the whole input is one term.
func readTerms(in io.Reader, nl bool) ([]string, error) {
	if !nl {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(b)) == "" {
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var r []string
	br := bufio.NewReader(in)
	for {
		line, err := br.ReadString('\n')
		if t := strings.TrimRight(line, "\r\n"); strings.TrimSpace(t) != "" {
			r = append(r, t)
		}
		switch err {
		case nil: // next line
		case io.EOF:
			return r, nil
		default:
			return r, err
		}
	}
}

func infile(inname string, std bool) (io.Reader, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}

func listFuncs(w io.Writer) {
	for _, name := range calcterm.Names() {
		fn, err := calcterm.Resolve(name)
		if err != nil {
			panic("calcterm: listed name does not resolve: " + name)
		}
		switch fn.Arity() {
		case 0:
			fmt.Fprintln(w, name)
		case 1:
			fmt.Fprintf(w, "%s(x)\n", name)
		default:
			fmt.Fprintf(w, "%s(x, y)\n", name)
		}
	}
}
