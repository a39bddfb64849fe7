// Package main implements the cp front-end driver.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/you-not-fish/cp/internal/config"
	"github.com/you-not-fish/cp/internal/syntax"
	"github.com/you-not-fish/cp/internal/types"
	"github.com/you-not-fish/cp/internal/types2"
)

// Driver flags
var (
	emitTokens   = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST      = flag.Bool("emit-ast", false, "Output AST")
	astFormat    = flag.String("ast-format", "text", "AST output format (text or dump)")
	emitTypedAST = flag.Bool("emit-typed-ast", false, "Output typed AST")
	emitLayout   = flag.Bool("emit-layout", false, "Output struct layouts")
	configPath   = flag.String("config", "", "YAML configuration file")
	maxDepth     = flag.Int("max-depth", 0, "Nesting limit (overrides the configuration file)")
	version      = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cp front end %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: cpc [options] <file.cp>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("cpc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: cpc [options] <file.cp>")
		os.Exit(1)
	}
	filename := args[0]

	if *emitTokens {
		os.Exit(runEmitTokens(filename))
	}

	conf, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *emitAST:
		os.Exit(runEmitAST(filename, conf))
	case *emitTypedAST:
		os.Exit(runEmitTypedAST(filename, conf))
	case *emitLayout:
		os.Exit(runEmitLayout(filename, conf))
	}
	os.Exit(runCheck(filename, conf))
}

// loadConfig builds the checker configuration from the -config file and
// the command-line overrides.
func loadConfig() (*types2.Config, error) {
	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}
	if *maxDepth > 0 {
		cfg.MaxDepth = *maxDepth
	}
	return cfg.CheckerConfig()
}

// parseFile reads and parses filename, reporting failures on stderr.
func parseFile(filename string, conf *types2.Config) (*syntax.Block, bool) {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, false
	}
	defer f.Close()

	file, err := syntax.Parse(filename, f, syntax.WithMaxDepth(parserDepth(conf.MaxDepth)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", describeError(err))
		return nil, false
	}
	return file, true
}

// parserDepth returns the parser nesting limit for the checker limit n.
// The parser spends up to two frames on a level the checker counts once,
// so nesting past n is reported by the checker rather than the parser.
func parserDepth(n int) int {
	if n <= 0 {
		n = types2.DefaultMaxDepth
	}
	return 2 * n
}

// describeError formats a lexical or syntax error like a diagnostic.
func describeError(err error) string {
	var lexErr *syntax.LexError
	if errors.As(err, &lexErr) {
		return fmt.Sprintf("%s: LexError: %s", lexErr.Pos, lexErr.Msg)
	}
	var parseErr *syntax.ParseError
	if errors.As(err, &parseErr) {
		return strings.Replace(parseErr.Error(), ": ", ": ParseError: ", 1)
	}
	return err.Error()
}

// checkFile type-checks file and prints its diagnostics on stderr. It
// reports whether the file is well-formed.
func checkFile(file *syntax.Block, conf *types2.Config) (*types2.Info, bool) {
	info := &types2.Info{}
	diags, err := types2.Check(file, conf, info)
	printDiagnostics(os.Stderr, diags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return info, false
	}
	return info, len(diags) == 0
}

func printDiagnostics(w io.Writer, diags []*types2.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s: %s\n", d.Pos, d.Kind, d.Msg)
	}
}

// runCheck parses and type-checks the input file.
func runCheck(filename string, conf *types2.Config) int {
	file, ok := parseFile(filename, conf)
	if !ok {
		return 1
	}
	if _, ok := checkFile(file, conf); !ok {
		return 1
	}
	return 0
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	toks, err := syntax.Tokenize(filename, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", describeError(err))
		return 1
	}

	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))
	for _, tok := range toks {
		lit := ""
		if tok.Lit != "" {
			lit = formatLiteral(tok.Lit)
		}
		fmt.Printf("%-20s %-12s %s\n", tok.Pos, tok.Tok, lit)
	}
	return 0
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string, conf *types2.Config) int {
	file, ok := parseFile(filename, conf)
	if !ok {
		return 1
	}

	switch *astFormat {
	case "dump":
		syntax.Fdump(os.Stdout, file)
	case "text":
		syntax.Fprint(os.Stdout, file)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown AST format %q\n", *astFormat)
		return 1
	}
	return 0
}

// runEmitTypedAST parses, type-checks, and outputs the typed AST.
func runEmitTypedAST(filename string, conf *types2.Config) int {
	file, ok := parseFile(filename, conf)
	if !ok {
		return 1
	}
	info, ok := checkFile(file, conf)

	syntax.FprintTyped(os.Stdout, file, func(e syntax.Expr) string {
		if t := info.TypeOf(e); t != nil {
			return t.String()
		}
		return ""
	})

	if !ok {
		return 1
	}
	return 0
}

// runEmitLayout parses, type-checks, and outputs struct layouts.
func runEmitLayout(filename string, conf *types2.Config) int {
	file, ok := parseFile(filename, conf)
	if !ok {
		return 1
	}
	info, ok := checkFile(file, conf)

	sizes := conf.Sizes
	if sizes == nil {
		sizes = types.DefaultSizes
	}

	fmt.Println("=== Struct Layouts ===")
	fmt.Println()

	syntax.Inspect(file, func(n syntax.Node) bool {
		switch d := n.(type) {
		case *syntax.TemplateDecl:
			// template structs have no layout
			return false
		case *syntax.StructDecl:
			printLayout(d, info, sizes)
		}
		return true
	})

	if !ok {
		return 1
	}
	return 0
}

func printLayout(d *syntax.StructDecl, info *types2.Info, sizes *types.Sizes) {
	tn, ok := info.Defs[d.Name].(*types.TypeName)
	if !ok {
		return
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return
	}
	st := named.Struct()
	if st == nil {
		return
	}
	sizes.ComputeLayout(st)

	fmt.Printf("struct %s {\n", d.Name.Value)
	for i, field := range st.Fields() {
		name := field.Name()
		if name == "" {
			name = "_"
		}
		fmt.Printf("    %-10s %-15s // offset: %d, size: %d, align: %d\n",
			name, field.Type(), st.Offset(i), sizes.Sizeof(field.Type()), sizes.Alignof(field.Type()))
	}
	fmt.Printf("}\n")
	fmt.Printf("// size: %d, align: %d\n", st.Size(), st.Align())
	fmt.Println()
}
