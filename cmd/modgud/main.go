package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/funvibe/modgud/internal/config"
	"github.com/funvibe/modgud/internal/console"
	"github.com/funvibe/modgud/internal/guard"
	"github.com/funvibe/modgud/internal/pipeline"
	"github.com/funvibe/modgud/internal/prettyprinter"
	"github.com/funvibe/modgud/internal/rewriter"
	"github.com/funvibe/modgud/internal/treedoc"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "rewrite":
		handleRewrite(os.Args[2:])
	case "check":
		handleCheck(os.Args[2:])
	case "version", "-version", "--version":
		fmt.Printf("modgud %s\n", config.Version)
	case "help", "-help", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: modgud <command> [arguments]

Commands:
  rewrite <tree.yaml> --func <name> [--slot <ident>]
        Rewrite the named function in a tree document to
        single-return form and print the result.
  check <guards.yaml>
        Validate a guard manifest and list what it registers.
  version
        Print the library version.
`)
}

func handleRewrite(args []string) {
	var file, funcName, slot string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--func":
			if i+1 >= len(args) {
				fatal("--func requires a value")
			}
			i++
			funcName = args[i]
		case "--slot":
			if i+1 >= len(args) {
				fatal("--slot requires a value")
			}
			i++
			slot = args[i]
		default:
			if strings.HasPrefix(args[i], "-") {
				fatal("unknown flag: " + args[i])
			}
			file = args[i]
		}
	}
	if file == "" || funcName == "" {
		fatal("usage: modgud rewrite <tree.yaml> --func <name> [--slot <ident>]")
	}

	program, err := treedoc.Load(file)
	if err != nil {
		fatal(err.Error())
	}

	var opts []rewriter.Option
	if slot != "" {
		opts = append(opts, rewriter.WithResultSlot(slot))
	}

	ctx := pipeline.New(&rewriter.RewriteProcessor{Options: opts}).Run(&pipeline.PipelineContext{
		FilePath:   file,
		Program:    program,
		TargetName: funcName,
	})

	if ctx.HasErrors() {
		out := console.NewFormatter(os.Stderr)
		for _, e := range ctx.Errors {
			out.PrintDiagnostic(file, e)
		}
		os.Exit(1)
	}

	out := console.NewFormatter(os.Stdout)
	out.Printf("%s trace=%s\n", out.Green("rewrote "+ctx.Tag), ctx.TraceID)
	printer := prettyprinter.NewCodePrinter()
	out.Printf("%s", printer.PrintFunction(ctx.Function))
}

func handleCheck(args []string) {
	if len(args) != 1 {
		fatal("usage: modgud check <guards.yaml>")
	}
	manifest, err := guard.LoadManifest(args[0])
	if err != nil {
		fatal(err.Error())
	}
	reg := guard.NewRegistry()
	if err := manifest.Apply(reg); err != nil {
		fatal(err.Error())
	}

	out := console.NewFormatter(os.Stdout)
	for _, name := range reg.List("") {
		out.Printf("%s\n", name)
	}
	for _, ns := range reg.Namespaces() {
		for _, name := range reg.List(ns) {
			out.Printf("%s/%s\n", ns, name)
		}
	}
	out.Printf("%s\n", out.Green(fmt.Sprintf("ok: %d guard(s) registered", len(manifest.Guards))))
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
