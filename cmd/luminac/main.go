package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/sema"
	"github.com/lumina-lang/luminac/internal/util/cliutil"
	"github.com/lumina-lang/luminac/internal/version"
	"github.com/lumina-lang/luminac/internal/vfs"
)

type checkArgs struct {
	Entry       string   `arg:"positional,required" help:"Path to the entry shader file"`
	IncludeDirs []string `arg:"--include-dir,separate" help:"Additional directory to search for #include targets (repeatable)"`
}

type allArgs struct {
	Check   *checkArgs `arg:"subcommand:check" help:"Parse and check a shader for diagnostics"`
	Version *struct{}  `arg:"subcommand:version" help:"Show luminac version information"`
}

func printVersion() {
	fmt.Printf("%s\n\n", version.AsciiArt)
}

func main() {
	var args allArgs
	p, err := arg.NewParser(arg.Config{}, &args)
	if err != nil {
		log.Fatalf("failed to create arg parser: %s", err)
	}

	err = p.Parse(os.Args[1:])
	switch {
	case err == arg.ErrHelp:
		printVersion()
		p.WriteHelp(os.Stdout)
		os.Exit(0)
	case err != nil:
		fmt.Printf("error: %v\n", err)
		p.WriteUsage(os.Stdout)
		os.Exit(1)
	}

	if args.Check != nil {
		cmdCheck(args.Check)
		return
	}

	printVersion()
}

// cmdCheck tokenizes, parses and semantically checks the given entry
// file plus every file it transitively includes, then renders every
// recorded diagnostic to stderr. The process exits nonzero if any
// diagnostic was recorded.
func cmdCheck(a *checkArgs) {
	var diags diag.Collector
	resolver := vfs.NewResolver(a.IncludeDirs)

	_, err := sema.Analyze(a.Entry, resolver, &diags)
	if err != nil {
		fmt.Fprintln(os.Stderr, cliutil.ColorizeRedBold("error: ")+err.Error())
		os.Exit(1)
	}

	for _, d := range diags.All() {
		fmt.Fprintln(os.Stderr, cliutil.ColorizeRed(d.String()))
		fmt.Fprintln(os.Stderr)
	}

	if !diags.Empty() {
		os.Exit(1)
	}
}
