// Command gen_fixtures runs every testdata/*.fish program to completion and
// writes its captured stdout next to it as testdata/<name>.expected, for
// manual inspection when adding or debugging a scenario -- interpreter_test.go
// computes its own expected output directly (a quine's output must equal its
// own source; fizzbuzz's must equal the standard 1-100 sequence) rather than
// reading these files, so a stale .expected here can't silently pass a test.
//
// Run by hand via:
//
//	go run scripts/gen_fixtures.go testdata
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	fish "github.com/fish-lang/gofish"
)

func main() {
	flag.Parse()
	dir := "testdata"
	if args := flag.Args(); len(args) > 0 {
		dir = args[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := run(ctx, dir); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.fish"))
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, name := range matches {
		name := name
		eg.Go(func() error { return genFixture(ctx, name) })
	}
	return eg.Wait()
}

func genFixture(ctx context.Context, name string) error {
	src, err := os.ReadFile(name)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	in := fish.New(string(src), fish.WithOutput(&out), fish.WithMaxSteps(1_000_000))
	if err := in.RunToEnd(ctx); err != nil {
		return fmt.Errorf("%v: %w", name, err)
	}

	dst := strings.TrimSuffix(name, filepath.Ext(name)) + ".expected"
	return os.WriteFile(dst, out.Bytes(), 0o644)
}
