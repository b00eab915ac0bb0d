//go:build ignore

// gen_vm_expects reads a test file defining a chained test case builder, and
// writes out a standalone func for every with* or expect* builder method, so
// that options may be passed around as plain values:
//
//	vmTest("name").apply(withVMProgram(src), expectVMBytes(1, 2))
package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout

	recv    = flag.String("recv", "vmTestCase", "builder receiver type")
	infix   = flag.String("infix", "VM", "inserted into every generated func name")
	fmtTool = flag.String("fmt", "goimports", "formatter to pipe output through")
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed to open %v: %v", name, err)
		}
		args = args[1:]
		in = f
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		out = f
	}
}

func main() {
	parseFlags()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	ready := make(chan struct{})

	eg.Go(func() error {
		fmtCmd := exec.CommandContext(ctx, *fmtTool)
		fmtPipe, err := fmtCmd.StdinPipe()
		if err != nil {
			return err
		}

		defer out.Close()
		fmtCmd.Stdout = out
		fmtCmd.Stderr = os.Stderr

		out = fmtPipe

		close(ready)
		if err := fmtCmd.Run(); err != nil {
			return fmt.Errorf("%v run failed: %w", *fmtTool, err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ready:
		}

		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()

		return run(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func builderMethod() *regexp.Regexp {
	return regexp.MustCompile(`func \(\w+ ` + regexp.QuoteMeta(*recv) + `\) (expect|with)(.+?)\((.+?)\) ` + regexp.QuoteMeta(*recv))
}

func run(ctx context.Context) error {
	var buf bytes.Buffer
	buf.Grow(1024)
	buf.WriteString("package main\n\n")

	buf.WriteString("// @generated from ")
	buf.WriteString(in.Name())
	buf.WriteString("\n\n")

	if args := flag.Args(); len(args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_vm_expects.go --")
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	pattern := builderMethod()
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := pattern.FindSubmatch(sc.Bytes()); len(match) > 0 {
			writeWrapper(&buf, match[1], match[2], match[3])
		}

		if buf.Len() > 0 {
			if _, err := buf.WriteTo(out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}

// writeWrapper writes a func taking the same params as the named builder
// method, returning a closure that applies it.
func writeWrapper(buf *bytes.Buffer, baseName, whatName, params []byte) {
	fmt.Fprintf(buf, "func %s%s%s(%s) func(%s) %s {\n", baseName, *infix, whatName, params, *recv, *recv)
	fmt.Fprintf(buf, "\treturn func(vmt %s) %s {\n", *recv, *recv)
	fmt.Fprintf(buf, "\t\treturn vmt.%s%s(", baseName, whatName)
	for i, part := range bytes.Split(params, []byte(",")) {
		if i > 0 {
			buf.WriteString(", ")
		}
		fields := bytes.Fields(bytes.TrimSpace(part))
		buf.Write(fields[0])
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			buf.WriteString("...")
		}
	}
	buf.WriteString(")\n\t}\n}\n\n")
}
