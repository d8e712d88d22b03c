// Large List File Generator
//
// This tool generates a large list-format file for performance testing and
// profiling. Each top-level element is one record: a dict of fields written
// with the formatter, so every quoting style (bare, braced and escaped words)
// shows up in the output.
//
// Usage:
//
//	go run main.go > large.tcl
//	go run main.go 20000000 > large.tcl  # Specify target size in bytes
//
// The result loads as a nested list: tclcodec check --as nested large.tcl
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/formatter"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	hosts = []string{
		"alpha", "bravo", "charlie", "delta.example.org",
		"echo-01", "foxtrot_02", "golf.internal",
	}

	messages = []string{
		"service started",
		"connection reset by peer",
		"read {config} from disk",
		`path C:\temp\cache`,
		"value $HOME expanded",
		"",
		"unbalanced } brace",
		"quote \" inside",
		"tab\tseparated",
		"multi\nline",
		"[bracketed] text",
	}

	tags = []string{
		"prod", "staging", "canary", "eu-west", "us-east", "batch",
	}

	levels = []string{"debug", "info", "warn", "error"}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	w := bufio.NewWriter(os.Stdout)
	defer func() { _ = w.Flush() }()

	current := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	bytesWritten := 0
	recordCount := 0

	for bytesWritten < targetSize {
		record, err := formatter.Dump(generateRecord(current))
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to format record: %v\n", err)
			os.Exit(1)
		}

		n, _ := fmt.Fprintln(w, record)
		bytesWritten += n
		recordCount++

		current = current.Add(time.Duration(rand.Intn(5000)+1) * time.Millisecond)
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d records\n", bytesWritten, recordCount)
}

func generateRecord(ts time.Time) *ast.Dict {
	record := ast.NewDict(
		ast.E("ts", ast.Text(ts.Format(time.RFC3339))),
		ast.E("host", ast.Text(pick(hosts))),
		ast.E("level", ast.Text(pick(levels))),
		ast.E("msg", ast.Text(pick(messages))),
		ast.E("latency", ast.NewFloat(float64(rand.Intn(100000))/100)),
	)

	// 30% of records carry tags, 10% carry a nested attribute dict
	switch n := rand.Intn(10); {
	case n < 3:
		record.Set("tags", ast.NewTextList(pick(tags), pick(tags)))
	case n == 3:
		record.Set("attrs", ast.NewDict(
			ast.E("pid", ast.NewInt(int64(rand.Intn(65536)))),
			ast.E("user", ast.Text(pick(hosts))),
		))
	}

	return record
}

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}
