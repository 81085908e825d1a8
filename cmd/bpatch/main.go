// Command bpatch overwrites bytes inside an existing binary file. It exists
// for build pipelines that need to inject strings or little-endian numbers
// into disk images, firmware blobs and other flat binaries without opening
// a hex editor.
//
// Write a padded string at offset 512 of a disk image:
//
//	bpatch -f build/disk.img -a 512 -t str -l 20 -p 0x2E -d "Hello, World!"
//
// Write the number 2 as a two byte little-endian word at offset 544:
//
//	bpatch -f build/disk.img -a 544 -t dw -d 2
package main

import (
	"errors"
	"fmt"
	"github.com/bpatch/bpatch-go/pkg/build"
	"github.com/bpatch/bpatch-go/pkg/core"
	"github.com/bpatch/bpatch-go/pkg/io"
	"github.com/bpatch/bpatch-go/pkg/resolve"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"os"
)

// Exit codes, kept stable for scripting.
const (
	exitOK    = 0
	exitUsage = 1
	exitOpen  = 2
	exitWrite = 3
)

var file = kingpin.Flag("file", "Binary file to patch. Environment variables, ~ and wildcards are expanded.").Short('f').String()
var address = kingpin.Flag("address", "Byte offset to patch at, base 10.").Short('a').Default("0").String()
var typeTag = kingpin.Flag("type", "Data type to write: db, dw, dd, dq or str.").Short('t').Default("db").String()
var length = kingpin.Flag("length", "Payload length for str data. Data is padded or truncated to fit.").Short('l').Default("1").String()
var pad = kingpin.Flag("pad", "Pad byte for str data, e.g. 0x2E.").Short('p').Default("0").String()
var data = kingpin.Flag("data", "Data to write. \\r and \\n are translated.").Short('d').String()
var showVersion = kingpin.Flag("version", "Print version information.").Short('v').Bool()
var verbose = kingpin.Flag("verbose", "Enable verbose logging.").Bool()

func main() {
	kingpin.Parse()

	logger := log.NewLogfmtLogger(os.Stderr)
	if !*verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	if *showVersion {
		fmt.Println(build.Summary())
	}

	os.Exit(run(logger, afero.NewOsFs()))
}

func run(logger log.Logger, fs afero.Fs) int {
	if *file == "" {
		fmt.Fprintln(os.Stderr, "error: no binary file supplied")
		return exitUsage
	}
	if *data == "" {
		fmt.Fprintln(os.Stderr, "error: no data supplied")
		return exitUsage
	}

	path, err := bpresolve.ExpandPath(fs, *file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitUsage
	}

	req := bpatch.Request{
		File:   path,
		Offset: uint64(bpatch.Integer(*address)),
		Type:   bpresolve.DataTypeFor(*typeTag),
		Length: uint64(bpatch.Integer(*length)),
		Pad:    bpresolve.PadByte(*pad),
		Data:   bpresolve.Escape(*data),
	}
	level.Debug(logger).Log("msg", "resolved request", "path", req.File, "offset", req.Offset, "type", req.Type, "length", req.Length)

	if err := bpio.New(fs, logger).Apply(req.File, req.Offset, req.Encode()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var openErr *bpio.OpenError
		if errors.As(err, &openErr) {
			return exitOpen
		}
		return exitWrite
	}
	return exitOK
}
