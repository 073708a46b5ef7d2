package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/abcmeta/abc"
	"github.com/dhamidi/abcmeta/as3"
	"github.com/dhamidi/abcmeta/config"
	"github.com/dhamidi/abcmeta/format"
	"github.com/dhamidi/abcmeta/swf"
)

var log = commonlog.GetLogger("abcmeta")

// inputPath picks the movie to read: the positional argument, then the
// --swf flag, then the configuration file.
func (g *globals) inputPath(args []string, flag string) (string, error) {
	switch {
	case len(args) > 0:
		return args[0], nil
	case flag != "":
		return flag, nil
	case g.config.SWF != "":
		return g.config.Path(g.config.SWF), nil
	}
	return "", errors.New("no input file given (pass a .swf or .abc file)")
}

// loadModule reads a .swf movie or a bare .abc block.
func loadModule(path string) (*as3.Module, error) {
	log.Noticef("parsing %s", path)

	var files []*abc.File
	switch filepath.Ext(path) {
	case ".abc":
		f, err := abc.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("parse abc file: %w", err)
		}
		files = []*abc.File{f}
	default:
		movie, err := swf.DecodeFile(path)
		if err != nil {
			return nil, fmt.Errorf("parse swf file: %w", err)
		}
		if files, err = movie.ABC(); err != nil {
			return nil, fmt.Errorf("parse swf file: %w", err)
		}
	}
	return as3.Load(files)
}

// outputs merges output flags over the configured output files.
func (g *globals) outputs(jsonPath, cborPath string) config.Output {
	out := config.Output{JSON: jsonPath, CBOR: cborPath}
	if out.JSON == "" && out.CBOR == "" {
		out.JSON = g.config.Path(g.config.Output.JSON)
		out.CBOR = g.config.Path(g.config.Output.CBOR)
	}
	return out
}

// writeOutputs writes data to the requested files. Without any output file
// JSON is printed to standard output. Both encodings are produced in memory
// first, and files already written are removed when a later one fails.
func writeOutputs(data any, out config.Output) error {
	if out.JSON == "" && out.CBOR == "" {
		if err := format.NewJSONEncoder(os.Stdout).Encode(data); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}

	type output struct {
		path string
		buf  bytes.Buffer
	}
	var outputs []*output
	if out.JSON != "" {
		o := &output{path: out.JSON}
		if err := format.NewJSONEncoder(&o.buf).Encode(data); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		outputs = append(outputs, o)
	}
	if out.CBOR != "" {
		o := &output{path: out.CBOR}
		if err := format.NewCBOREncoder(&o.buf).Encode(data); err != nil {
			return fmt.Errorf("encode cbor: %w", err)
		}
		outputs = append(outputs, o)
	}

	for i, o := range outputs {
		log.Noticef("saving %s", o.path)
		if err := os.WriteFile(o.path, o.buf.Bytes(), 0o644); err != nil {
			for _, written := range outputs[:i+1] {
				os.Remove(written.path)
			}
			return fmt.Errorf("save %s: %w", o.path, err)
		}
	}
	return nil
}
