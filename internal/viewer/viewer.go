// Package viewer selects the device program used to display a batch of
// image files.
package viewer

import (
	"path/filepath"
	"strings"

	"github.com/idun-project/idun-defaults/internal/proxy"
	"mvdan.cc/sh/v3/syntax"
)

// Class is the viewer family derived from a file's extension.
type Class int

const (
	ClassDefault Class = iota
	ClassKoa
	ClassZx
	ClassVdc
)

var classByExt = map[string]Class{
	"koa": ClassKoa,
	"zx":  ClassZx,
	"vdc": ClassVdc,
}

var programByClass = map[Class]string{
	ClassKoa:     "koa-viewer",
	ClassZx:      "zx-viewer",
	ClassVdc:     "vdc-viewer",
	ClassDefault: "vdc-viewer",
}

// Classify inspects every filename's lowercase suffix and returns the
// single class shared by the whole batch. Any unrecognized or missing
// extension, or a mix of classes, yields ClassDefault.
func Classify(filenames []string) Class {
	batch := ClassDefault
	for _, name := range filenames {
		ext := extension(name)
		class, ok := classByExt[ext]
		if !ok {
			return ClassDefault
		}
		if batch == ClassDefault {
			batch = class
		} else if batch != class {
			return ClassDefault
		}
	}
	return batch
}

// Program returns the device viewer bound to a class.
func Program(c Class) string {
	return programByClass[c]
}

// Request builds the exec forward for the batch. Filenames are quoted
// so embedded spaces and metacharacters round-trip through the device
// shell's argument string.
func Request(filenames []string) (proxy.Request, error) {
	args := []string{Program(Classify(filenames))}
	for _, name := range filenames {
		quoted, err := syntax.Quote(name, syntax.LangBash)
		if err != nil {
			return proxy.Request{}, err
		}
		args = append(args, quoted)
	}
	return proxy.Request{Name: "exec", Args: args, Kind: proxy.Exec}, nil
}

// extension returns the lowercase suffix without its dot; a name with
// no dot anywhere counts as having no extension.
func extension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}
