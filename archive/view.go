// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package archive provides uniform pattern-based file lookup over the three
// container shapes a scene may arrive in: a plain directory, a zip, or a
// (possibly gzipped) tar. Lookups never extract the archive; materialization
// is a separate, explicit step.
package archive

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Kind is the closed set of recognized container formats.
type Kind string

const (
	// KindDirectory is a scene stored as a plain directory tree.
	KindDirectory Kind = "directory"
	// KindZip is a zip container.
	KindZip Kind = "zip"
	// KindTar is a tar container, optionally gzip-compressed.
	KindTar Kind = "tar"
	// KindPlainFile is a single uncontained file.
	KindPlainFile Kind = "file"
)

// ErrNotSupported is returned when a path is none of the recognized container
// formats.
var ErrNotSupported = errors.New("container format not supported")

// View is a scene locator: an absolute path plus its container kind. The kind
// is sniffed exactly once, at construction; it is never re-probed on lookup.
type View struct {
	Path string
	Kind Kind
}

// NewView detects the container kind of path and returns a locator for it.
func NewView(path string) (*View, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	kind, err := detectKind(abs)
	if err != nil {
		return nil, err
	}
	return &View{Path: abs, Kind: kind}, nil
}

func detectKind(path string) (Kind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return KindDirectory, nil
	}
	if isZip(path) {
		return KindZip, nil
	}
	if isTar(path) {
		return KindTar, nil
	}
	if info.Mode().IsRegular() {
		return KindPlainFile, nil
	}
	return "", ErrNotSupported
}

func isZip(path string) bool {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	reader.Close()
	return true
}

func isTar(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()
	reader, closer, err := tarReader(file)
	if err != nil {
		return false
	}
	defer closer()
	_, err = reader.Next()
	return err == nil
}

// tarReader wraps file in a tar reader, transparently unwrapping a gzip layer
// when one is present.
func tarReader(file *os.File) (*tar.Reader, func() error, error) {
	unzipped, err := gzip.NewReader(file)
	if err == nil {
		return tar.NewReader(unzipped), unzipped.Close, nil
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return nil, nil, err
	}
	return tar.NewReader(file), func() error { return nil }, nil
}

// ListMatching returns the virtual paths of all members matching pattern. For
// a directory the basename is tried first, falling back to a recursive walk;
// for zip and tar containers the member names are matched without extraction.
func (v *View) ListMatching(pattern *regexp.Regexp) ([]string, error) {
	switch v.Kind {
	case KindDirectory:
		if pattern.MatchString(filepath.Base(v.Path)) {
			return []string{v.Path}, nil
		}
		var matches []string
		err := filepath.WalkDir(v.Path, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != v.Path && pattern.MatchString(entry.Name()) {
				matches = append(matches, path)
			}
			return nil
		})
		return matches, err
	case KindZip, KindTar:
		members, err := v.members()
		if err != nil {
			return nil, err
		}
		var matches []string
		for _, member := range members {
			if pattern.MatchString(member) {
				matches = append(matches, filepath.Join(v.Path, member))
			}
		}
		return matches, nil
	case KindPlainFile:
		if pattern.MatchString(filepath.Base(v.Path)) {
			return []string{v.Path}, nil
		}
		return nil, nil
	}
	return nil, ErrNotSupported
}

// members lists the container member names with any trailing separator
// stripped.
func (v *View) members() ([]string, error) {
	switch v.Kind {
	case KindZip:
		reader, err := zip.OpenReader(v.Path)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		names := make([]string, 0, len(reader.File))
		for _, member := range reader.File {
			names = append(names, strings.TrimSuffix(member.Name, "/"))
		}
		return names, nil
	case KindTar:
		file, err := os.Open(v.Path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader, closer, err := tarReader(file)
		if err != nil {
			return nil, err
		}
		defer closer()
		var names []string
		for {
			header, err := reader.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			names = append(names, strings.TrimSuffix(header.Name, "/"))
		}
		return names, nil
	}
	return nil, fmt.Errorf("%s has no members to list", v.Kind)
}

// ReadFile returns the contents of a virtual path previously returned by
// ListMatching.
func (v *View) ReadFile(path string) ([]byte, error) {
	switch v.Kind {
	case KindDirectory, KindPlainFile:
		return os.ReadFile(path)
	case KindZip:
		reader, err := zip.OpenReader(v.Path)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		member, err := filepath.Rel(v.Path, path)
		if err != nil {
			return nil, err
		}
		file, err := reader.Open(filepath.ToSlash(member))
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	case KindTar:
		member, err := filepath.Rel(v.Path, path)
		if err != nil {
			return nil, err
		}
		file, err := os.Open(v.Path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader, closer, err := tarReader(file)
		if err != nil {
			return nil, err
		}
		defer closer()
		want := filepath.ToSlash(member)
		for {
			header, err := reader.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			if strings.TrimSuffix(header.Name, "/") == want {
				return io.ReadAll(reader)
			}
		}
		return nil, fmt.Errorf("member %s not found in %s", want, v.Path)
	}
	return nil, ErrNotSupported
}
