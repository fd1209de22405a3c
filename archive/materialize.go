package archive

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Unpack materializes the container into targetDir and returns a locator for
// the new directory. When every member lives beneath a single common root
// prefix that is itself a directory member, the prefix is stripped while the
// relative subdirectory structure is recreated; otherwise members are
// extracted verbatim. A directory scene is already materialized and is
// returned unchanged.
//
// Unpack refuses a non-empty existing target rather than merging into it.
func (v *View) Unpack(targetDir string) (*View, error) {
	if v.Kind == KindDirectory {
		return v, nil
	}
	if v.Kind != KindZip && v.Kind != KindTar {
		return nil, fmt.Errorf("cannot unpack %s container: %w", v.Kind, ErrNotSupported)
	}
	if err := prepareTarget(targetDir); err != nil {
		return nil, err
	}
	var err error
	if v.Kind == KindZip {
		err = v.unpackZip(targetDir)
	} else {
		err = v.unpackTar(targetDir)
	}
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, err
	}
	return &View{Path: abs, Kind: KindDirectory}, nil
}

func prepareTarget(targetDir string) error {
	entries, err := os.ReadDir(targetDir)
	if err == nil && len(entries) > 0 {
		return fmt.Errorf("unpack target %s already exists and is not empty", targetDir)
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(targetDir, 0755)
}

func (v *View) unpackZip(targetDir string) error {
	reader, err := zip.OpenReader(v.Path)
	if err != nil {
		return err
	}
	defer reader.Close()

	names := make([]string, 0, len(reader.File))
	for _, member := range reader.File {
		names = append(names, member.Name)
	}
	prefix := commonPrefix(names)
	if !strings.HasSuffix(prefix, "/") {
		prefix = ""
	}

	for _, member := range reader.File {
		rel, ok := relativeMember(member.Name, prefix)
		if !ok {
			continue
		}
		outname := filepath.Join(targetDir, rel)
		if strings.HasSuffix(member.Name, "/") {
			if err := os.MkdirAll(outname, 0755); err != nil {
				return err
			}
			continue
		}
		if err := writeMember(outname, func() (io.ReadCloser, error) { return member.Open() }); err != nil {
			return err
		}
	}
	return nil
}

func (v *View) unpackTar(targetDir string) error {
	names, dirs, err := v.tarListing()
	if err != nil {
		return err
	}
	prefix := commonPrefix(names)
	trimmed := strings.TrimSuffix(prefix, "/")
	if !dirs[trimmed] {
		prefix = ""
	} else {
		prefix = trimmed + "/"
	}

	file, err := os.Open(v.Path)
	if err != nil {
		return err
	}
	defer file.Close()
	reader, closer, err := tarReader(file)
	if err != nil {
		return err
	}
	defer closer()

	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		rel, ok := relativeMember(header.Name, prefix)
		if !ok {
			continue
		}
		outname := filepath.Join(targetDir, rel)
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(outname, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeMember(outname, func() (io.ReadCloser, error) {
				return io.NopCloser(reader), nil
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// tarListing returns the member names plus the set of directory members.
func (v *View) tarListing() ([]string, map[string]bool, error) {
	file, err := os.Open(v.Path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	reader, closer, err := tarReader(file)
	if err != nil {
		return nil, nil, err
	}
	defer closer()

	var names []string
	dirs := make(map[string]bool)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		names = append(names, header.Name)
		if header.Typeflag == tar.TypeDir {
			dirs[strings.TrimSuffix(header.Name, "/")] = true
		}
	}
	return names, dirs, nil
}

// relativeMember strips the common root prefix and rejects members that would
// escape the target directory.
func relativeMember(name, prefix string) (string, bool) {
	rel := strings.TrimPrefix(name, prefix)
	rel = strings.Trim(rel, "/")
	if rel == "" || rel == "." || strings.Contains(rel, "..") {
		return "", false
	}
	return filepath.FromSlash(rel), true
}

func writeMember(outname string, open func() (io.ReadCloser, error)) error {
	if err := os.MkdirAll(filepath.Dir(outname), 0755); err != nil {
		return err
	}
	source, err := open()
	if err != nil {
		return err
	}
	defer source.Close()
	out, err := os.Create(outname)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, source)
	return err
}

// commonPrefix returns the longest common string prefix of names.
func commonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := names[0]
	for _, name := range names[1:] {
		for !strings.HasPrefix(name, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
