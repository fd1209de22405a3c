package archive

import (
	"archive/tar"
	"archive/zip"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
)

// Fixture helpers: the same logical scene materialized as a directory, a zip
// and a tar.

type fixtureFile struct {
	name string
	body string
}

var fixtureScene = []fixtureFile{
	{"scene123/manifest.safe", "<manifest/>"},
	{"scene123/annotation/s1a-iw-grd-vv.xml", "<annotation/>"},
	{"scene123/measurement/s1a-iw-grd-vv.tiff", "tiff-bytes"},
}

func writeFixtureDir(t *testing.T, root string, files []fixtureFile) string {
	for _, file := range files {
		path := filepath.Join(root, filepath.FromSlash(file.name))
		assert.Nil(t, os.MkdirAll(filepath.Dir(path), 0755))
		assert.Nil(t, os.WriteFile(path, []byte(file.body), 0644))
	}
	return filepath.Join(root, "scene123")
}

func writeFixtureZip(t *testing.T, path string, files []fixtureFile) {
	out, err := os.Create(path)
	assert.Nil(t, err)
	writer := zip.NewWriter(out)
	for _, file := range files {
		member, err := writer.Create(file.name)
		assert.Nil(t, err)
		_, err = member.Write([]byte(file.body))
		assert.Nil(t, err)
	}
	assert.Nil(t, writer.Close())
	assert.Nil(t, out.Close())
}

func writeFixtureTar(t *testing.T, path string, files []fixtureFile, gzipped bool, withRootDir bool) {
	out, err := os.Create(path)
	assert.Nil(t, err)
	var writer *tar.Writer
	var gz *gzip.Writer
	if gzipped {
		gz = gzip.NewWriter(out)
		writer = tar.NewWriter(gz)
	} else {
		writer = tar.NewWriter(out)
	}
	if withRootDir {
		assert.Nil(t, writer.WriteHeader(&tar.Header{
			Name: "scene123/", Mode: 0755, Typeflag: tar.TypeDir,
		}))
	}
	for _, file := range files {
		assert.Nil(t, writer.WriteHeader(&tar.Header{
			Name: file.name, Mode: 0644, Size: int64(len(file.body)), Typeflag: tar.TypeReg,
		}))
		_, err = writer.Write([]byte(file.body))
		assert.Nil(t, err)
	}
	assert.Nil(t, writer.Close())
	if gz != nil {
		assert.Nil(t, gz.Close())
	}
	assert.Nil(t, out.Close())
}

func basenames(paths []string) []string {
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = filepath.Base(path)
	}
	sort.Strings(names)
	return names
}

// Actual tests

func TestNewView_DetectsContainerKinds(t *testing.T) {
	// Mock
	root := t.TempDir()
	sceneDir := writeFixtureDir(t, root, fixtureScene)
	zipPath := filepath.Join(root, "scene123.zip")
	writeFixtureZip(t, zipPath, fixtureScene)
	tarPath := filepath.Join(root, "scene123.tar")
	writeFixtureTar(t, tarPath, fixtureScene, false, false)
	tgzPath := filepath.Join(root, "scene123.tar.gz")
	writeFixtureTar(t, tgzPath, fixtureScene, true, false)
	plainPath := filepath.Join(root, "scene123.txt")
	assert.Nil(t, os.WriteFile(plainPath, []byte("not an archive"), 0644))

	// Tested code + Asserts
	for path, kind := range map[string]Kind{
		sceneDir:  KindDirectory,
		zipPath:   KindZip,
		tarPath:   KindTar,
		tgzPath:   KindTar,
		plainPath: KindPlainFile,
	} {
		view, err := NewView(path)
		assert.Nil(t, err)
		assert.Equal(t, kind, view.Kind, path)
	}
}

func TestNewView_MissingPath(t *testing.T) {
	_, err := NewView(filepath.Join(t.TempDir(), "nope"))

	assert.Error(t, err)
}

func TestListMatching_ConsistentAcrossContainers(t *testing.T) {
	// Mock
	root := t.TempDir()
	sceneDir := writeFixtureDir(t, root, fixtureScene)
	zipPath := filepath.Join(root, "scene123.zip")
	writeFixtureZip(t, zipPath, fixtureScene)
	tarPath := filepath.Join(root, "scene123.tar.gz")
	writeFixtureTar(t, tarPath, fixtureScene, true, false)
	pattern := regexp.MustCompile(`s1a-iw-grd-vv\.(?:xml|tiff)$`)

	// Tested code
	var results [][]string
	for _, path := range []string{sceneDir, zipPath, tarPath} {
		view, err := NewView(path)
		assert.Nil(t, err)
		matches, err := view.ListMatching(pattern)
		assert.Nil(t, err)
		results = append(results, matches)
	}

	// Asserts: the same logical set of members regardless of container shape
	expected := []string{"s1a-iw-grd-vv.tiff", "s1a-iw-grd-vv.xml"}
	for _, matches := range results {
		assert.Equal(t, expected, basenames(matches))
	}
}

func TestListMatching_DirectoryBasenameShortCircuits(t *testing.T) {
	// Mock
	root := t.TempDir()
	sceneDir := writeFixtureDir(t, root, fixtureScene)
	view, err := NewView(sceneDir)
	assert.Nil(t, err)

	// Tested code
	matches, err := view.ListMatching(regexp.MustCompile(`^scene[0-9]+$`))

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, []string{sceneDir}, matches)
}

func TestListMatching_PlainFile(t *testing.T) {
	// Mock
	path := filepath.Join(t.TempDir(), "scene123.txt")
	assert.Nil(t, os.WriteFile(path, []byte("plain"), 0644))
	view, err := NewView(path)
	assert.Nil(t, err)

	// Tested code + Asserts
	matches, err := view.ListMatching(regexp.MustCompile(`^scene[0-9]+\.txt$`))
	assert.Nil(t, err)
	assert.Equal(t, []string{path}, matches)

	matches, err = view.ListMatching(regexp.MustCompile(`\.xml$`))
	assert.Nil(t, err)
	assert.Empty(t, matches)
}

func TestReadFile_AllContainerKinds(t *testing.T) {
	// Mock
	root := t.TempDir()
	sceneDir := writeFixtureDir(t, root, fixtureScene)
	zipPath := filepath.Join(root, "scene123.zip")
	writeFixtureZip(t, zipPath, fixtureScene)
	tarPath := filepath.Join(root, "scene123.tar")
	writeFixtureTar(t, tarPath, fixtureScene, false, false)
	pattern := regexp.MustCompile(`manifest\.safe$`)

	for _, path := range []string{sceneDir, zipPath, tarPath} {
		view, err := NewView(path)
		assert.Nil(t, err)
		matches, err := view.ListMatching(pattern)
		assert.Nil(t, err)
		assert.Len(t, matches, 1, path)

		// Tested code
		body, err := view.ReadFile(matches[0])

		// Asserts
		assert.Nil(t, err)
		assert.Equal(t, "<manifest/>", string(body))
	}
}
