package scenes

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/bf-scene-id/archive"
	"github.com/venicegeo/bf-scene-id/model"
)

// General test mocks and utils

type stubHandler struct {
	base
	name string
}

func (s *stubHandler) Examine() error                      { return nil }
func (s *stubHandler) ParseMetadata(mode model.Mode) error { return nil }
func (s *stubHandler) Corners() (model.Footprint, error)   { return model.Footprint{}, nil }
func (s *stubHandler) OutnameBase() string                 { return s.name }
func (s *stubHandler) Convert(targetDir string) error      { return nil }
func (s *stubHandler) Unpack(targetDir string) error       { return nil }
func (s *stubHandler) Calibrate(replace bool) error        { return nil }

func swapRegistry(t *testing.T, replacement []registration) {
	saved := registry
	registry = replacement
	t.Cleanup(func() { registry = saved })
}

func matchAll(view *archive.View) bool  { return true }
func matchNone(view *archive.View) bool { return false }

// Actual tests

func TestIdentify_UnrecognizedScene(t *testing.T) {
	// Mock
	dir := filepath.Join(t.TempDir(), "random_scene")
	assert.Nil(t, os.MkdirAll(dir, 0755))

	// Tested code
	_, err := Identify(dir, model.ModeBasic)

	// Asserts
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestIdentify_MissingPath(t *testing.T) {
	_, err := Identify(filepath.Join(t.TempDir(), "no-such-scene"), model.ModeBasic)
	assert.Error(t, err)
}

func TestIdentify_RegistryOrderIsPriority(t *testing.T) {
	// Mock: two handlers that both claim the scene
	first := &stubHandler{name: "first"}
	second := &stubHandler{name: "second"}
	swapRegistry(t, []registration{
		{name: "first", matches: matchAll, build: func(view *archive.View, mode model.Mode) (Handler, error) {
			return first, nil
		}},
		{name: "second", matches: matchAll, build: func(view *archive.View, mode model.Mode) (Handler, error) {
			return second, nil
		}},
	})
	view := &archive.View{Path: "/scene", Kind: archive.KindDirectory}

	// Tested code
	handler, err := IdentifyView(view, model.ModeBasic)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, "first", handler.OutnameBase())
}

func TestIdentify_FallsThroughNonMatchingProbes(t *testing.T) {
	// Mock
	second := &stubHandler{name: "second"}
	swapRegistry(t, []registration{
		{name: "first", matches: matchNone, build: func(view *archive.View, mode model.Mode) (Handler, error) {
			t.Fatal("probe said no; builder must not run")
			return nil, nil
		}},
		{name: "second", matches: matchAll, build: func(view *archive.View, mode model.Mode) (Handler, error) {
			return second, nil
		}},
	})
	view := &archive.View{Path: "/scene", Kind: archive.KindDirectory}

	// Tested code
	handler, err := IdentifyView(view, model.ModeBasic)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, "second", handler.OutnameBase())
}

func TestIdentify_MalformedSceneAbortsDispatch(t *testing.T) {
	// Mock: first handler recognizes the name but rejects the content
	rejection := &UnsupportedProductError{Product: "bogus", Reason: "level 0"}
	swapRegistry(t, []registration{
		{name: "first", matches: matchAll, build: func(view *archive.View, mode model.Mode) (Handler, error) {
			return nil, rejection
		}},
		{name: "second", matches: matchAll, build: func(view *archive.View, mode model.Mode) (Handler, error) {
			t.Fatal("dispatch must abort on a recognized-but-malformed scene")
			return nil, nil
		}},
	})
	view := &archive.View{Path: "/scene", Kind: archive.KindDirectory}

	// Tested code
	_, err := IdentifyView(view, model.ModeBasic)

	// Asserts
	var unsupported *UnsupportedProductError
	assert.ErrorAs(t, err, &unsupported)
}

func TestIdentify_NotRecognizedFallsThrough(t *testing.T) {
	// Mock: probe matches but detailed parsing disagrees
	second := &stubHandler{name: "second"}
	swapRegistry(t, []registration{
		{name: "first", matches: matchAll, build: func(view *archive.View, mode model.Mode) (Handler, error) {
			return nil, ErrNotRecognized
		}},
		{name: "second", matches: matchAll, build: func(view *archive.View, mode model.Mode) (Handler, error) {
			return second, nil
		}},
	})
	view := &archive.View{Path: "/scene", Kind: archive.KindDirectory}

	// Tested code
	handler, err := IdentifyView(view, model.ModeBasic)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, "second", handler.OutnameBase())
}

func TestIdentify_ESAScene(t *testing.T) {
	// Mock
	path := filepath.Join(t.TempDir(), esaSceneName)
	assert.Nil(t, os.WriteFile(path, []byte("product-bytes"), 0644))

	// Tested code
	handler, err := Identify(path, model.ModeBasic)

	// Asserts
	assert.Nil(t, err)
	assert.IsType(t, &ESA{}, handler)
	assert.Equal(t, "ASAR", handler.Metadata().Sensor)
}

func TestIdentify_SAFEScene(t *testing.T) {
	// Mock
	view := writeSAFEScene(t, safeSceneName, nil)

	// Tested code
	handler, err := IdentifyView(view, model.ModeBasic)

	// Asserts
	assert.Nil(t, err)
	assert.IsType(t, &SAFE{}, handler)
	assert.Equal(t, "S1A", handler.Metadata().Sensor)
}

func TestSummary_SortedKeyValueLines(t *testing.T) {
	// Mock
	view := writeSAFEScene(t, safeSceneName, nil)
	handler, err := NewSAFE(view, model.ModeBasic)
	assert.Nil(t, err)

	// Tested code
	var buffer bytes.Buffer
	assert.Nil(t, handler.Summary(&buffer))

	// Asserts
	output := buffer.String()
	assert.Contains(t, output, "sensor: S1A\n")
	assert.Contains(t, output, "orbit: D\n")
	assert.Contains(t, output, "polarizations: VV VH\n")
	assert.Contains(t, output, "start: 20150408T053103\n")
}
