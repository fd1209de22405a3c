package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateCliApp(t *testing.T) {
	// Tested code
	app := createCliApp()

	// Asserts
	assert.Equal(t, "bf-scene-id", app.Name)
	names := map[string]bool{}
	for _, command := range app.Commands {
		names[command.Name] = true
	}
	for _, expected := range []string{"identify", "unpack", "convert", "calibrate", "footprint", "hgt", "version"} {
		assert.True(t, names[expected], "missing command %s", expected)
	}
}

func TestSceneModeFlag(t *testing.T) {
	app := createCliApp()
	// the identify, footprint and hgt commands share the --basic flag
	for _, name := range []string{"identify", "footprint", "hgt"} {
		command := app.Command(name)
		assert.NotNil(t, command)
		found := false
		for _, flag := range command.Flags {
			if flag.GetName() == "basic" {
				found = true
			}
		}
		assert.True(t, found, "command %s lacks --basic", name)
	}
}
