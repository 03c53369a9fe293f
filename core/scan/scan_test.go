package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"api/models/pet_tag.py", "pet_tag"},
		{"models/model_a.go", "model_a"},
		{"plain", "plain"},
		{"/abs/path/thing.json", "thing"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ModuleName(tt.path))
	}
}

func TestTokenExtractor(t *testing.T) {
	src := []byte("from models.pet_tag import PetTag\npet = PetTag()\n")

	module, err := TokenExtractor{}.Extract("api/models/pet.py", src)
	require.NoError(t, err)

	assert.Equal(t, "pet", module.Name)
	assert.Equal(t, []string{"pet", "Pet"}, module.Defines)

	// Dotted references split into their segments.
	assert.Contains(t, module.References, "models")
	assert.Contains(t, module.References, "pet_tag")
	assert.Contains(t, module.References, "PetTag")
	assert.NotContains(t, module.References, "models.pet_tag")
}

func TestTokenExtractorDeduplicates(t *testing.T) {
	src := []byte("foo foo foo bar")

	module, err := TokenExtractor{}.Extract("x.txt", src)
	require.NoError(t, err)
	assert.Equal(t, []string{"bar", "foo"}, module.References)
}

func TestGoExtractor(t *testing.T) {
	src := []byte(`package models

import "example.com/stub/models/helpers"

const DefaultTag = "none"

type Pet struct {
	Tag PetTag
}

func NewPet() Pet { return Pet{Tag: helpers.Tag()} }
`)

	module, err := GoExtractor{}.Extract("models/model_pet.go", src)
	require.NoError(t, err)

	assert.Equal(t, "model_pet", module.Name)
	assert.Contains(t, module.Defines, "model_pet")
	assert.Contains(t, module.Defines, "ModelPet")
	assert.Contains(t, module.Defines, "Pet")
	assert.Contains(t, module.Defines, "NewPet")
	assert.Contains(t, module.Defines, "DefaultTag")

	// Imports contribute their last path segment, idents contribute themselves.
	assert.Contains(t, module.References, "helpers")
	assert.Contains(t, module.References, "PetTag")
}

func TestGoExtractorFallsBackOnInvalidSource(t *testing.T) {
	src := []byte("this is { not go code ] but mentions pet_tag")

	module, err := GoExtractor{}.Extract("models/broken.go", src)
	require.NoError(t, err)
	assert.Contains(t, module.References, "pet_tag")
}

func TestNewExtractorPicksByExtension(t *testing.T) {
	extractor := NewExtractor()

	goModule, err := extractor.Extract("m.go", []byte("package m\n\ntype Thing struct{}\n"))
	require.NoError(t, err)
	assert.Contains(t, goModule.Defines, "Thing")

	pyModule, err := extractor.Extract("m.py", []byte("class Thing:\n    pass\n"))
	require.NoError(t, err)
	assert.Contains(t, pyModule.References, "Thing")
	assert.NotContains(t, pyModule.Defines, "Thing")
}
