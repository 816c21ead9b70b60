package deploy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoDeployment(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "\n    \n"},
		{"null document", "null\n"},
		{"explicit document marker", "---\n"},
		{"comment only", "# nothing here\n"},
		{"no services key", "version: '3'\n"},
		{"null services", "services:\n"},
	}

	for _, tt := range tests {
		for _, detached := range []bool{false, true} {
			d, err := Load(tt.text, detached)
			require.NoError(t, err, tt.name)
			assert.Nil(t, d, tt.name)
		}
	}
}

func TestLoad_SingleService(t *testing.T) {
	d, err := Load(`
services:
  service-1:
    image: image-1:latest
`, false)
	require.NoError(t, err)
	require.NotNil(t, d)

	require.Len(t, d.Services, 1)
	svc, ok := d.Services["service-1"]
	require.True(t, ok)
	assert.Equal(t, "service-1", svc.Name)
	assert.Equal(t, "image-1:latest", svc.Image)
	assert.False(t, svc.Detached)
}

func TestLoad_DetachedAppliedUniformly(t *testing.T) {
	d, err := Load(`
services:
  web:
    image: nginx
  db:
    image: postgres:16
`, true)
	require.NoError(t, err)

	for name, svc := range d.Services {
		assert.True(t, svc.Detached, "service %s should be detached", name)
	}
}

func TestLoad_ExtraFieldsIgnored(t *testing.T) {
	d, err := Load(`
version: "3.9"
services:
  web:
    image: nginx
    ports: ["8080:80"]
`, false)
	require.NoError(t, err)
	assert.Equal(t, "nginx", d.Services["web"].Image)
}

func TestLoad_Alias(t *testing.T) {
	d, err := Load(`
x-base: &base
  image: redis:7
services:
  cache: *base
`, false)
	require.NoError(t, err)
	assert.Equal(t, "redis:7", d.Services["cache"].Image)
}

func TestLoad_EmptyServicesMapping(t *testing.T) {
	d, err := Load("services: {}\n", false)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Empty(t, d.Services)
	assert.Empty(t, d.Names())
}

func TestNames_Sorted(t *testing.T) {
	d, err := Load(`
services:
  zeta: {image: z}
  alpha: {image: a}
  mid: {image: m}
`, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, d.Names())
}

func TestLoad_CollectsAllProblems(t *testing.T) {
	_, err := Load(`
services:
  no-image:
    command: sleep
  numeric:
    image: 42
  blank:
    image: ""
  scalar: nginx
  good:
    image: nginx
`, false)

	var pe *ParseError
	require.True(t, errors.As(err, &pe), "want ParseError, got %v", err)
	require.Len(t, pe.Problems, 4)

	assert.Equal(t, "services.no-image.image", pe.Problems[0].Path)
	assert.Equal(t, "field required", pe.Problems[0].Message)
	assert.Equal(t, "services.numeric.image", pe.Problems[1].Path)
	assert.Equal(t, "services.blank.image", pe.Problems[2].Path)
	assert.Equal(t, "services.scalar", pe.Problems[3].Path)
	assert.Contains(t, err.Error(), "services.numeric.image: must be a string (line 6)")
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load("services:\n  web:\n    image: [unclosed\n", false)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Error(t, pe.Err)
	assert.Empty(t, pe.Problems)
}

func TestLoad_WrongShapes(t *testing.T) {
	tests := []struct {
		name string
		text string
		path string
	}{
		{"document is a list", "- a\n- b\n", ""},
		{"services is a list", "services:\n  - web\n", "services"},
		{"services is a scalar", "services: web\n", "services"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.text, false)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want ParseError, got %v", err)
			require.Len(t, pe.Problems, 1)
			assert.Equal(t, tt.path, pe.Problems[0].Path)
		})
	}
}
