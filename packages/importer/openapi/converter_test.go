package openapi

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstore = `{
  "openapi": "3.0.0",
  "info": {"title": "Petstore", "version": "1.0.0"},
  "servers": [{"url": "https://petstore.example.com/v1"}],
  "paths": {
    "/pets": {
      "get": {
        "summary": "List pets",
        "tags": ["pets"],
        "responses": {"200": {"description": "ok"}}
      },
      "post": {
        "summary": "Create a pet",
        "tags": ["pets"],
        "responses": {"201": {"description": "created"}, "400": {"description": "bad"}}
      }
    },
    "/pets/{petId}": {
      "get": {
        "operationId": "getPet",
        "tags": ["pets"],
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/health": {
      "get": {
        "summary": "Health check",
        "responses": {"204": {"description": "no content"}}
      }
    }
  }
}`

func loadDoc(t *testing.T) *openapi3.T {
	t.Helper()
	doc, err := openapi3.NewLoader().LoadFromData([]byte(petstore))
	require.NoError(t, err)
	return doc
}

func TestConvert(t *testing.T) {
	file, err := NewConverter().Convert(loadDoc(t))
	require.NoError(t, err)

	assert.Equal(t, "Petstore", file.Name)
	assert.Equal(t, "https://petstore.example.com/v1", file.Vars["base"])

	require.Len(t, file.Suites, 2)

	// Untagged operations land in the default suite.
	byName := map[string]int{}
	for i, s := range file.Suites {
		byName[s.Name] = i
	}
	require.Contains(t, byName, "api")
	require.Contains(t, byName, "pets")

	api := file.Suites[byName["api"]]
	require.Len(t, api.Actions, 1)
	assert.Equal(t, "Health check", api.Actions[0].Test.Name)
	assert.Equal(t, 204, api.Actions[0].Test.Expect["status"])

	pets := file.Suites[byName["pets"]]
	require.Len(t, pets.Actions, 3)

	list := pets.Actions[0].Test
	assert.Equal(t, "List pets", list.Name)
	assert.Equal(t, "GET", list.Request.Method)
	assert.Equal(t, "{{base}}/pets", list.Request.URL)
	assert.Equal(t, 200, list.Expect["status"])

	create := pets.Actions[1].Test
	assert.Equal(t, "Create a pet", create.Name)
	assert.Equal(t, 201, create.Expect["status"])

	get := pets.Actions[2].Test
	assert.Equal(t, "getPet", get.Name)
	assert.Equal(t, "{{base}}/pets/{{petId}}", get.Request.URL)
}

func TestConvert_TagFilter(t *testing.T) {
	file, err := NewConverter(WithTags([]string{"pets"})).Convert(loadDoc(t))
	require.NoError(t, err)

	require.Len(t, file.Suites, 1)
	assert.Equal(t, "pets", file.Suites[0].Name)
}

func TestConvert_BaseURLOverride(t *testing.T) {
	file, err := NewConverter(WithBaseURL("http://localhost:8080")).Convert(loadDoc(t))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", file.Vars["base"])
}

func TestConvert_NoOperations(t *testing.T) {
	doc, err := openapi3.NewLoader().LoadFromData([]byte(`{
      "openapi": "3.0.0",
      "info": {"title": "Empty", "version": "1.0.0"},
      "paths": {}
    }`))
	require.NoError(t, err)

	_, err = NewConverter().Convert(doc)
	require.Error(t, err)
}
