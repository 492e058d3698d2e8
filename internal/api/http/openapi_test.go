package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/reference-data-service/internal/repository"
)

func TestBuildSwaggerFromRouteTable(t *testing.T) {
	routes := append(DepartmentRoutes(nil), Route{Method: http.MethodGet, Path: "/health/live"})
	doc := BuildSwagger(APIInfo{Title: "RDS", Version: "1", Tag: "RDS Service", TagDetail: "Apis relating to rds"}, routes)

	assert.Equal(t, "2.0", doc.Swagger)
	require.Len(t, doc.Paths.Paths, 2)
	assert.NotContains(t, doc.Paths.Paths, "/health/live")

	collection := doc.Paths.Paths["/department"]
	require.NotNil(t, collection.Get)
	require.NotNil(t, collection.Post)
	assert.Equal(t, "findAll", collection.Get.ID)
	assert.Equal(t, "create", collection.Post.ID)
	assert.Equal(t, []string{"RDS Service"}, collection.Get.Tags)

	item := doc.Paths.Paths["/department/{id}"]
	require.NotNil(t, item.Get)
	require.NotNil(t, item.Put)
	require.NotNil(t, item.Delete)
	assert.Equal(t, "findById", item.Get.ID)
	assert.Equal(t, "update", item.Put.ID)
	assert.Equal(t, "deleteById", item.Delete.ID)

	require.Len(t, item.Get.Parameters, 1)
	assert.Equal(t, "path", item.Get.Parameters[0].In)
	assert.True(t, item.Get.Parameters[0].Required)

	created := collection.Post.Responses.StatusCodeResponses[http.StatusCreated]
	assert.Contains(t, created.Headers, "Location")
	assert.Equal(t, "#/definitions/Department", created.Schema.Ref.String())

	for _, name := range []string{"Department", "DepartmentRequest", "PageOfDepartment", "SortOrder", "Error"} {
		assert.Contains(t, doc.Definitions, name)
	}
}

func TestAPIDocsEndpoint(t *testing.T) {
	srv := newTestServer(t, repository.NewMemoryDepartmentRepository())

	resp, body := srv.do(t, http.MethodGet, "/v2/api-docs", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Swagger string                                `json:"swagger"`
		Info    map[string]any                        `json:"info"`
		Paths   map[string]map[string]json.RawMessage `json:"paths"`
		Tags    []map[string]string                   `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "RDS", doc.Info["title"])
	assert.Contains(t, doc.Paths["/department"], "get")
	assert.Contains(t, doc.Paths["/department"], "post")
	assert.Contains(t, doc.Paths["/department/{id}"], "put")
	assert.Contains(t, doc.Paths["/department/{id}"], "delete")
	require.Len(t, doc.Tags, 1)
	assert.Equal(t, "RDS Service", doc.Tags[0]["name"])
}
