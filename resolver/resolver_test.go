package resolver

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaslice/parser"
	"github.com/erraggy/oaslice/refs"
	"github.com/erraggy/oaslice/sliceerrors"
)

func mustDocument(t *testing.T, source string) *parser.Document {
	t.Helper()
	result, err := parser.ParseWithOptions(parser.WithBytes([]byte(source)))
	require.NoError(t, err)
	return result.Document
}

func mustResolve(t *testing.T, source, path, method string) *ResolvedSet {
	t.Helper()
	r, err := New(mustDocument(t, source))
	require.NoError(t, err)
	set, err := r.Resolve(path, method)
	require.NoError(t, err)
	return set
}

func TestResolveHeaderOnlyDependency(t *testing.T) {
	// A 200-response header referencing a header definition with no further
	// references yields exactly one header entry and nothing else.
	set := mustResolve(t, `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /things:
    get:
      responses:
        "200":
          description: OK
          headers:
            X-Rate-Limit:
              $ref: "#/components/headers/X-Rate-Limit"
components:
  headers:
    X-Rate-Limit:
      description: requests remaining
      schema:
        type: integer
  schemas:
    Unrelated:
      type: string
`, "/things", "get")

	assert.Equal(t, 1, set.Len())
	assert.Equal(t, []string{"X-Rate-Limit"}, set.Names(refs.KindHeader))
	assert.Zero(t, set.Count(refs.KindSchema))
}

func TestResolveSharedResponseChain(t *testing.T) {
	// 404 -> shared NotFound response -> header + schema.
	set := mustResolve(t, `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /things/{id}:
    get:
      responses:
        "200":
          description: OK
        "404":
          $ref: "#/components/responses/NotFound"
components:
  responses:
    NotFound:
      description: missing
      headers:
        X-Request-Id:
          $ref: "#/components/headers/X-Request-Id"
      content:
        application/json:
          schema:
            $ref: "#/components/schemas/Error"
  headers:
    X-Request-Id:
      schema:
        type: string
  schemas:
    Error:
      type: object
      properties:
        message:
          type: string
`, "/things/{id}", "get")

	assert.Equal(t, 3, set.Len())
	assert.Equal(t, []string{"NotFound"}, set.Names(refs.KindResponse))
	assert.Equal(t, []string{"X-Request-Id"}, set.Names(refs.KindHeader))
	assert.Equal(t, []string{"Error"}, set.Names(refs.KindSchema))
}

func TestResolveSelfReferencingSchema(t *testing.T) {
	set := mustResolve(t, `
openapi: 3.1.0
info: {title: t, version: "1"}
paths:
  /nodes:
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Node"
components:
  schemas:
    Node:
      type: object
      properties:
        value:
          type: string
        next:
          $ref: "#/components/schemas/Node"
`, "/nodes", "get")

	assert.Equal(t, 1, set.Len())
	assert.Equal(t, []string{"Node"}, set.Names(refs.KindSchema))
}

func TestResolveMutualCycle(t *testing.T) {
	set := mustResolve(t, `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /graph:
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/A"
components:
  schemas:
    A:
      type: object
      properties:
        b:
          $ref: "#/components/schemas/B"
    B:
      type: object
      properties:
        a:
          $ref: "#/components/schemas/A"
`, "/graph", "get")

	assert.Equal(t, []string{"A", "B"}, set.Names(refs.KindSchema))
	assert.Equal(t, 2, set.Len())
}

func TestResolveCrossCategoryEdges(t *testing.T) {
	// parameter -> schema, requestBody -> schema, response -> header -> schema,
	// link and callback pulled in through the operation body.
	set := mustResolve(t, `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /orders:
    post:
      parameters:
        - $ref: "#/components/parameters/traceId"
      requestBody:
        $ref: "#/components/requestBodies/CreateOrder"
      callbacks:
        onStatus:
          $ref: "#/components/callbacks/OrderStatus"
      responses:
        "201":
          description: created
          headers:
            Location-Hint:
              $ref: "#/components/headers/Location-Hint"
          links:
            GetOrder:
              $ref: "#/components/links/GetOrder"
components:
  parameters:
    traceId:
      name: trace-id
      in: header
      schema:
        $ref: "#/components/schemas/TraceId"
  requestBodies:
    CreateOrder:
      content:
        application/json:
          schema:
            $ref: "#/components/schemas/Order"
  headers:
    Location-Hint:
      schema:
        type: string
  links:
    GetOrder:
      operationId: getOrder
  callbacks:
    OrderStatus:
      "{$request.body#/callbackUrl}":
        post:
          responses:
            "200":
              description: OK
              content:
                application/json:
                  schema:
                    $ref: "#/components/schemas/StatusEvent"
  schemas:
    TraceId:
      type: string
    Order:
      type: object
      properties:
        items:
          type: array
          items:
            $ref: "#/components/schemas/OrderItem"
    OrderItem:
      type: object
    StatusEvent:
      type: object
`, "/orders", "post")

	assert.Equal(t, []string{"traceId"}, set.Names(refs.KindParameter))
	assert.Equal(t, []string{"CreateOrder"}, set.Names(refs.KindRequestBody))
	assert.Equal(t, []string{"Location-Hint"}, set.Names(refs.KindHeader))
	assert.Equal(t, []string{"GetOrder"}, set.Names(refs.KindLink))
	assert.Equal(t, []string{"OrderStatus"}, set.Names(refs.KindCallback))
	assert.Equal(t, []string{"Order", "OrderItem", "StatusEvent", "TraceId"}, set.Names(refs.KindSchema))
}

const twoOperationDoc = `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /users:
    parameters:
      - $ref: "#/components/parameters/tenant"
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/User"
    post:
      responses:
        "201":
          description: created
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Receipt"
components:
  parameters:
    tenant:
      name: tenant
      in: query
      schema:
        type: string
  schemas:
    User:
      type: object
    Receipt:
      type: object
`

func TestResolveMinimality(t *testing.T) {
	// The GET closure must not pick up the sibling POST's schema.
	set := mustResolve(t, twoOperationDoc, "/users", "get")

	assert.Equal(t, []string{"User"}, set.Names(refs.KindSchema))
	assert.Equal(t, []string{"tenant"}, set.Names(refs.KindParameter))
	assert.NotContains(t, set.Names(refs.KindSchema), "Receipt")
}

func TestResolvePathLevelParameters(t *testing.T) {
	set := mustResolve(t, twoOperationDoc, "/users", "post")
	assert.Equal(t, []string{"tenant"}, set.Names(refs.KindParameter),
		"path-item parameters apply to every operation under the path")
}

func TestResolveDeterminism(t *testing.T) {
	doc := mustDocument(t, twoOperationDoc)
	r, err := New(doc)
	require.NoError(t, err)

	first, err := r.Resolve("/users", "get")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := r.Resolve("/users", "get")
		require.NoError(t, err)
		assert.Equal(t, first.References(), again.References())
		for _, ref := range first.References() {
			a, _ := first.Body(ref)
			b, _ := again.Body(ref)
			assert.Equal(t, a, b)
		}
	}
}

func TestResolveOperationNotFound(t *testing.T) {
	doc := mustDocument(t, twoOperationDoc)
	r, err := New(doc)
	require.NoError(t, err)

	_, err = r.Resolve("/missing", "get")
	assert.ErrorIs(t, err, sliceerrors.ErrOperationNotFound)

	_, err = r.Resolve("/users", "delete")
	assert.ErrorIs(t, err, sliceerrors.ErrOperationNotFound)

	var onf *sliceerrors.OperationNotFoundError
	require.True(t, errors.As(err, &onf))
	assert.Equal(t, "/users", onf.Path)
	assert.Equal(t, "delete", onf.Method)
}

func TestResolveMissingComponent(t *testing.T) {
	doc := mustDocument(t, `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /broken:
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Ghost"
components:
  schemas: {}
`)
	r, err := New(doc)
	require.NoError(t, err)

	_, err = r.Resolve("/broken", "get")
	require.Error(t, err)
	assert.ErrorIs(t, err, sliceerrors.ErrMissingComponent)

	var mce *sliceerrors.MissingComponentError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "schemas", mce.Section)
	assert.Equal(t, "Ghost", mce.Name)
}

func TestResolveExternalReferenceFails(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{name: "remote URL", ref: "https://example.com/api.yaml#/components/schemas/Pet"},
		{name: "file pointer", ref: "./shared.yaml#/components/schemas/Pet"},
		{name: "non-component fragment", ref: "#/definitions/Pet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDocument(t, fmt.Sprintf(`
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /leak:
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: %q
`, tt.ref))
			r, err := New(doc)
			require.NoError(t, err)

			_, err = r.Resolve("/leak", "get")
			require.Error(t, err, "external references must fail, never be skipped")
			assert.ErrorIs(t, err, sliceerrors.ErrNotAReference)

			var ce *sliceerrors.ClassificationError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.ref, ce.Ref)
			assert.True(t, strings.HasPrefix(ce.Location, "paths./leak.get"), ce.Location)
		})
	}
}

const securityDoc = `
openapi: 3.0.3
info: {title: t, version: "1"}
security:
  - globalKey: []
paths:
  /inherit:
    get:
      responses:
        "200": {description: OK}
  /override:
    get:
      security:
        - opKey: []
      responses:
        "200": {description: OK}
  /none:
    get:
      security: []
      responses:
        "200": {description: OK}
components:
  securitySchemes:
    globalKey:
      type: apiKey
      in: header
      name: X-Global
    opKey:
      type: apiKey
      in: header
      name: X-Op
`

func TestResolveSecurityInheritance(t *testing.T) {
	t.Run("inherits global when operation is silent", func(t *testing.T) {
		set := mustResolve(t, securityDoc, "/inherit", "get")
		assert.Equal(t, []string{"globalKey"}, set.Names(refs.KindSecurityScheme))
	})

	t.Run("operation list overrides global", func(t *testing.T) {
		set := mustResolve(t, securityDoc, "/override", "get")
		assert.Equal(t, []string{"opKey"}, set.Names(refs.KindSecurityScheme))
	})

	t.Run("explicitly empty list means no security", func(t *testing.T) {
		set := mustResolve(t, securityDoc, "/none", "get")
		assert.Zero(t, set.Count(refs.KindSecurityScheme))
	})
}

func TestResolveMissingSecurityScheme(t *testing.T) {
	doc := mustDocument(t, `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /secure:
    get:
      security:
        - apiKey: []
      responses:
        "200": {description: OK}
`)
	r, err := New(doc)
	require.NoError(t, err)

	_, err = r.Resolve("/secure", "get")
	require.Error(t, err)
	assert.ErrorIs(t, err, sliceerrors.ErrMissingComponent)

	var mce *sliceerrors.MissingComponentError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "securitySchemes", mce.Section)
	assert.Equal(t, "apiKey", mce.Name)
}

func TestResolveDepthCeiling(t *testing.T) {
	// Build a linear chain S0 -> S1 -> ... -> S12 and cap depth below it.
	var b strings.Builder
	b.WriteString(`
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /deep:
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/S0"
components:
  schemas:
`)
	const chain = 12
	for i := 0; i < chain; i++ {
		fmt.Fprintf(&b, "    S%d:\n      type: object\n      properties:\n        next:\n          $ref: \"#/components/schemas/S%d\"\n", i, i+1)
	}
	fmt.Fprintf(&b, "    S%d:\n      type: string\n", chain)

	doc := mustDocument(t, b.String())

	r, err := New(doc, WithMaxRefDepth(5))
	require.NoError(t, err)
	_, err = r.Resolve("/deep", "get")
	assert.ErrorIs(t, err, sliceerrors.ErrResourceLimit)

	// The default ceiling is far above this chain.
	r, err = New(doc)
	require.NoError(t, err)
	set, err := r.Resolve("/deep", "get")
	require.NoError(t, err)
	assert.Equal(t, chain+1, set.Count(refs.KindSchema))
}

func TestResolvedSetDoesNotAliasDocument(t *testing.T) {
	doc := mustDocument(t, twoOperationDoc)
	r, err := New(doc)
	require.NoError(t, err)
	set, err := r.Resolve("/users", "get")
	require.NoError(t, err)

	body, ok := set.Body(refs.Reference{Kind: refs.KindSchema, Name: "User"})
	require.True(t, ok)
	body.(map[string]any)["type"] = "mutated"

	original, ok := doc.Component(refs.Reference{Kind: refs.KindSchema, Name: "User"})
	require.True(t, ok)
	assert.Equal(t, "object", original.(map[string]any)["type"])
}

func TestComponentsValueOmitsEmptySections(t *testing.T) {
	set := mustResolve(t, twoOperationDoc, "/users", "get")
	components := set.ComponentsValue()

	assert.Contains(t, components, "schemas")
	assert.Contains(t, components, "parameters")
	assert.NotContains(t, components, "links")
	assert.NotContains(t, components, "callbacks")
	assert.NotContains(t, components, "headers")
}

func TestNewResolverOptions(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, sliceerrors.ErrConfig)

	doc := mustDocument(t, twoOperationDoc)
	_, err = New(doc, WithMaxRefDepth(0))
	assert.ErrorIs(t, err, sliceerrors.ErrConfig)

	_, err = New(doc, WithLogger(nil))
	assert.ErrorIs(t, err, sliceerrors.ErrConfig)
}
