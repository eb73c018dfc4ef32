package swagger

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidateSpec loads the OpenAPI document and checks it is internally
// consistent, so a broken spec fails the server at startup instead of
// surfacing as a blank Swagger UI.
func ValidateSpec(ctx context.Context, path string) error {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return err
	}

	return doc.Validate(ctx)
}
