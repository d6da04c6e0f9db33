package http

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openapiDocument []byte

// OpenAPIDocument returns the API description served at /openapi.yaml.
func OpenAPIDocument() []byte {
	return openapiDocument
}

type requestValidator struct {
	router routers.Router
}

func newRequestValidator() (*requestValidator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	return &requestValidator{router: router}, nil
}

// middleware rejects requests that do not match the document with 400.
// Requests for undocumented paths pass through so echo answers them.
func (v *requestValidator) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		found, pathParams, err := v.router.FindRoute(req)
		if err != nil {
			if errors.Is(err, routers.ErrMethodNotAllowed) {
				return c.JSON(http.StatusMethodNotAllowed, Error{
					Code:    http.StatusMethodNotAllowed,
					Message: http.StatusText(http.StatusMethodNotAllowed),
				})
			}
			return next(c)
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      found,
			Options: &openapi3filter.Options{
				// bearerAuth does the real check
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}
		if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
			return badRequest(c, validationMessage(err))
		}
		return next(c)
	}
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}
	return "request does not match the API description"
}

func serveOpenAPIDocument(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", openapiDocument)
}
