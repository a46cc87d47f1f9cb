package server

import (
	"context"
	"fmt"

	goskema "github.com/reoring/goskema"
	g "github.com/reoring/goskema/dsl"

	"github.com/schemaworks/registrar/internal/schemastore"
)

type createSchemaRequest struct {
	Format        string `json:"format"`
	Definition    string `json:"definition"`
	Compatibility string `json:"compatibility"`
}

type registerVersionRequest struct {
	Definition string `json:"definition"`
}

type checkValidityRequest struct {
	Format     string `json:"format"`
	Definition string `json:"definition"`
}

func createSchemaSchema() goskema.Schema[createSchemaRequest] {
	return g.ObjectOf[createSchemaRequest]().
		Field("format", g.StringOf[string]()).Required().
		Field("definition", g.StringOf[string]()).Required().
		Field("compatibility", g.StringOf[string]()).Required().
		UnknownStrip().
		RefineT("known_enums", func(dc goskema.DomainCtx[createSchemaRequest], r createSchemaRequest) []goskema.Issue {
			var out []goskema.Issue
			if !schemastore.DataFormat(r.Format).Known() {
				out = append(out, dc.Ref.At("/format").Issue(goskema.CodeInvalidEnum,
					fmt.Sprintf("format %q is not supported", r.Format)))
			}
			if !schemastore.Compatibility(r.Compatibility).Known() {
				out = append(out, dc.Ref.At("/compatibility").Issue(goskema.CodeInvalidEnum,
					fmt.Sprintf("compatibility %q is not supported", r.Compatibility)))
			}
			return out
		}).
		MustBind()
}

func registerVersionSchema() goskema.Schema[registerVersionRequest] {
	return g.ObjectOf[registerVersionRequest]().
		Field("definition", g.StringOf[string]()).Required().
		UnknownStrip().
		RefineT("definition_present", func(dc goskema.DomainCtx[registerVersionRequest], r registerVersionRequest) []goskema.Issue {
			if r.Definition == "" {
				return []goskema.Issue{
					dc.Ref.At("/definition").Issue(goskema.CodeTooShort, "definition must not be empty"),
				}
			}
			return nil
		}).
		MustBind()
}

func checkValiditySchema() goskema.Schema[checkValidityRequest] {
	return g.ObjectOf[checkValidityRequest]().
		Field("format", g.StringOf[string]()).Required().
		Field("definition", g.StringOf[string]()).Required().
		UnknownStrip().
		RefineT("known_format", func(dc goskema.DomainCtx[checkValidityRequest], r checkValidityRequest) []goskema.Issue {
			if !schemastore.DataFormat(r.Format).Known() {
				return []goskema.Issue{
					dc.Ref.At("/format").Issue(goskema.CodeInvalidEnum,
						fmt.Sprintf("format %q is not supported", r.Format)),
				}
			}
			return nil
		}).
		MustBind()
}

var (
	createSchemaBody    = createSchemaSchema()
	registerVersionBody = registerVersionSchema()
	checkValidityBody   = checkValiditySchema()
)

func parseBody[T any](ctx context.Context, s goskema.Schema[T], body []byte) (T, error) {
	return goskema.ParseFrom(ctx, s, goskema.JSONBytes(body))
}
