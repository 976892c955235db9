package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"

	"github.com/pooya1361/makerspace/internal/auth"
	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/services"
)

// role carried from the gin middleware into resolver contexts.
type graphqlRoleKey struct{}

var errGraphQLForbidden = errors.New("insufficient permissions")

// GraphQLHandler exposes the workshop catalog over GraphQL. Queries require
// an authenticated caller; mutations additionally require an admin role,
// mirroring the REST guards.
type GraphQLHandler struct {
	BaseHandler
	workshopService services.WorkshopService
	schema          graphql.Schema
}

func NewGraphQLHandler(workshopService services.WorkshopService, logger *slog.Logger) (*GraphQLHandler, error) {
	h := &GraphQLHandler{
		BaseHandler:     NewBaseHandler(logger),
		workshopService: workshopService,
	}

	schema, err := h.buildSchema()
	if err != nil {
		return nil, err
	}
	h.schema = schema

	return h, nil
}

// Serve adapts the GraphQL HTTP handler to gin, threading the caller's role
// into the resolver context.
func (h *GraphQLHandler) Serve() gin.HandlerFunc {
	httpHandler := gqlhandler.New(&gqlhandler.Config{
		Schema:   &h.schema,
		Pretty:   true,
		GraphiQL: false,
	})

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if value, exists := c.Get(ContextUserRoleKey); exists {
			if role, ok := value.(models.UserType); ok {
				ctx = context.WithValue(ctx, graphqlRoleKey{}, role)
			}
		}
		httpHandler.ContextHandler(ctx, c.Writer, c.Request)
	}
}

func requireAdminRole(ctx context.Context) error {
	role, ok := ctx.Value(graphqlRoleKey{}).(models.UserType)
	if !ok || !auth.HasAnyRole(role, models.UserTypeAdmin, models.UserTypeSuperAdmin) {
		return errGraphQLForbidden
	}
	return nil
}

func (h *GraphQLHandler) buildSchema() (graphql.Schema, error) {
	workshopType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Workshop",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"size":        &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"workshops": &graphql.Field{
				Type: graphql.NewList(workshopType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return h.workshopService.GetAll(p.Context)
				},
			},
			"workshop": &graphql.Field{
				Type: workshopType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return h.workshopService.GetByID(p.Context, uint(id))
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createWorkshop": &graphql.Field{
				Type: workshopType,
				Args: graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"size":        &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := requireAdminRole(p.Context); err != nil {
						return nil, err
					}

					req := services.CreateWorkshopRequest{}
					req.Name, _ = p.Args["name"].(string)
					if desc, ok := p.Args["description"].(string); ok {
						req.Description = &desc
					}
					if size, ok := p.Args["size"].(float64); ok {
						req.Size = size
					}

					return h.workshopService.Create(p.Context, req)
				},
			},
			"updateWorkshop": &graphql.Field{
				Type: workshopType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"name":        &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"size":        &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := requireAdminRole(p.Context); err != nil {
						return nil, err
					}

					id, _ := p.Args["id"].(int)
					req := services.UpdateWorkshopRequest{}
					if name, ok := p.Args["name"].(string); ok {
						req.Name = &name
					}
					if desc, ok := p.Args["description"].(string); ok {
						req.Description = &desc
					}
					if size, ok := p.Args["size"].(float64); ok {
						req.Size = &size
					}

					return h.workshopService.Update(p.Context, uint(id), req)
				},
			},
			"deleteWorkshop": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := requireAdminRole(p.Context); err != nil {
						return nil, err
					}

					id, _ := p.Args["id"].(int)
					if err := h.workshopService.Delete(p.Context, uint(id)); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
