package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"odoo-inventory-api/internal/config"
	"odoo-inventory-api/internal/handlers"
	"odoo-inventory-api/internal/middleware"
	"odoo-inventory-api/internal/services"
	"odoo-inventory-api/pkg/lambda"
)

var cfg *config.Config

func init() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	var err error
	cfg, err = config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
}

// corsHeaders are attached to every Function URL response
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, x-client-id, x-client-secret",
}

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	method := event.RequestContext.HTTP.Method

	// CORS preflight
	if method == http.MethodOptions {
		return events.LambdaFunctionURLResponse{
			StatusCode: http.StatusNoContent,
			Headers:    corsHeaders,
		}, nil
	}

	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return respond(lambda.JSON(http.StatusMethodNotAllowed, handlers.ErrorResponse{
			Error: "Method Not Allowed",
		})), nil
	}

	req := &lambda.Request{
		Method:      method,
		Path:        event.RawPath,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        decodeBody(event),
	}

	if !middleware.ValidCredentials(cfg, req.Header(middleware.HeaderClientID), req.Header(middleware.HeaderClientSecret)) {
		logrus.WithField("path", req.Path).Warn("Authentication failed: invalid client ID or secret")
		return respond(lambda.JSON(http.StatusUnauthorized, handlers.ErrorResponse{
			Error: "Unauthorized",
		})), nil
	}

	container, err := lambda.GetConnectionManager().GetContainer(cfg)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		return respond(lambda.JSON(http.StatusInternalServerError, handlers.ErrorResponse{
			Error: "Internal server error",
		})), nil
	}

	resp, err := route(ctx, container.InventoryService, req)
	if err != nil {
		logrus.WithError(err).Error("Routing error")
		return respond(lambda.JSON(http.StatusInternalServerError, handlers.ErrorResponse{
			Error: "Internal server error",
		})), nil
	}

	return respond(resp), nil
}

// route dispatches by path and method, mirroring the HTTP server's routes
func route(ctx context.Context, svc services.InventoryService, req *lambda.Request) (*lambda.Response, error) {
	inventoryHandler := handlers.NewInventoryHandler(svc)
	tagHandler := handlers.NewTagHandler(svc)
	productHandler := handlers.NewProductHandler(svc)

	segments := splitPath(req.Path)

	if len(segments) == 0 {
		switch req.Method {
		case http.MethodGet:
			return inventoryHandler.HandleList(ctx, req)
		case http.MethodPost:
			return inventoryHandler.HandleSearch(ctx, req)
		default:
			return lambda.JSON(http.StatusMethodNotAllowed, handlers.ErrorResponse{
				Error: "Method Not Allowed for inventory listing",
			}), nil
		}
	}

	switch segments[0] {
	case "search":
		if req.Method == http.MethodPost {
			return inventoryHandler.HandleSearch(ctx, req)
		}
		return lambda.JSON(http.StatusMethodNotAllowed, handlers.ErrorResponse{
			Error: "Search endpoint only supports POST method",
		}), nil

	case "tags":
		switch req.Method {
		case http.MethodGet:
			return tagHandler.HandleListTags(ctx, req)
		case http.MethodPost:
			return tagHandler.HandlePostTags(ctx, req)
		default:
			return lambda.JSON(http.StatusMethodNotAllowed, handlers.ErrorResponse{
				Error: "Method Not Allowed for tags",
			}), nil
		}

	case "products":
		switch req.Method {
		case http.MethodPost:
			return productHandler.HandlePostProducts(ctx, req)
		case http.MethodPut:
			return productHandler.HandleUpdatePrice(ctx, req)
		default:
			return lambda.JSON(http.StatusMethodNotAllowed, handlers.ErrorResponse{
				Error: "Method Not Allowed for products",
			}), nil
		}

	case "health":
		if req.Method == http.MethodGet {
			return lambda.JSON(http.StatusOK, map[string]string{
				"status":  "healthy",
				"service": "odoo-inventory-api",
				"mode":    config.GetDeploymentMode(),
			}), nil
		}
	}

	return lambda.JSON(http.StatusNotFound, handlers.ErrorResponse{
		Error: "Endpoint not found",
	}), nil
}

// splitPath breaks a raw path into non-empty segments
func splitPath(path string) []string {
	segments := make([]string, 0)
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// decodeBody returns the raw request body, decoding base64 when needed
func decodeBody(event events.LambdaFunctionURLRequest) []byte {
	if event.Body == "" {
		return nil
	}
	if event.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(event.Body); err == nil {
			return decoded
		}
	}
	return []byte(event.Body)
}

// respond converts the internal response into a Function URL response
func respond(resp *lambda.Response) events.LambdaFunctionURLResponse {
	headers := map[string]string{}
	for key, value := range corsHeaders {
		headers[key] = value
	}
	for key, value := range resp.Headers {
		headers[key] = value
	}

	return events.LambdaFunctionURLResponse{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       string(resp.Body),
	}
}

func main() {
	awslambda.Start(handler)
}
