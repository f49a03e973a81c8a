package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mrled/stackcalc/internal/factorial"
	"github.com/mrled/stackcalc/internal/logger"
	"github.com/mrled/stackcalc/internal/model"
	"github.com/mrled/stackcalc/internal/presenter"
	"github.com/mrled/stackcalc/internal/repository"
	"github.com/mrled/stackcalc/internal/usecase/evaluate"
)

// Handler holds the dependencies for the httpapi Lambda handler
type Handler struct {
	repo     model.EvaluationRepository
	evaluate *evaluate.EvaluateUseCase
	log      *slog.Logger
}

// ValidateRequest is the JSON payload for /v1/validate
type ValidateRequest struct {
	Expression *string `json:"expression"`
}

// ValidateResponse is the JSON response for /v1/validate
type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

// FactorialRequest is the JSON payload for /v1/factorial
type FactorialRequest struct {
	N             *int `json:"n"`
	CheckOverflow bool `json:"checkOverflow,omitempty"`
}

// FactorialResponse is the JSON response for /v1/factorial
type FactorialResponse struct {
	N        int    `json:"n"`
	Result   int64  `json:"result"`
	Overflow bool   `json:"overflow"`
	Message  string `json:"message"`
}

// NewHandler creates a new httpapi handler with initialized dependencies.
// DYNAMODB_TABLE selects DynamoDB persistence; without it evaluations are kept
// in memory for the lifetime of the Lambda container.
func NewHandler() (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "httpapi")
	logger.SetDefault(log)

	dynamoTable := os.Getenv("DYNAMODB_TABLE")
	dynamoEndpoint := os.Getenv("DYNAMODB_ENDPOINT")

	if dynamoTable != "" && dynamoEndpoint == "" && os.Getenv("AWS_REGION") == "" {
		return nil, fmt.Errorf("AWS_REGION environment variable is required when DYNAMODB_ENDPOINT is not set")
	}

	ctx := context.Background()

	repo, err := repository.NewRepository(ctx, repository.RepositoryConfig{
		DynamoTable:    dynamoTable,
		DynamoEndpoint: dynamoEndpoint,
	})
	if err != nil {
		log.Error("Failed to create repository", slog.String("error", err.Error()))
		return nil, err
	}
	log.Info("Repository initialized",
		slog.String("table", dynamoTable),
		slog.String("endpoint", dynamoEndpoint))

	return NewHandlerWithRepository(repo, log), nil
}

// NewHandlerWithRepository wires a handler around an existing repository
func NewHandlerWithRepository(repo model.EvaluationRepository, log *slog.Logger) *Handler {
	return &Handler{
		repo:     repo,
		evaluate: evaluate.NewEvaluateUseCase(repo, evaluate.Options{}),
		log:      log,
	}
}

// Handle processes API Gateway HTTP requests
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		request.RequestContext.RequestID)

	// API Gateway v2 puts the path in RequestContext.HTTP.Path
	path := request.RequestContext.HTTP.Path
	if path == "" {
		path = request.RawPath
	}
	path = strings.TrimSuffix(strings.TrimPrefix(path, "/api"), "/")
	method := request.RequestContext.HTTP.Method

	requestLogger.Info("Incoming request",
		slog.String("method", method),
		slog.String("path", path))

	switch path {
	case "/v1/validate":
		if method != http.MethodPost {
			return methodNotAllowed(method, http.MethodPost)
		}
		return h.handleValidate(ctx, requestLogger, request)
	case "/v1/factorial":
		if method != http.MethodPost {
			return methodNotAllowed(method, http.MethodPost)
		}
		return h.handleFactorial(ctx, requestLogger, request)
	case "/v1/records":
		if method != http.MethodGet {
			return methodNotAllowed(method, http.MethodGet)
		}
		return h.handleRecords(ctx, requestLogger)
	default:
		requestLogger.Warn("Path not matched", slog.String("path", path))
		return errorResponseV2(http.StatusNotFound, fmt.Sprintf("Unknown endpoint: %s", path))
	}
}

func (h *Handler) handleValidate(ctx context.Context, log *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var req ValidateRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponseV2(http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	// An empty expression is valid input, so only a missing field is rejected
	if req.Expression == nil {
		return errorResponseV2(http.StatusBadRequest, "expression field is required")
	}

	record, err := h.evaluate.ValidateExpression(ctx, *req.Expression)
	if err != nil {
		log.Error("Validation failed", slog.String("error", err.Error()))
		return errorResponseV2(http.StatusInternalServerError, "validation failed")
	}

	return jsonResponseV2(http.StatusOK, ValidateResponse{
		Valid:   record.Valid,
		Reason:  record.Reason,
		Message: presenter.FormatValidation(record.Valid),
	})
}

func (h *Handler) handleFactorial(ctx context.Context, log *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var req FactorialRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponseV2(http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if req.N == nil {
		return errorResponseV2(http.StatusBadRequest, "n field is required")
	}
	if *req.N > evaluate.MaxFactorialInput {
		return errorResponseV2(http.StatusBadRequest,
			fmt.Sprintf("n must be at most %d", evaluate.MaxFactorialInput))
	}

	record, err := h.evaluate.Factorial(ctx, *req.N)
	if err != nil {
		log.Error("Factorial failed", slog.String("error", err.Error()))
		return errorResponseV2(http.StatusInternalServerError, "factorial failed")
	}

	if req.CheckOverflow && record.Overflow {
		return errorResponseV2(http.StatusUnprocessableEntity,
			fmt.Sprintf("%d!: %v (largest exact input is %d)", *req.N, factorial.ErrOverflow, factorial.MaxExact))
	}

	return jsonResponseV2(http.StatusOK, FactorialResponse{
		N:        *req.N,
		Result:   record.Result,
		Overflow: record.Overflow,
		Message:  presenter.FormatFactorial(record.Result),
	})
}

func (h *Handler) handleRecords(ctx context.Context, log *slog.Logger) (events.APIGatewayV2HTTPResponse, error) {
	records, err := h.repo.List(ctx)
	if err != nil {
		log.Error("Failed to list records", slog.String("error", err.Error()))
		return errorResponseV2(http.StatusInternalServerError, "failed to list records")
	}
	model.SortRecords(records, string(model.SortByEvalTime))

	var body strings.Builder
	if err := presenter.WriteRecordsJSON(&body, records); err != nil {
		log.Error("Failed to encode records", slog.String("error", err.Error()))
		return errorResponseV2(http.StatusInternalServerError, "failed to generate response")
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusOK,
		Body:       body.String(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func methodNotAllowed(got, allowed string) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := errorResponseV2(http.StatusMethodNotAllowed,
		fmt.Sprintf("Method not allowed. Only %s is supported for this endpoint (received: %s)", allowed, got))
	resp.Headers["Allow"] = allowed
	return resp, err
}

// jsonResponseV2 marshals body into a response with the given status
func jsonResponseV2(statusCode int, body any) (events.APIGatewayV2HTTPResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return errorResponseV2(http.StatusInternalServerError, "failed to generate response")
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(data),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

// errorResponseV2 creates a standardized error response for API Gateway v2
func errorResponseV2(statusCode int, message string) (events.APIGatewayV2HTTPResponse, error) {
	body, _ := json.Marshal(map[string]string{
		"error": message,
	})

	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}
