// Package server provides Connect RPC handlers for the combination service.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/at-ishikawa/wordcraft/internal/combination"
)

//go:generate mockgen -source=combination_handler.go -destination=../mocks/server/mock_combiner.go -package=mock_server

const (
	// CombinationServiceName is the fully-qualified name of the service.
	CombinationServiceName = "wordcraft.v1.CombinationService"
	// CombineProcedure is the procedure combining two concepts.
	CombineProcedure = "/" + CombinationServiceName + "/Combine"
	// SeedProcedure is the procedure combining the classic element pairs.
	SeedProcedure = "/" + CombinationServiceName + "/Seed"
)

// Combiner crafts combinations of two concepts.
type Combiner interface {
	Combine(ctx context.Context, first, second string) (combination.Result, error)
	CombineAll(ctx context.Context, pairs []combination.Pair, concurrency int) ([]combination.PairResult, error)
}

type CombineRequest struct {
	First  string `json:"first" validate:"notblank"`
	Second string `json:"second" validate:"notblank"`
}

type CombineResponse struct {
	Result       string `json:"result"`
	Emoji        string `json:"emoji"`
	IsNewElement bool   `json:"isNewElement"`
}

type SeedRequest struct{}

type SeedResponse struct {
	Combinations []SeedCombination `json:"combinations"`
}

type SeedCombination struct {
	First  string           `json:"first"`
	Second string           `json:"second"`
	Result *CombineResponse `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// CombinationHandler serves the combination service.
type CombinationHandler struct {
	combiner        Combiner
	seedConcurrency int
	validate        *validator.Validate
}

// NewCombinationHandler creates a new CombinationHandler.
func NewCombinationHandler(combiner Combiner, seedConcurrency int) (*CombinationHandler, error) {
	validate := validator.New()
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("failed to register notblank validation: %w", err)
	}
	validate.RegisterTagNameFunc(jsonTagName)

	return &CombinationHandler{
		combiner:        combiner,
		seedConcurrency: seedConcurrency,
		validate:        validate,
	}, nil
}

// NewCombinationServiceHandler builds the HTTP handler for the service and returns the path to mount it on.
func NewCombinationServiceHandler(h *CombinationHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CombineProcedure, connect.NewUnaryHandler(CombineProcedure, h.Combine, opts...))
	mux.Handle(SeedProcedure, connect.NewUnaryHandler(SeedProcedure, h.Seed, opts...))
	return "/" + CombinationServiceName + "/", mux
}

// Combine returns the combination of two concepts.
func (h *CombinationHandler) Combine(
	ctx context.Context,
	req *connect.Request[CombineRequest],
) (*connect.Response[CombineResponse], error) {
	if err := h.validateRequest(req.Msg); err != nil {
		return nil, err
	}

	result, err := h.combiner.Combine(ctx, req.Msg.First, req.Msg.Second)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(newCombineResponse(result)), nil
}

// Seed combines the classic element pairs.
func (h *CombinationHandler) Seed(
	ctx context.Context,
	req *connect.Request[SeedRequest],
) (*connect.Response[SeedResponse], error) {
	results, err := h.combiner.CombineAll(ctx, combination.ClassicPairs, h.seedConcurrency)
	if err != nil {
		return nil, toConnectError(err)
	}

	combinations := make([]SeedCombination, 0, len(results))
	for _, r := range results {
		seeded := SeedCombination{
			First:  r.Pair.First,
			Second: r.Pair.Second,
		}
		if r.Err != nil {
			seeded.Error = r.Err.Error()
		} else {
			seeded.Result = newCombineResponse(r.Result)
		}
		combinations = append(combinations, seeded)
	}
	return connect.NewResponse(&SeedResponse{Combinations: combinations}), nil
}

func newCombineResponse(result combination.Result) *CombineResponse {
	return &CombineResponse{
		Result:       result.Word,
		Emoji:        result.Symbol,
		IsNewElement: result.IsNovel,
	}
}

func (h *CombinationHandler) validateRequest(msg any) error {
	err := h.validate.Struct(msg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return connect.NewError(connect.CodeInternal, fmt.Errorf("validate request: %w", err))
	}

	badRequest := &errdetails.BadRequest{}
	for _, fe := range validationErrors {
		badRequest.FieldViolations = append(badRequest.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       fe.Field(),
			Description: fmt.Sprintf("%s is required", fe.Field()),
		})
	}
	connectErr := connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("both words are required"))
	if detail, detailErr := connect.NewErrorDetail(badRequest); detailErr == nil {
		connectErr.AddDetail(detail)
	}
	return connectErr
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, combination.ErrInvalidInput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, combination.ErrEngineUnavailable):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		slog.Default().Error("combination failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
