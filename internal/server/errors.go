package server

import (
	"errors"
	"net/http"

	"github.com/cosmicgardener/gardener-server-go/internal/game"
	"github.com/cosmicgardener/gardener-server-go/internal/game/garden"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errBadRequest marks malformed client input.
var errBadRequest = errors.New("bad request")

// httpStatus maps a domain error to an HTTP status code.
func httpStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrGameNotFound), errors.Is(err, game.ErrUnknownCard):
		return http.StatusNotFound
	case errors.Is(err, game.ErrTooManyGames):
		return http.StatusServiceUnavailable
	case errors.Is(err, game.ErrWrongPhase), errors.Is(err, game.ErrSimulationOver):
		return http.StatusConflict
	case errors.Is(err, game.ErrNoFilters),
		errors.Is(err, garden.ErrOverBudget),
		errors.Is(err, garden.ErrAlreadySelected),
		errors.Is(err, garden.ErrNotSelected):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// grpcCode maps a domain error to a gRPC status code.
func grpcCode(err error) codes.Code {
	switch httpStatus(err) {
	case http.StatusOK:
		return codes.OK
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusServiceUnavailable:
		return codes.ResourceExhausted
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// toStatus converts a domain error into a gRPC status error.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	code := grpcCode(err)
	if code == codes.Internal {
		return status.Error(code, "internal error")
	}
	return status.Error(code, err.Error())
}
