package reply

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"dealsync/pkg/contextx"
	"dealsync/pkg/errcodes"
	"dealsync/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// codedError is implemented by domain errors that pick their own HTTP status
// and may add fields to the response body.
type codedError interface {
	error
	ErrorCode() failure.ErrorCode
	Details() map[string]any
}

//nolint:gochecknoglobals
var codeStatuses = map[failure.ErrorCode]int{
	errcodes.ValidationError:    http.StatusBadRequest,
	errcodes.DealIDRequired:     http.StatusBadRequest,
	errcodes.WonTimeRequired:    http.StatusBadRequest,
	errcodes.InvalidWonTime:     http.StatusBadRequest,
	errcodes.NoDealProducts:     http.StatusBadRequest,
	errcodes.NoOrderRows:        http.StatusBadRequest,
	errcodes.InvalidVariantID:   http.StatusBadRequest,
	errcodes.NotFound:           http.StatusNotFound,
	errcodes.MethodNotAllowed:   http.StatusMethodNotAllowed,
	errcodes.OrderAlreadyExists: http.StatusConflict,
}

type errorResponse struct {
	Code      string
	Message   string
	SupportID string
	Details   map[string]any
}

func (e *errorResponse) WithDefaultCode(code failure.ErrorCode) {
	if e.Code == "" {
		e.Code = code.String()
	}
}

func (e *errorResponse) body() map[string]any {
	body := make(map[string]any, len(e.Details)+4) //nolint:mnd

	for k, v := range e.Details {
		body[k] = v
	}

	body["success"] = false
	body["error"] = e.Message
	body["code"] = e.Code
	body["supportId"] = e.SupportID

	return body
}

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	statusCode, response := classify(err)
	response.SupportID = supportID(ctx)

	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	logger(ctx).Log(ctx, level, "error",
		logx.Error(err),
		slog.Int(logx.FieldResponseStatus, statusCode),
	)

	JSON(ctx, w, statusCode, response.body())
}

func classify(err error) (int, errorResponse) {
	response := errorResponse{
		Code:    failure.Code(err).String(),
		Message: failure.Description(err),
	}

	var coded codedError

	switch {
	case failure.IsInvalidArgumentError(err):
		response.WithDefaultCode(errcodes.ValidationError)

		return http.StatusBadRequest, response
	case errors.As(err, &coded):
		response.Code = coded.ErrorCode().String()
		response.Message = coded.Error()
		response.Details = coded.Details()

		if statusCode, ok := codeStatuses[coded.ErrorCode()]; ok {
			return statusCode, response
		}

		return http.StatusInternalServerError, response
	case failure.IsNotFoundError(err):
		response.WithDefaultCode(errcodes.NotFound)

		return http.StatusNotFound, response
	case failure.IsUnauthorizedError(err):
		return http.StatusUnauthorized, response
	case failure.IsForbiddenError(err):
		return http.StatusForbidden, response
	case failure.IsConflictError(err):
		return http.StatusConflict, response
	case failure.IsUnprocessableEntityError(err):
		return http.StatusUnprocessableEntity, response
	default:
		response.WithDefaultCode(errcodes.InternalServerError)
		response.Message = err.Error()

		return http.StatusInternalServerError, response
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
