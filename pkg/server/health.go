package server

import (
	"context"
	"net/http"

	"github.com/bufbuild/connect-go"
	grpchealth "github.com/bufbuild/connect-grpchealth-go"
	"go.uber.org/zap"
)

const ServiceName = "taproom.v1.TaproomService"

// NewHealthHandler serves the standard grpc.health.v1 protocol (over gRPC, gRPC-Web and
// Connect), reporting ServiceName as serving.
func NewHealthHandler(logger *zap.Logger) (string, http.Handler) {
	checker := grpchealth.NewStaticChecker(ServiceName)

	return grpchealth.NewHandler(checker, connect.WithInterceptors(loggingInterceptor(logger)))
}

func loggingInterceptor(logger *zap.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, request connect.AnyRequest) (connect.AnyResponse, error) {
			response, err := next(ctx, request)
			if err != nil {
				logger.Warn("rpc failed", zap.String("procedure", request.Spec().Procedure), zap.Error(err))
			}

			return response, err
		}
	}
}
