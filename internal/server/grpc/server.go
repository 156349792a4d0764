// Package grpc exposes the prediction service over gRPC. Messages are
// google.protobuf.Struct values so no generated code is needed:
//
//	request:  {"model": "lda", "features": {"CreditScore": 700, ...}}
//	response: {"prediction": 1}
//
// features may also be a list of numbers in column order.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ekisa-team/loanrisk/internal/mapsafe"
	"github.com/ekisa-team/loanrisk/internal/model"
	"github.com/ekisa-team/loanrisk/internal/service"
)

// Server is the gRPC front end.
type Server struct {
	server *grpc.Server
	health *health.Server
}

// predictionServer adapts the prediction service to PredictionServiceServer.
type predictionServer struct {
	service *service.Prediction
}

// NewServer creates a gRPC server with the prediction and health services
// registered.
func NewServer(svc *service.Prediction, opts ...grpc.ServerOption) *Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(loggingInterceptor)}, opts...)
	s := grpc.NewServer(opts...)

	RegisterPredictionServiceServer(s, &predictionServer{service: svc})

	h := health.NewServer()
	h.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, h)

	return &Server{server: s, health: h}
}

// Serve accepts connections on l until GracefulStop is called.
func (s *Server) Serve(l net.Listener) error {
	slog.Info("gRPC server listening", "addr", l.Addr().String())

	if err := s.server.Serve(l); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc: server failed: %w", err)
	}
	return nil
}

// GracefulStop marks the services as not serving and waits for pending RPCs.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

// Predict handles loanrisk.v1.PredictionService/Predict.
func (p *predictionServer) Predict(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	key, features, err := decodeRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	out := p.service.Predict(key, features)
	label, ok := out.Label()
	if !ok {
		if errors.Is(out.Err(), model.ErrNotFound) {
			return nil, status.Error(codes.NotFound, out.Message())
		}
		return nil, status.Error(codes.InvalidArgument, out.Message())
	}

	return structpb.NewStruct(map[string]any{
		"model":      key,
		"prediction": label,
	})
}

// decodeRequest extracts the model key and the feature vector.
func decodeRequest(in *structpb.Struct) (string, []float64, error) {
	fields := in.AsMap()

	key := mapsafe.Get(fields, "model", "")

	raw, ok := fields["features"]
	if !ok {
		return "", nil, errors.New("features is required")
	}

	switch v := raw.(type) {
	case []any:
		features, index, ok := mapsafe.Floats(v)
		if !ok {
			return "", nil, fmt.Errorf("features[%d] must be a number", index)
		}
		return key, features, nil

	case map[string]any:
		columns := model.Columns()
		features := make([]float64, len(columns))
		for i, c := range columns {
			if _, ok := v[c]; !ok {
				return "", nil, fmt.Errorf("feature %s is required", c)
			}
			f, ok := mapsafe.Lookup[float64](v, c)
			if !ok {
				return "", nil, fmt.Errorf("feature %s must be a number", c)
			}
			features[i] = f
		}
		return key, features, nil

	default:
		return "", nil, errors.New("features must be an object or a list")
	}
}

func loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	slog.Info("gRPC request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)

	return resp, err
}
