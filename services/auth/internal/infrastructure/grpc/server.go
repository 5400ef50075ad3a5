package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/wekeepgrowing/school-backend/pkg/logger"
)

// ServiceName 헬스 체크에 노출되는 서비스 이름
const ServiceName = "school.auth"

// Server gRPC 서버 구조체
type Server struct {
	server  *grpc.Server
	health  *health.Server
	logger  *zap.Logger
	address string
}

// Config gRPC 서버 설정
type Config struct {
	Port       string
	Timeout    int
	Reflection bool
}

// NewServer gRPC 서버 생성
func NewServer(cfg Config, zapLogger *zap.Logger) *Server {
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(logger.NewGrpcUnaryServerInterceptor(zapLogger)),
		grpc.ChainStreamInterceptor(logger.NewGrpcStreamServerInterceptor(zapLogger)),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, grpc.ConnectionTimeout(time.Duration(cfg.Timeout)*time.Second))
	}
	server := grpc.NewServer(opts...)

	// 헬스 체크 서비스 등록. 의존성 확인 전까지는 NOT_SERVING.
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	if cfg.Reflection {
		reflection.Register(server)
	}

	return &Server{
		server:  server,
		health:  healthServer,
		logger:  zapLogger,
		address: fmt.Sprintf(":%s", cfg.Port),
	}
}

// SetServing 서비스 상태 변경
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
}

// Probe ctx 가 끝날 때까지 interval 마다 check 결과로 헬스 상태를 갱신합니다
func (s *Server) Probe(ctx context.Context, interval time.Duration, check func(ctx context.Context) error) {
	update := func() {
		checkCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		err := check(checkCtx)
		if err != nil && ctx.Err() == nil {
			s.logger.Warn("의존성 확인 실패", zap.Error(err))
		}
		s.SetServing(err == nil)
	}

	update()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			update()
		}
	}
}

// Serve 주어진 리스너로 서버 실행
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("gRPC 서버 시작", zap.String("address", listener.Addr().String()))
	return s.server.Serve(listener)
}

// Start gRPC 서버 시작. Stop 이 먼저 호출되었으면 nil 을 반환합니다.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("gRPC 서버 리스너 생성 실패: %w", err)
	}
	if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop gRPC 서버 중지
func (s *Server) Stop() {
	s.logger.Info("gRPC 서버 종료 중...")
	s.health.Shutdown()
	s.server.GracefulStop()
	s.logger.Info("gRPC 서버 종료 완료")
}
