// Package metrics 인증 서비스 프로메테우스 지표
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/wekeepgrowing/school-backend/pkg/errors"
)

const namespace = "school"

// ResultSuccess 성공 결과 라벨
const ResultSuccess = "success"

// Metrics 인증 흐름 카운터 모음
type Metrics struct {
	Registry *prometheus.Registry

	Logins           *prometheus.CounterVec
	OTPVerifications *prometheus.CounterVec
	Logouts          *prometheus.CounterVec
	GateDecisions    *prometheus.CounterVec
	SweptIdentities  prometheus.Counter
	SweepFailures    prometheus.Counter
}

// NewMetrics reg 에 지표를 등록합니다. reg 가 nil 이면 새 레지스트리를 만듭니다.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result", "reused"}),
		OTPVerifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "otp_verifications_total",
			Help:      "OTP verification attempts by result.",
		}, []string{"result"}),
		Logouts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logouts_total",
			Help:      "Logout and revoke calls by kind and result.",
		}, []string{"kind", "result"}),
		GateDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "gate_decisions_total",
			Help:      "Authorization gate outcomes.",
		}, []string{"gate", "result"}),
		SweptIdentities: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "swept_identities_total",
			Help:      "Identities expired by the background sweeper.",
		}),
		SweepFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "sweep_failures_total",
			Help:      "Sweeper runs that failed.",
		}),
	}
}

// Result 에러를 라벨 값으로 바꿉니다
func Result(err error) string {
	if err == nil {
		return ResultSuccess
	}
	return strings.ToLower(apperrors.CodeOf(err))
}

// ObserveSweep 스위퍼 콜백
func (m *Metrics) ObserveSweep(expired int64, err error) {
	if err != nil {
		m.SweepFailures.Inc()
		return
	}
	m.SweptIdentities.Add(float64(expired))
}
