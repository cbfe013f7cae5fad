package application

import (
	"context"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/linskybing/formbuilder-go/internal/config/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Pinger runs the database connectivity self-test.
type Pinger func(ctx context.Context) (db.ConnectionStatus, error)

// GormPinger adapts db.Ping to a Pinger.
func GormPinger(gdb *gorm.DB) Pinger {
	return func(ctx context.Context) (db.ConnectionStatus, error) {
		return db.Ping(ctx, gdb)
	}
}

type MemoryUsage struct {
	AllocBytes      uint64 `json:"alloc_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	SysBytes        uint64 `json:"sys_bytes"`
	NumGC           uint32 `json:"num_gc"`
}

type SystemStatus struct {
	ServerTime   time.Time           `json:"server_time"`
	Uptime       string              `json:"uptime"`
	Memory       MemoryUsage         `json:"memory_usage"`
	Goroutines   int                 `json:"goroutines"`
	DatabaseTest db.ConnectionStatus `json:"database_test"`
}

type SystemInfo struct {
	GoVersion   string `json:"go_version"`
	Module      string `json:"module"`
	Version     string `json:"version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	NumCPU      int    `json:"num_cpu"`
	Hostname    string `json:"hostname"`
	Environment string `json:"environment"`
}

type SystemService struct {
	ping    Pinger
	logger  *zap.Logger
	env     string
	started time.Time
	now     func() time.Time
}

func NewSystemService(ping Pinger, env string, logger *zap.Logger) *SystemService {
	return &SystemService{
		ping:    ping,
		logger:  nopIfNil(logger),
		env:     env,
		started: time.Now(),
		now:     time.Now,
	}
}

// TestConnection never fails; the outcome is carried in the status.
func (s *SystemService) TestConnection(ctx context.Context) db.ConnectionStatus {
	status, err := s.ping(ctx)
	if err != nil {
		s.logger.Error("database self-test failed", zap.Error(err))
	}
	return status
}

func (s *SystemService) Status(ctx context.Context) SystemStatus {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	now := s.now()
	return SystemStatus{
		ServerTime: now,
		Uptime:     now.Sub(s.started).Round(time.Second).String(),
		Memory: MemoryUsage{
			AllocBytes:      mem.Alloc,
			TotalAllocBytes: mem.TotalAlloc,
			SysBytes:        mem.Sys,
			NumGC:           mem.NumGC,
		},
		Goroutines:   runtime.NumGoroutine(),
		DatabaseTest: s.TestConnection(ctx),
	}
}

func (s *SystemService) Info() SystemInfo {
	info := SystemInfo{
		GoVersion:   runtime.Version(),
		Version:     "(devel)",
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		NumCPU:      runtime.NumCPU(),
		Environment: s.env,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.Module = bi.Main.Path
		if bi.Main.Version != "" {
			info.Version = bi.Main.Version
		}
	}
	if host, err := os.Hostname(); err == nil {
		info.Hostname = host
	}
	return info
}
