// Package app 提供应用程序的初始化和启动入口.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/artvault/pkg/api"
	"github.com/yeisme/artvault/pkg/configs"
	"github.com/yeisme/artvault/pkg/context"
	"github.com/yeisme/artvault/pkg/internal/jobs"
	"github.com/yeisme/artvault/pkg/internal/service"
	"github.com/yeisme/artvault/pkg/internal/storage"
	"github.com/yeisme/artvault/pkg/log"
	"github.com/yeisme/artvault/pkg/metrics"
	"github.com/yeisme/artvault/pkg/middleware"
	"github.com/yeisme/artvault/pkg/scheduler"
	"github.com/yeisme/artvault/pkg/tracing"
)

type App struct {
	Engine    *gin.Engine
	config    *configs.AppConfig
	scheduler *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()

	if !config.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化追踪
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	ctx = context.WithStorageManager(ctx, manager)

	// 建表/迁移
	store := service.NewSubmissionStore(manager.GetDBClient().DB)
	if err := store.Migrate(); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.CORSMiddleware(config.Server),
		middleware.TracingMiddleware(),
		middleware.GinLoggerMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.CircuitBreakerMiddleware(config.CircuitBreaker),
		middleware.StorageMiddleware(manager),
	)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	api.RegisterGroup(engine, config)

	// 后台任务: 待审核指标上报、孤儿媒体清理
	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error creating scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterAll(ctx, sched); err != nil {
		fmt.Printf("Error registering jobs: %v\n", err)
		os.Exit(1)
	}

	sched.Start()

	return &App{
		Engine:    engine,
		config:    config,
		scheduler: sched,
	}
}

func (a *App) Run() error {
	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}

// Shutdown 停止后台任务并清理追踪导出器.
func (a *App) Shutdown(ctx contextPkg.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.Stop(); err != nil {
			return err
		}
	}

	return tracing.ShutdownTracer(ctx)
}
