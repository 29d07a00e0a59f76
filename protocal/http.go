package protocal

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"

	"localaichat/configs"
	httpAdapter "localaichat/internal/adapters/input/http"
	"localaichat/internal/adapters/output/llamacpp"
	"localaichat/internal/adapters/output/memory"
	"localaichat/internal/adapters/output/postgres"
	"localaichat/internal/adapters/output/redisstore"
	"localaichat/internal/adapters/output/tools"
	"localaichat/internal/application"
	"localaichat/internal/domain"
	"localaichat/internal/ports/output"
	"localaichat/pkg/database_driver/gorm"
)

type config struct {
	ENV string `mapstructure:"env"`
}

const modelLookupTimeout = 10 * time.Second

// sessionSettings builds the defaults every new session starts from
func sessionSettings(cfg configs.Llama) domain.SessionSettings {
	settings := domain.DefaultSessionSettings()
	if cfg.APIURL != "" {
		settings.APIURL = cfg.APIURL
	}
	if cfg.SystemPrompt != "" {
		settings.System = cfg.SystemPrompt
	}
	settings.Model = cfg.Model
	settings.Auth = domain.Secret(cfg.APIKey)
	settings.Params = domain.Params{domain.ParamTemperature: cfg.Temperature}
	settings.SaveMessages = cfg.SaveMessages
	settings.RecentMessages = cfg.RecentMessages
	return settings
}

// resolveModel picks the first served model when none is configured
func resolveModel(ctx context.Context, lister output.ModelLister, settings *domain.SessionSettings) {
	if settings.Model != "" {
		logrus.Infof("Using configured model: %s", settings.Model)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, modelLookupTimeout)
	defer cancel()

	models, err := lister.ListModels(ctx, settings.APIURL)
	if err != nil {
		logrus.Warnf("Could not list models, sending requests without a model: %v", err)
		return
	}
	if len(models) == 0 {
		logrus.Warn("Server reports no models, sending requests without a model")
		return
	}
	settings.Model = models[0].ID
	logrus.Infof("Selected first available model: %s", settings.Model)
}

// newRepository opens the configured session store.
// The returned close func releases its connections.
func newRepository(cfg *configs.Config) (output.SessionRepository, httpAdapter.HealthFunc, func(), error) {
	switch cfg.Session.Store {
	case configs.StorePostgres:
		dbConGorm, err := gorm.ConnectToPostgreSQL(
			cfg.Postgres.Host,
			cfg.Postgres.Port,
			cfg.Postgres.Username,
			cfg.Postgres.Password,
			cfg.Postgres.DbName,
			cfg.Postgres.SSLMode,
		)
		if err != nil {
			return nil, nil, nil, err
		}
		repo, err := postgres.NewSessionRepository(dbConGorm.Postgres)
		if err != nil {
			return nil, nil, nil, err
		}
		health := func(ctx context.Context) error {
			sqlDB, err := dbConGorm.Postgres.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
		return repo, health, func() { gorm.DisconnectPostgres(dbConGorm.Postgres) }, nil
	case configs.StoreRedis:
		store := redisstore.NewSessionStore(cfg.Redis)
		closer := func() {
			if err := store.Close(); err != nil {
				logrus.Errorln(err)
			}
		}
		return store, store.Ping, closer, nil
	case configs.StoreMemory, "":
		timeout := time.Duration(cfg.Session.Timeout) * time.Minute
		return memory.NewMemorySessionStore(timeout, cfg.Session.MaxSessions), nil, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown session store: %s", cfg.Session.Store)
	}
}

// ServeHTTP func
func ServeHTTP() error {
	app := fiber.New()
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	conf := configs.GetViper()
	logrus.Info(conf.App.Env)
	if conf.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))
	app.Get("/swagger/*", swagger.HandlerDefault) // default

	// Wire up the hexagonal architecture layers
	// Output adapters (session store and completion server)
	repo, health, closeRepo, err := newRepository(conf)
	if err != nil {
		return err
	}
	transport := llamacpp.NewLlamaClientAdapter(conf.Llama, nil)
	settings := sessionSettings(conf.Llama)
	resolveModel(context.Background(), transport, &settings)

	// Application services (use cases)
	chatSrv := application.NewChatService(transport, domain.ToolRouterConfig{
		Prompt:      conf.Tools.Prompt,
		BiasWeight:  conf.Tools.BiasWeight,
		TokenOffset: conf.Tools.TokenOffset,
	})
	sessionSrv := application.NewSessionService(repo, settings)

	// Input adapter (HTTP handler)
	hdl := httpAdapter.New(chatSrv, sessionSrv,
		httpAdapter.WithTools(
			tools.NewClock(conf.Tools.Timezone),
			tools.NewWebpage(nil, conf.Tools.MaxChars, conf.Tools.AllowedHosts...),
		),
		httpAdapter.WithModels(transport, settings.APIURL),
		httpAdapter.WithHealth(health),
	)
	hdl.Register(app)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			logrus.Println("Gracefull shut down ...")
			closeRepo()
			err := app.Shutdown()
			if err != nil {
				logrus.Println("Error when shutdown server: ", err)
			}
		}
	}()

	logrus.Println("Listerning on port: ", conf.App.Port)
	return app.Listen(":" + conf.App.Port)
}
