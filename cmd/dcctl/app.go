package main

import (
	"github.com/pkg/errors"

	"github.com/dachuang-plat/dcctl/internal/api"
	"github.com/dachuang-plat/dcctl/internal/client"
	"github.com/dachuang-plat/dcctl/internal/config"
	"github.com/dachuang-plat/dcctl/internal/gate"
	"github.com/dachuang-plat/dcctl/internal/session"
	"github.com/dachuang-plat/dcctl/pkg/log"
)

// app 一次命令执行的装配结果：配置、会话存储、transport 和
// 各接口包装。每个子命令在 RunE 里调 newApp 取一份。
type app struct {
	cfg     *config.Config
	storage session.Storage
	store   *session.Store
	gate    *gate.Gate

	auth     *api.Auth
	dicts    *api.Dictionaries
	cache    *api.DictCache
	projects *api.Projects
	reviews  *api.Reviews
	notify   *api.Notifications
}

func newApp() (*app, error) {
	cfg, err := config.Load(flagConfDir)
	if err != nil {
		return nil, err
	}
	if flagBaseURL != "" {
		cfg.API.BaseURL = flagBaseURL
	}
	if err := log.Init(&cfg.Log); err != nil {
		return nil, err
	}
	logger := log.GetLogger()

	storage, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	cli := client.New(cfg.ClientConf(), session.NewSource(storage), client.WithLogger(logger))
	auth := api.NewAuth(cli)
	dicts := api.NewDictionaries(cli)

	store := session.NewStore(storage, auth, logger)
	if err := store.Init(); err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		storage:  storage,
		store:    store,
		gate:     gate.New(nil),
		auth:     auth,
		dicts:    dicts,
		cache:    api.NewDictCache(dicts, storage, 0),
		projects: api.NewProjects(cli),
		reviews:  api.NewReviews(cli),
		notify:   api.NewNotifications(cli),
	}, nil
}

func newStorage(cfg *config.Config) (session.Storage, error) {
	switch cfg.Storage.Backend {
	case "redis":
		rdb, err := session.NewRedis(cfg.RedisConf())
		if err != nil {
			return nil, err
		}
		return session.NewRedisStorage(rdb, ""), nil
	case "", "file":
		path := cfg.Storage.Path
		if path == "" {
			var err error
			path, err = session.DefaultSessionPath()
			if err != nil {
				return nil, err
			}
		}
		return session.NewFileStorage(path), nil
	default:
		return nil, errors.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// requireLogin 有 token 才放行，过期先提示。
func (a *app) requireLogin() error {
	if !a.store.IsAuthenticated() {
		return errors.New("未登录，请先执行 dcctl login")
	}
	if a.store.TokenExpired() {
		return errors.New("登录已过期，请重新执行 dcctl login")
	}
	return nil
}
