package main

import (
	"log"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/yi-nology/s3_media_storage/biz/dal/model"
	"github.com/yi-nology/s3_media_storage/biz/handler"
	"github.com/yi-nology/s3_media_storage/biz/middleware"
	"github.com/yi-nology/s3_media_storage/biz/router"
	"github.com/yi-nology/s3_media_storage/biz/service"
	"github.com/yi-nology/s3_media_storage/pkg/config"
	"github.com/yi-nology/s3_media_storage/pkg/database"
	"github.com/yi-nology/s3_media_storage/pkg/storage/s3"
	"github.com/yi-nology/s3_media_storage/pkg/validator"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.Database, &model.Asset{})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	adapter := s3.New(cfg.Storage.S3())
	if err := cfg.Storage.S3().Validate(); err != nil {
		// Uploads will be rejected until the storage section is completed.
		hlog.Warnf("%v", err)
	}

	upload := validator.NewUploadConfig(cfg.Upload.MaxSize, cfg.Upload.AllowedTypes)
	svc := service.NewService(db, adapter, adapter.KeyFor, upload)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithMaxRequestBodySize(int(cfg.Upload.MaxSize)+1024*1024),
	)
	h.Use(
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(&cfg.CORS),
	)
	router.RegisterMediaRoutes(h.Engine, cfg.Media.BasePath, handler.NewMediaHandler(svc))

	hlog.Infof("serving media from %s on %s", cfg.Media.BasePath, cfg.Server.Address)
	h.Spin()
}
