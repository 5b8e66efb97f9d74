package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/audit"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/config"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/database"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/repository"
	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/router"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx := context.Background()

	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	// connect primary store
	cli, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		logrus.Fatalf("init mongo: %v", err)
	}
	defer func() {
		if err := cli.Disconnect(ctx); err != nil {
			logrus.Errorf("disconnect mongo: %v", err)
		}
	}()

	db := cli.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logrus.Fatalf("ensure indexes: %v", err)
	}

	repo := repository.NewMongo(db)

	// local audit trail
	var auditStore *audit.Store
	if cfg.Audit.Enabled {
		if err := ensureDir(filepath.Dir(cfg.Audit.Path)); err != nil {
			logrus.Fatalf("create audit dir: %v", err)
		}
		auditStore, err = audit.Open(cfg.Audit.Path)
		if err != nil {
			logrus.Fatalf("open audit store: %v", err)
		}
	}

	r := router.Setup(cfg, repo, auditStore)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logrus.Infof("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
