package database

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-product-api/internal/core/database/migrations"
)

type gooseLogger struct{ s *zap.SugaredLogger }

func (g gooseLogger) Printf(format string, v ...any) { g.s.Infof(format, v...) }
func (g gooseLogger) Fatalf(format string, v ...any) { g.s.Fatalf(format, v...) }

// Migrate 对当前库执行 goose 命令（up / down / status / version / redo ...），
// 迁移脚本按驱动放在 migrations/<driver>/ 下
func Migrate(ctx context.Context, db *gorm.DB, driver string, l *zap.Logger, command string, args ...string) error {
	if driver != "postgres" && driver != "mysql" {
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{s: l.Sugar()})
	if err := goose.SetDialect(driver); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, sqlDB, driver, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
