package dal

import (
	"context"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormopentracing "gorm.io/plugin/opentracing"
)

// Init 连接 MySQL，开启 opentracing 插件并迁移审计表
func Init() (*gorm.DB, error) {
	return Open(mysql.Open(utils.GetMysqlDsn()))
}

func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector,
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "open database failed")
	}
	if err = db.Use(gormopentracing.New()); err != nil {
		return nil, errors.Wrap(err, "use opentracing plugin failed")
	}
	if err = db.AutoMigrate(&model.EngagementEvent{}); err != nil {
		hlog.Errorf("Failed to migrate engagement_events table: %v", err)
		return nil, errors.Wrap(err, "migrate engagement_events failed")
	}
	return db, nil
}

// SaveEngagementEvent event_id 已存在时忽略，返回是否新写入
func SaveEngagementEvent(ctx context.Context, db *gorm.DB, event *model.EngagementEvent) (bool, error) {
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(event)
	if result.Error != nil {
		return false, errors.Wrapf(result.Error, "save engagement event %s failed", event.EventID)
	}
	return result.RowsAffected > 0, nil
}
