package repository

import (
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"Orion_Tube/internal/model"
)

// MySQL的 "Duplicate entry" 错误号
const mysqlDuplicateEntry = 1062

// IsDuplicateKey 判断是不是撞上了唯一索引：gorm开启TranslateError后会翻译成ErrDuplicatedKey，
// 没开启时退回去检查原始的MySQL错误号
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// AutoMigrate 没有这个表就创建，没有列就加列，不会主动删除和修改
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.WatchHistory{},
		&model.Video{},
		&model.Comment{},
		&model.Tweet{},
		&model.Like{},
		&model.Subscription{},
	)
}

// 作者简要信息的列，所有联表投影共用，u 是 users 表的别名
const ownerSummaryColumns = "u.id AS owner_id, u.username AS owner_username, u.full_name AS owner_full_name, u.avatar_url AS owner_avatar_url"

// 视频卡片的列，v 是 videos 表的别名
const videoCardColumns = "v.id, v.title, v.description, v.video_file_url AS video_url, v.thumbnail_url, v.duration, v.views, v.is_published, v.created_at, " + ownerSummaryColumns

// 某个对象的点赞数，以及viewer是否点过赞；viewer为0（匿名）时EXISTS永远为假
const (
	likesCountSubquery = "(SELECT COUNT(*) FROM likes l WHERE l.target_kind = ? AND l.target_id = %s) AS likes_count"
	isLikedSubquery    = "EXISTS(SELECT 1 FROM likes l WHERE l.target_kind = ? AND l.target_id = %s AND l.liked_by = ?) AS is_liked"
)
