// cmd/seeder/main.go

package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/go-faker/faker/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Orion_Tube/internal/config"
	"Orion_Tube/internal/model"
	"Orion_Tube/internal/repository"
)

const (
	userCount         = 100
	videoCount        = 500
	commentCount      = 2000
	tweetCount        = 300
	likeCount         = 3000
	subscriptionCount = 800
)

func main() {
	fmt.Println("🚀 开始填充测试数据...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 配置加载失败: %v", err)
	}

	// --- 1. 连接数据库 ---
	db, err := gorm.Open(mysql.Open(cfg.Mysql.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("❌ 无法连接到数据库: %v", err)
	}
	fmt.Println("✅ 数据库连接成功!")

	// --- 2. 清理旧数据：删除旧表再重建，这将删除所有数据！ ---
	fmt.Println("🧹 正在清理旧数据...")
	if err := db.Migrator().DropTable(&model.Like{}, &model.Subscription{}, &model.Comment{}, &model.Tweet{}, &model.WatchHistory{}, &model.Video{}, &model.User{}); err != nil {
		log.Fatalf("❌ 旧表删除失败: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("❌ 数据库迁移失败: %v", err)
	}
	fmt.Println("✅ 数据库迁移成功!")

	// --- 3. 创建用户：所有用户的密码都是 "password" ---
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ 密码加密失败: %v", err)
	}
	users := make([]model.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		users = append(users, model.User{
			Username: fmt.Sprintf("%s%d", faker.Username(), i),
			FullName: faker.Name(),
			Password: string(hashedPassword),
			Avatar:   model.MediaRef{URL: "https://test.com/avatar.jpg"},
		})
	}
	mustCreate(db, &users)
	fmt.Printf("✅ 成功创建 %d 个用户!\n", userCount)

	// --- 4. 创建视频，约十分之一未发布 ---
	videos := make([]model.Video, 0, videoCount)
	for i := 0; i < videoCount; i++ {
		videos = append(videos, model.Video{
			OwnerID:     randomID(userCount),
			VideoFile:   model.MediaRef{URL: "https://test.com/video.mp4"},
			Thumbnail:   model.MediaRef{URL: "https://test.com/cover.jpg"},
			Title:       faker.Sentence(),
			Description: faker.Paragraph(),
			Duration:    float64(rand.Intn(3600)) + rand.Float64(),
			Views:       uint64(rand.Intn(100000)),
			IsPublished: rand.Intn(10) != 0,
		})
	}
	mustCreate(db, &videos)
	fmt.Printf("✅ 成功创建 %d 个视频!\n", videoCount)

	// --- 5. 评论和动态 ---
	comments := make([]model.Comment, 0, commentCount)
	for i := 0; i < commentCount; i++ {
		comments = append(comments, model.Comment{
			OwnerID: randomID(userCount),
			VideoID: randomID(videoCount),
			Content: faker.Sentence(),
		})
	}
	mustCreate(db, &comments)

	tweets := make([]model.Tweet, 0, tweetCount)
	for i := 0; i < tweetCount; i++ {
		tweets = append(tweets, model.Tweet{OwnerID: randomID(userCount), Content: faker.Sentence()})
	}
	mustCreate(db, &tweets)
	fmt.Printf("✅ 成功创建 %d 条评论和 %d 条动态!\n", commentCount, tweetCount)

	// --- 6. 随机点赞和订阅：OnConflict DoNothing 跳过重复的组合 ---
	for i := 0; i < likeCount; i++ {
		var target model.LikeTarget
		switch rand.Intn(3) {
		case 0:
			target = model.VideoTarget(randomID(videoCount))
		case 1:
			target = model.CommentTarget(randomID(commentCount))
		default:
			target = model.TweetTarget(randomID(tweetCount))
		}
		like := model.Like{LikedBy: randomID(userCount), Target: target}
		db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	}
	for i := 0; i < subscriptionCount; i++ {
		subscriber, channel := randomID(userCount), randomID(userCount)
		if subscriber == channel {
			continue
		}
		sub := model.Subscription{SubscriberID: subscriber, ChannelID: channel}
		db.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub)
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个点赞和 %d 个订阅!\n", likeCount, subscriptionCount)

	fmt.Println("🎉🎉🎉 所有测试数据填充完毕! 🎉🎉🎉")
}

// [1, n] 之间的随机ID，表是新建的，自增ID从1开始
func randomID(n int) uint64 {
	return uint64(rand.Intn(n) + 1)
}

func mustCreate(db *gorm.DB, value interface{}) {
	if err := db.CreateInBatches(value, 200).Error; err != nil {
		log.Fatalf("❌ 批量插入失败: %v", err)
	}
}
