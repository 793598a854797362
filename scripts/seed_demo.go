// 向数据库写入演示用的参与者和成绩，便于本地调试排行榜
//
// 用法: go run scripts/seed_demo.go [-n 12]

package main

import (
	"context"
	"dark_patterns_game/internal/config"
	"dark_patterns_game/internal/repository"
	"dark_patterns_game/internal/service"
	"dark_patterns_game/pkg/database"
	"dark_patterns_game/pkg/logger"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var demoNames = []string{
	"Alice", "Bob", "Chloé", "David", "Emma", "Farid", "Gabrielle", "Hugo",
	"Inès", "Jules", "Karim", "Léa", "Mathis", "Nina", "Oscar", "Pauline",
}

func main() {
	count := flag.Int("n", 12, "参与者数量")
	flag.Parse()

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}
	if err := cfg.Normalize(); err != nil {
		log.Fatalf("配置无效: %v", err)
	}

	logger.InitLogger(&cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	scores := service.NewScoreService(repository.NewUserRepository(db), repository.NewScoreRepository(db))
	ctx := context.Background()

	for i := 0; i < *count; i++ {
		name := demoNames[i%len(demoNames)]
		if i >= len(demoNames) {
			name = fmt.Sprintf("%s %d", name, i/len(demoNames)+1)
		}
		user, err := scores.CreateUser(ctx, name)
		if err != nil {
			log.Fatalf("创建用户失败: %v", err)
		}

		// 约四分之一的参与者还在游戏中
		if i%4 == 3 {
			continue
		}
		elapsed := 90 + rand.IntN(600)
		if _, err := scores.SubmitScore(ctx, user.ID, &elapsed); err != nil {
			log.Fatalf("提交成绩失败: %v", err)
		}
		logger.Log.Info("Seeded participant", zap.String("name", name), zap.Int("score", elapsed))
	}

	log.Println("完成！")
}
