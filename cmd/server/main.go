package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"adboard_backend/internal/app/di"
	"adboard_backend/internal/app/router"
	adhandler "adboard_backend/internal/feature/ads/transport/handler"
	adsusecase "adboard_backend/internal/feature/ads/usecase"
	authadapters "adboard_backend/internal/feature/auth/adapters"
	authhandler "adboard_backend/internal/feature/auth/transport/handler"
	authusecase "adboard_backend/internal/feature/auth/usecase"
	fileadapters "adboard_backend/internal/feature/files/adapters"
	filehandler "adboard_backend/internal/feature/files/transport/handler"
	filesusecase "adboard_backend/internal/feature/files/usecase"
	infradb "adboard_backend/internal/platform/db"
	jwtmw "adboard_backend/internal/platform/jwt"
	infraredis "adboard_backend/internal/platform/redis"
	"adboard_backend/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := infradb.OpenDB()

	// Redis（広告一覧キャッシュ用、任意）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	adRepo := di.NewAdRepository(rdb, db, 5*time.Minute)
	fileRepo := fileadapters.NewFileGorm(db)

	// アップロード保存先
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./media"
	}
	blobs, err := fileadapters.NewDiskStorage(uploadDir)
	if err != nil {
		log.Fatal(err)
	}

	var maxUploadBytes int64
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			maxUploadBytes = n
		}
	}

	// Usecase
	tokenGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret))
	authUC := authusecase.NewAuthUsecase(userRepo, tokenGen)
	adsUC := adsusecase.NewAdsUsecase(adRepo, userRepo)
	filesUC := filesusecase.NewFilesUsecase(fileRepo, blobs, maxUploadBytes)

	// 認証エンドポイントのレートリミット（クライアントIPごとに1分あたり30リクエスト）
	loginLimiter := ratelimiter.NewRateLimiter(30, time.Minute)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, loginLimiter)
	adH := adhandler.NewAdHandler(adsUC, authUC)
	fileH := filehandler.NewFileHandler(filesUC)

	// ルータ生成
	router := router.NewRouter(authH, adH, fileH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Identity cookies cannot be issued or validated.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
