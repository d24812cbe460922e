package router

import (
	adhandler "adboard_backend/internal/feature/ads/transport/handler"
	authhandler "adboard_backend/internal/feature/auth/transport/handler"
	filehandler "adboard_backend/internal/feature/files/transport/handler"
	"adboard_backend/internal/interface/handler"
	jwtmw "adboard_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

func NewRouter(auth *authhandler.AuthHandler, ads *adhandler.AdHandler,
	files *filehandler.FileHandler) *gin.Engine {
	r := gin.Default()

	// ページ描画用テンプレート
	r.LoadHTMLGlob("templates/*.html")

	// 全ルートでCookieから現在のユーザーを解決（匿名でも通す）
	r.Use(jwtmw.Identity())

	// 導通確認用
	r.GET("/healthz", handler.Health)

	// 認証不要のページ
	r.GET("/", ads.Index)
	r.GET("/login", auth.LoginPage)
	r.POST("/login", auth.Login)
	r.GET("/registration", auth.RegistrationPage)
	r.POST("/registration", auth.Register)
	r.GET("/note/:advt_id", ads.Note)
	r.GET("/profile/:user_id", ads.Profile)
	// ログアウト（歴史的経緯でGET /profile）
	r.GET("/profile", auth.Logout)

	// ファイルのアップロード・ダウンロード
	r.POST("/upload1", files.UploadOne)
	r.POST("/upload2", files.UploadMany)
	r.GET("/download/:file_name", files.Download)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	advt := r.Group("/")
	// jwtmw.IdentityRequired() ミドルウェアを適用
	// → 未認証のリクエストは/loginへリダイレクトされる
	advt.Use(jwtmw.IdentityRequired())
	{
		advt.GET("/advt", ads.NewAdPage)
		advt.POST("/advt", ads.CreateAd)
	}

	return r
}
