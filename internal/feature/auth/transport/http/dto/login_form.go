// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginForm はPOST /loginのフォームボディを表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	Remember bool   `form:"remember"`
}
