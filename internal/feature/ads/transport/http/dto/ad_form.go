// Package dto defines data transfer objects for the ads feature's HTTP transport layer.
package dto

// AdForm represents the form body for POST /advt.
type AdForm struct {
	Title string `form:"title" binding:"required"`
	Desc  string `form:"desc" binding:"required"`
}
