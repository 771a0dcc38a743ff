// Package media 提供上传媒体的校验与公开 URL 解析.
package media

import (
	"errors"
	"strings"
)

// 媒体大小上限.
const (
	MaxImageBytes int64 = 10 * 1024 * 1024
	MaxVideoBytes int64 = 50 * 1024 * 1024
)

// 媒体类型.
const (
	TypeImage = "image"
	TypeVideo = "video"
)

// 校验错误，按检查顺序返回第一个命中的.
var (
	ErrMissingFile     = errors.New("missing file")
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrImageTooLarge   = errors.New("image exceeds size limit")
	ErrVideoTooLarge   = errors.New("video exceeds size limit")
)

// allowedVideoTypes 精确匹配的允许视频类型.
var allowedVideoTypes = map[string]struct{}{
	"video/mp4":  {},
	"video/webm": {},
}

// Validate 校验上传文件的声明类型与大小，返回归一化的媒体类型（image/video）.
// 只信任客户端声明的 Content-Type，不做内容嗅探.
// 规则按序检查，命中第一个失败即返回：
//  1. 文件缺失 -> ErrMissingFile
//  2. 类型既不是 image/* 也不是 video/mp4、video/webm -> ErrUnsupportedType
//  3. 图片超过 10 MiB -> ErrImageTooLarge
//  4. 视频超过 50 MiB -> ErrVideoTooLarge
func Validate(contentType string, size int64, present bool) (string, error) {
	return ValidateWithin(contentType, size, present, MaxImageBytes, MaxVideoBytes)
}

// ValidateWithin 同 Validate，但大小上限由调用方给定（来自配置）.
func ValidateWithin(contentType string, size int64, present bool, maxImage, maxVideo int64) (string, error) {
	if !present {
		return "", ErrMissingFile
	}

	switch {
	case strings.HasPrefix(contentType, "image/"):
		if size > maxImage {
			return "", ErrImageTooLarge
		}

		return TypeImage, nil
	default:
		if _, ok := allowedVideoTypes[contentType]; !ok {
			return "", ErrUnsupportedType
		}

		if size > maxVideo {
			return "", ErrVideoTooLarge
		}

		return TypeVideo, nil
	}
}
