package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"meal-planner-api/internal/pkg/common"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// 視為圖片的副檔名
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// Bucket チラシ圖片所在的物件儲存桶
type Bucket struct {
	bucket *gcs.BucketHandle
	name   string
}

// NewBucket 包裝一個已存在的儲存桶
func NewBucket(client *gcs.Client, name string) *Bucket {
	return &Bucket{
		bucket: client.Bucket(name),
		name:   name,
	}
}

// objectInfo 選擇邏輯需要的最小欄位
type objectInfo struct {
	Name    string
	Updated time.Time
}

// latestImageObject 按更新時間取最新的圖片物件名稱；沒有圖片時返回空字串
func latestImageObject(objects []objectInfo) string {
	var latest string
	var latestTime time.Time
	for _, obj := range objects {
		if !isImageName(obj.Name) {
			continue
		}
		if latest == "" || obj.Updated.After(latestTime) {
			latest = obj.Name
			latestTime = obj.Updated
		}
	}
	return latest
}

// isImageName 副檔名檢查（不分大小寫）
func isImageName(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// LatestImage 取指定前綴下最新上傳的圖片，返回內容與格式（"jpeg"、"png"、"gif"）
func (b *Bucket) LatestImage(ctx context.Context, prefix string) ([]byte, string, error) {
	it := b.bucket.Objects(ctx, &gcs.Query{Prefix: prefix})

	var objects []objectInfo
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, "", common.NewStorageLookupError("failed to list objects in bucket "+b.name, err)
		}
		objects = append(objects, objectInfo{Name: attrs.Name, Updated: attrs.Updated})
	}

	name := latestImageObject(objects)
	if name == "" {
		return nil, "", common.NewStorageLookupError("no image found in bucket "+b.name, nil)
	}

	r, err := b.bucket.Object(name).NewReader(ctx)
	if err != nil {
		return nil, "", common.NewStorageLookupError("failed to open object "+name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", common.NewStorageLookupError("failed to read object "+name, err)
	}

	common.LogInfo("取得最新チラシ圖片",
		zap.String("bucket", b.name),
		zap.String("object", name),
		zap.Int("size", len(data)),
	)
	return data, imageFormat(name), nil
}

// imageFormat 由物件名稱推出 Gemini 需要的圖片格式字串
func imageFormat(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	default:
		return "jpeg"
	}
}
