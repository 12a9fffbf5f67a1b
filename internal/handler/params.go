package handler

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"Orion_Tube/internal/middleware"
	"Orion_Tube/internal/service"
	"Orion_Tube/pkg/errno"
	"Orion_Tube/pkg/logger"
)

// parseID 从路径参数取出ID，URL中取回的是字符串，统一转化为uint64；非法时直接写回400
func parseID(c *gin.Context, param, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		sendError(c, errno.NewInvalidArgument("无效的"+label))
		return 0, false
	}
	return id, true
}

// parsePagination page从1开始；limit 也接受 pageSize 这个别名；非数字或小于1回落到默认值，超过上限截断
func parsePagination(c *gin.Context) (int, int) {
	page := queryInt(c, "page", service.DefaultPage)
	sizeRaw := c.Query("limit")
	if sizeRaw == "" {
		sizeRaw = c.Query("pageSize")
	}
	size, err := strconv.Atoi(sizeRaw)
	if err != nil {
		size = service.DefaultPageSize
	}
	return service.NormalizePage(page, size)
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func currentUserID(c *gin.Context) uint64 {
	return middleware.CurrentUserID(c)
}

// uploads 把multipart里的文件落到本地临时目录，请求结束后由调用方清理
type uploads struct {
	dir string
}

// save 字段不存在时返回 (nil, nil)
func (u uploads) save(c *gin.Context, field string) (*service.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errno.Wrap(errno.InvalidArgument, err, "无效的上传文件")
	}
	return u.store(c, fh)
}

func (u uploads) store(c *gin.Context, fh *multipart.FileHeader) (*service.Upload, error) {
	path := filepath.Join(u.dir, uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return nil, errno.NewInternal(err, "保存上传文件失败")
	}
	return &service.Upload{Path: path, ContentType: fh.Header.Get("Content-Type")}, nil
}

func (u uploads) cleanup(files ...*service.Upload) {
	for _, f := range files {
		if f == nil {
			continue
		}
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			logger.Log.WithError(err).WithField("path", f.Path).Warn("删除临时文件失败")
		}
	}
}
