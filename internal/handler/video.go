package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Orion_Tube/internal/dto"
	"Orion_Tube/internal/service"
	"Orion_Tube/pkg/errno"
	"Orion_Tube/pkg/logger"
)

type VideoHandler interface {
	ListVideos(c *gin.Context)
	GetVideoDetail(c *gin.Context)
	PublishVideo(c *gin.Context)
	UpdateVideo(c *gin.Context)
	DeleteVideo(c *gin.Context)
	TogglePublishStatus(c *gin.Context)
}

type videoHandler struct {
	VideoService service.VideoService
	uploads      uploads
}

func NewVideoHandler(videoService service.VideoService, uploadDir string) VideoHandler {
	return &videoHandler{VideoService: videoService, uploads: uploads{dir: uploadDir}}
}

type VideoFormRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

// 视频列表：1、解析分页、关键字、排序和作者筛选 2、service层组装 3、dto转换为分页响应
func (h *videoHandler) ListVideos(c *gin.Context) {
	page, pageSize := parsePagination(c)
	q := service.VideoQuery{
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
	}
	if raw := c.Query("userId"); raw != "" {
		ownerID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			sendError(c, errno.NewInvalidArgument("无效的用户ID"))
			return
		}
		q.OwnerID = &ownerID
	}

	result, err := h.VideoService.ListVideos(c.Request.Context(), q, currentUserID(c), page, pageSize)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPageResponse(result, dto.ToVideoCardResponse), "获取视频列表成功")
}

func (h *videoHandler) GetVideoDetail(c *gin.Context) {
	videoID, ok := parseID(c, "video_id", "视频ID")
	if !ok {
		return
	}
	detail, err := h.VideoService.GetVideoDetail(c.Request.Context(), videoID, currentUserID(c))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoDetailResponse(detail), "获取视频详情成功")
}

// 发布视频：1、解析表单 2、把videoFile和thumbnail落到临时目录 3、service层上传并写库 4、清理临时文件
func (h *videoHandler) PublishVideo(c *gin.Context) {
	var req VideoFormRequest
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, errno.Wrap(errno.InvalidArgument, err, "无效的参数"))
		return
	}
	userID := currentUserID(c)
	logCtx := logger.Log.WithField("user_id", userID)
	logCtx.Info("开始处理发布视频请求")

	videoFile, err := h.uploads.save(c, "videoFile")
	if err != nil {
		sendError(c, err)
		return
	}
	thumbnail, err := h.uploads.save(c, "thumbnail")
	if err != nil {
		h.uploads.cleanup(videoFile)
		sendError(c, err)
		return
	}
	defer h.uploads.cleanup(videoFile, thumbnail)

	video, err := h.VideoService.PublishVideo(c.Request.Context(), userID, service.PublishVideoInput{
		Title:       req.Title,
		Description: req.Description,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, dto.ToVideoResponse(video), "视频发布成功")
}

func (h *videoHandler) UpdateVideo(c *gin.Context) {
	videoID, ok := parseID(c, "video_id", "视频ID")
	if !ok {
		return
	}
	var req VideoFormRequest
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, errno.Wrap(errno.InvalidArgument, err, "无效的参数"))
		return
	}
	thumbnail, err := h.uploads.save(c, "thumbnail")
	if err != nil {
		sendError(c, err)
		return
	}
	defer h.uploads.cleanup(thumbnail)

	video, err := h.VideoService.UpdateVideo(c.Request.Context(), currentUserID(c), videoID, service.UpdateVideoInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponse(video), "视频更新成功")
}

func (h *videoHandler) DeleteVideo(c *gin.Context) {
	videoID, ok := parseID(c, "video_id", "视频ID")
	if !ok {
		return
	}
	if err := h.VideoService.DeleteVideo(c.Request.Context(), currentUserID(c), videoID); err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, gin.H{}, "视频删除成功")
}

func (h *videoHandler) TogglePublishStatus(c *gin.Context) {
	videoID, ok := parseID(c, "video_id", "视频ID")
	if !ok {
		return
	}
	status, err := h.VideoService.TogglePublishStatus(c.Request.Context(), currentUserID(c), videoID)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.PublishStatusResponse{
		VideoID:     status.VideoID,
		IsPublished: status.IsPublished,
	}, "发布状态切换成功")
}
