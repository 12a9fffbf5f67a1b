package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Orion_Tube/internal/dto"
	"Orion_Tube/internal/service"
	"Orion_Tube/pkg/errno"
)

type CommentHandler interface {
	ListComments(c *gin.Context)
	AddComment(c *gin.Context)
	UpdateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type commentHandler struct {
	CommentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) CommentHandler {
	return &commentHandler{CommentService: commentService}
}

type CommentRequest struct {
	Content string `json:"content" form:"content"`
}

func (h *commentHandler) ListComments(c *gin.Context) {
	videoID, ok := parseID(c, "video_id", "视频ID")
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	result, err := h.CommentService.ListComments(c.Request.Context(), videoID, currentUserID(c), page, pageSize)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPageResponse(result, dto.ToCommentResponse), "获取评论成功")
}

// 视频评论：1、解析URL中的videoID 2、解析Body中的Content 3、获取context中的userID 4、创建评论并返回
func (h *commentHandler) AddComment(c *gin.Context) {
	videoID, ok := parseID(c, "video_id", "视频ID")
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, errno.Wrap(errno.InvalidArgument, err, "无效的参数"))
		return
	}
	comment, err := h.CommentService.AddComment(c.Request.Context(), currentUserID(c), videoID, req.Content)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, dto.ToCommentItemResponse(comment), "评论成功")
}

func (h *commentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := parseID(c, "comment_id", "评论ID")
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, errno.Wrap(errno.InvalidArgument, err, "无效的参数"))
		return
	}
	comment, err := h.CommentService.UpdateComment(c.Request.Context(), currentUserID(c), commentID, req.Content)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToCommentItemResponse(comment), "评论更新成功")
}

func (h *commentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := parseID(c, "comment_id", "评论ID")
	if !ok {
		return
	}
	if err := h.CommentService.DeleteComment(c.Request.Context(), currentUserID(c), commentID); err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, gin.H{}, "评论删除成功")
}
