package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Orion_Tube/internal/dto"
	"Orion_Tube/internal/service"
	"Orion_Tube/pkg/errno"
	"Orion_Tube/pkg/logger"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	GetProfile(c *gin.Context)
	GetWatchHistory(c *gin.Context)
}

// 对Service进行封装
type userHandler struct {
	UserService service.UserService
	uploads     uploads
}

func NewUserHandler(userService service.UserService, uploadDir string) UserHandler {
	return &userHandler{UserService: userService, uploads: uploads{dir: uploadDir}}
}

// 用处：接收注册信息，JSON或者带avatar文件的multipart表单
type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	FullName string `json:"fullName" form:"fullName" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// 注册：1、解析注册请求 2、可选头像落盘 3、service层注册 4、返回注册成功后的User
func (h *userHandler) Register(c *gin.Context) {
	var req RegisterRequest
	// 绑定和校验，缺少“required”字段会返回错误
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, errno.Wrap(errno.InvalidArgument, err, "无效的参数"))
		return
	}
	logCtx := logger.Log.WithField("username", req.Username)
	logCtx.Info("开始处理用户注册请求")

	avatar, err := h.uploads.save(c, "avatar")
	if err != nil {
		sendError(c, err)
		return
	}
	defer h.uploads.cleanup(avatar)

	user, err := h.UserService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		Avatar:   avatar,
	})
	if err != nil {
		sendError(c, err)
		return
	}
	logCtx.WithField("user_id", user.ID).Info("用户注册成功")
	sendSuccess(c, http.StatusCreated, dto.ToUserResponse(user), "注册成功")
}

// 登录：1、解析登录请求 2、service层校验并签发token 3、返回token和用户信息
func (h *userHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, errno.Wrap(errno.InvalidArgument, err, "无效的参数"))
		return
	}
	token, user, err := h.UserService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		sendError(c, err)
		return
	}
	logger.Log.WithField("user_id", user.ID).Info("用户登录成功")
	sendSuccess(c, http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)}, "登录成功")
}

func (h *userHandler) GetProfile(c *gin.Context) {
	user, err := h.UserService.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponse(user), "成功获取用户信息")
}

func (h *userHandler) GetWatchHistory(c *gin.Context) {
	history, err := h.UserService.WatchHistory(c.Request.Context(), currentUserID(c))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToList(history, dto.ToVideoCardResponse), "获取观看记录成功")
}
