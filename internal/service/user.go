package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"Orion_Tube/internal/model"
	"Orion_Tube/internal/repository"
	"Orion_Tube/pkg/errno"
)

const DefaultTokenTTL = 72 * time.Hour

type RegisterInput struct {
	Username string
	FullName string
	Password string
	// 可选
	Avatar *Upload
}

// 用户服务接口：1、注册 2、登录 3、个人信息 4、观看记录
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (string, *model.User, error)
	Profile(ctx context.Context, userID uint64) (*model.User, error)
	WatchHistory(ctx context.Context, userID uint64) ([]model.VideoCard, error)
}

type userService struct {
	userRepo  repository.UserRepository
	videoRepo repository.VideoRepository
	storage   MediaStorage

	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserService(userRepo repository.UserRepository, videoRepo repository.VideoRepository, storage MediaStorage, jwtSecret string, tokenTTL time.Duration) UserService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &userService{
		userRepo:  userRepo,
		videoRepo: videoRepo,
		storage:   storage,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// 注册逻辑：1、检查是否重名 2、密码加密存储 3、可选上传头像 4、插入数据库
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	username, err := requireText(strings.ToLower(in.Username), "用户名")
	if err != nil {
		return nil, err
	}
	fullName, err := requireText(in.FullName, "昵称")
	if err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, errno.NewInvalidArgument("密码不能为空")
	}

	_, err = s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil, errno.NewInvalidArgument("用户名已存在")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err, "用户不存在", "find user")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errno.NewInternal(err, "密码加密失败")
	}

	newUser := &model.User{
		Username: username,
		FullName: fullName,
		Password: string(hashedPassword),
	}
	if in.Avatar != nil {
		if s.storage == nil {
			return nil, errno.NewDependency(errors.New("storage not configured"), "存储服务不可用")
		}
		url, key, err := s.storage.Store(ctx, folderAvatars, in.Avatar.Path, in.Avatar.ContentType)
		if err != nil {
			return nil, errno.NewDependency(err, "上传头像失败")
		}
		newUser.Avatar = model.MediaRef{URL: url, Key: key}
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if in.Avatar != nil {
			discardMedia(ctx, s.storage, nil, newUser.Avatar.Key)
		}
		if repository.IsDuplicateKey(err) {
			return nil, errno.NewInvalidArgument("用户名已存在")
		}
		return nil, storeError(err, "用户不存在", "create user")
	}
	return newUser, nil
}

// 登录逻辑：1、检查库中是否有该用户名 2、加密后密码和输入密码比对 3、生成jwt签名
func (s *userService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	if len(s.jwtSecret) == 0 {
		return "", nil, errno.NewInternal(errors.New("jwt secret not configured"), "登录服务未配置")
	}
	user, err := s.userRepo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errno.NewUnauthorized("用户名或密码错误")
		}
		return "", nil, storeError(err, "用户不存在", "find user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errno.NewUnauthorized("用户名或密码错误")
	}

	// token对象的Payload，不能将密码放在其中，Payload不加密
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	}
	// HS256，对称加密
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, errno.NewInternal(err, "生成token失败")
	}
	return tokenString, user, nil
}

func (s *userService) Profile(ctx context.Context, userID uint64) (*model.User, error) {
	if err := requireViewer(userID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "用户不存在", "find user")
	}
	return user, nil
}

// 观看记录：按第一次观看时间倒序，已经被删除的视频直接跳过
func (s *userService) WatchHistory(ctx context.Context, userID uint64) ([]model.VideoCard, error) {
	if err := requireViewer(userID); err != nil {
		return nil, err
	}
	ids, err := s.userRepo.WatchHistory(ctx, userID)
	if err != nil {
		return nil, storeError(err, "用户不存在", "watch history")
	}
	cards, err := s.videoRepo.FindCardsByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(err, "视频不存在", "find watched videos")
	}
	byID := make(map[uint64]model.VideoCard, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	history := make([]model.VideoCard, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			history = append(history, c)
		}
	}
	return history, nil
}
